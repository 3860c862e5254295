// ==============================================================================================
// FILE: ast/ast_unit_test.go
// ==============================================================================================
// PURPOSE: Verifies that AST nodes stringify themselves in a readable,
//          round-trippable way.
// ==============================================================================================

package ast

import (
	"testing"

	"script/token"
)

func TestLiteralString(t *testing.T) {
	tests := []struct {
		name string
		node *Literal
		want string
	}{
		{"number", &Literal{Kind: NumberLiteral, Number: 42}, "42"},
		{"string", &Literal{Kind: StringLiteral, Str: "hi"}, `"hi"`},
		{"true", &Literal{Kind: BoolLiteral, Bool: true}, "true"},
		{"false", &Literal{Kind: BoolLiteral, Bool: false}, "false"},
		{"nil", &Literal{Kind: NilLiteral}, "nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("FAIL: String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBinaryString(t *testing.T) {
	node := &Binary{
		Left:     &Literal{Kind: NumberLiteral, Number: 5},
		Operator: "+",
		Right:    &Literal{Kind: NumberLiteral, Number: 3},
	}
	if got, want := node.String(), "(5 + 3)"; got != want {
		t.Errorf("FAIL: String() = %q, want %q", got, want)
	}
}

func TestUnaryString(t *testing.T) {
	node := &Unary{Operator: "!", Right: &Literal{Kind: BoolLiteral, Bool: true}}
	if got, want := node.String(), "(!true)"; got != want {
		t.Errorf("FAIL: String() = %q, want %q", got, want)
	}
}

func TestTernaryString(t *testing.T) {
	node := &Ternary{
		Cond: &Variable{Name: "c"},
		Then: &Literal{Kind: NumberLiteral, Number: 1},
		Else: &Literal{Kind: NumberLiteral, Number: 2},
	}
	if got, want := node.String(), "(c ? 1 : 2)"; got != want {
		t.Errorf("FAIL: String() = %q, want %q", got, want)
	}
}

func TestArrayAndIndexString(t *testing.T) {
	arr := &Array{Elements: []Expression{
		&Literal{Kind: NumberLiteral, Number: 1},
		&Literal{Kind: NumberLiteral, Number: 2},
	}}
	if got, want := arr.String(), "[1, 2]"; got != want {
		t.Errorf("FAIL: Array.String() = %q, want %q", got, want)
	}

	idx := &IndexGet{Target: &Variable{Name: "a"}, Index: &Literal{Kind: NumberLiteral, Number: 0}}
	if got, want := idx.String(), "a[0]"; got != want {
		t.Errorf("FAIL: IndexGet.String() = %q, want %q", got, want)
	}
}

func TestStructLiteralString(t *testing.T) {
	node := &Struct{Fields: []StructField{
		{Name: "x", Value: &Literal{Kind: NumberLiteral, Number: 1}},
		{Name: "y", Value: &Literal{Kind: NumberLiteral, Number: 2}},
	}}
	if got, want := node.String(), "{x: 1, y: 2}"; got != want {
		t.Errorf("FAIL: String() = %q, want %q", got, want)
	}
}

func TestAssignString(t *testing.T) {
	node := &Assign{Target: &Variable{Name: "x"}, Value: &Literal{Kind: NumberLiteral, Number: 5}}
	if got, want := node.String(), "x = 5"; got != want {
		t.Errorf("FAIL: String() = %q, want %q", got, want)
	}
}

func TestReturnAndControlFlowStatements(t *testing.T) {
	ret := &Return{Value: &Literal{Kind: NumberLiteral, Number: 10}}
	if got, want := ret.String(), "return 10;"; got != want {
		t.Errorf("FAIL: Return.String() = %q, want %q", got, want)
	}
	if got, want := (&Break{}).String(), "break;"; got != want {
		t.Errorf("FAIL: Break.String() = %q, want %q", got, want)
	}
	if got, want := (&Continue{}).String(), "continue;"; got != want {
		t.Errorf("FAIL: Continue.String() = %q, want %q", got, want)
	}
}

func TestFunctionString(t *testing.T) {
	node := &Function{
		Name:   "add",
		Params: []string{"a", "b"},
		Body: &Block{Statements: []Statement{
			&Return{Value: &Binary{Left: &Variable{Name: "a"}, Operator: "+", Right: &Variable{Name: "b"}}},
		}},
	}
	want := "fun add(a, b) { return (a + b); }"
	if got := node.String(); got != want {
		t.Errorf("FAIL: String() = %q, want %q", got, want)
	}
}

func TestTokAnchorsToSourceToken(t *testing.T) {
	tok := token.Token{Type: token.PLUS, Span: token.Span{Start: 2, End: 3}, Line: 1, Column: 3}
	node := &Binary{Token: tok, Left: &Literal{}, Operator: "+", Right: &Literal{}}
	if node.Tok() != tok {
		t.Errorf("FAIL: Tok() = %+v, want %+v", node.Tok(), tok)
	}
}
