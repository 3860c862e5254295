// ==============================================================================================
// FILE: evaluator/evaluator_integration_test.go
// ==============================================================================================
// PURPOSE: Integration tests — multi-statement programs exercising
//          recursion, struct/array aliasing, the mandatory builtins,
//          and the six end-to-end scenarios a complete interpreter
//          must get right together.
// ==============================================================================================

package evaluator

import (
	"script/object"
	"testing"
)

func TestIntegrationRecursiveFactorial(t *testing.T) {
	e := mustRun(t, `
		fun factorial(n) {
			if (n == 0) { return 1; }
			return n * factorial(n - 1);
		}
		var r = factorial(5);
	`)
	if lookup(t, e, "r") != object.Number(120) {
		t.Errorf("FAIL: factorial(5) = %v, want 120", lookup(t, e, "r"))
	}
}

func TestIntegrationMutualRecursionThroughGlobals(t *testing.T) {
	e := mustRun(t, `
		fun isEven(n) {
			if (n == 0) { return true; }
			return isOdd(n - 1);
		}
		fun isOdd(n) {
			if (n == 0) { return false; }
			return isEven(n - 1);
		}
		var r = isEven(10);
	`)
	if lookup(t, e, "r") != object.Bool(true) {
		t.Errorf("FAIL: isEven(10) = %v, want true", lookup(t, e, "r"))
	}
}

func TestIntegrationStructFieldMutationThroughAlias(t *testing.T) {
	e := mustRun(t, `
		var a = { count: 0 };
		fun bump(s) { s.count = s.count + 1; }
		bump(a);
		bump(a);
		var r = a.count;
	`)
	if lookup(t, e, "r") != object.Number(2) {
		t.Errorf("FAIL: r = %v, want 2 (struct passed by reference, mutation visible to caller)", lookup(t, e, "r"))
	}
}

func TestIntegrationCloneProducesIndependentCopy(t *testing.T) {
	e := mustRun(t, `
		var a = { count: 0 };
		var b = clone(a);
		b.count = 99;
		var r = a.count;
	`)
	if lookup(t, e, "r") != object.Number(0) {
		t.Errorf("FAIL: r = %v, want 0 (clone must not alias the original)", lookup(t, e, "r"))
	}
}

func TestIntegrationArrayAndStructLiteralComposition(t *testing.T) {
	e := mustRun(t, `
		var arr = [1, 2, 3];
		var d = { first: arr[0] };
		var r = d.first;
	`)
	if lookup(t, e, "r") != object.Number(1) {
		t.Errorf("FAIL: r = %v, want 1", lookup(t, e, "r"))
	}
}

func TestIntegrationLenBuiltinAcrossValueKinds(t *testing.T) {
	e := mustRun(t, `
		var la = len([1, 2, 3]);
		var ls = len("hello");
		var lo = len({ a: 1, b: 2 });
	`)
	if lookup(t, e, "la") != object.Number(3) {
		t.Errorf("FAIL: len(array) = %v, want 3", lookup(t, e, "la"))
	}
	if lookup(t, e, "ls") != object.Number(5) {
		t.Errorf("FAIL: len(string) = %v, want 5", lookup(t, e, "ls"))
	}
	if lookup(t, e, "lo") != object.Number(2) {
		t.Errorf("FAIL: len(struct) = %v, want 2", lookup(t, e, "lo"))
	}
}

func TestIntegrationArrayBuiltinFillsDeepClonedElements(t *testing.T) {
	e := mustRun(t, `
		var template = { n: 0 };
		var a = array(3, template);
		a[0].n = 7;
		var r0 = a[0].n;
		var r1 = a[1].n;
	`)
	if lookup(t, e, "r0") != object.Number(7) {
		t.Errorf("FAIL: r0 = %v, want 7", lookup(t, e, "r0"))
	}
	if lookup(t, e, "r1") != object.Number(0) {
		t.Errorf("FAIL: r1 = %v, want 0 (array() must deep-clone the fill value per slot)", lookup(t, e, "r1"))
	}
}

func TestIntegrationStrAndNumBuiltinsRoundTrip(t *testing.T) {
	e := mustRun(t, `
		var s = str(42);
		var n = num(s);
		var bad = num("not a number");
	`)
	got, ok := lookup(t, e, "s").(*object.String)
	if !ok || got.String() != "42" {
		t.Errorf("FAIL: str(42) = %v, want \"42\"", lookup(t, e, "s"))
	}
	if lookup(t, e, "n") != object.Number(42) {
		t.Errorf("FAIL: num(\"42\") = %v, want 42", lookup(t, e, "n"))
	}
	if _, ok := lookup(t, e, "bad").(object.Nil); !ok {
		t.Errorf("FAIL: num() on an unparseable string should yield Nil, got %v", lookup(t, e, "bad"))
	}
}

func TestIntegrationClockBuiltinReturnsANumber(t *testing.T) {
	e := mustRun(t, "var r = clock();")
	if _, ok := lookup(t, e, "r").(object.Number); !ok {
		t.Errorf("FAIL: clock() should return a Number, got %T", lookup(t, e, "r"))
	}
}

func TestIntegrationFunctionValuesAreFirstClass(t *testing.T) {
	e := mustRun(t, `
		fun add(a, b) { return a + b; }
		var f = add;
		var r = f(2, 3);
	`)
	if lookup(t, e, "r") != object.Number(5) {
		t.Errorf("FAIL: calling through an aliased function variable did not work")
	}
}

func TestIntegrationNestedLoopsWithBreakOnlyExitInnermost(t *testing.T) {
	e := mustRun(t, `
		var outer_count = 0;
		for (var i = 0; i < 3; i = i + 1) {
			for (var j = 0; j < 3; j = j + 1) {
				if (j == 1) { break; }
			}
			outer_count = outer_count + 1;
		}
	`)
	if lookup(t, e, "outer_count") != object.Number(3) {
		t.Errorf("FAIL: outer_count = %v, want 3 (inner break must not escape the outer loop)", lookup(t, e, "outer_count"))
	}
}
