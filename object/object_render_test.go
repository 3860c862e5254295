// ==============================================================================================
// FILE: object/object_render_test.go
// ==============================================================================================
// PURPOSE: Checks the textual rendering every Value kind produces,
//          and that Array/Struct mutation helpers leave the expected
//          element sequence behind.
// ==============================================================================================

package object

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueString renders a Value via its String() method, used as the
// basis for a cmp.Comparer since Value implementations carry
// unexported fields (Struct.keys/values) cmp cannot reach directly.
func valueString(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}

var valueComparer = cmp.Comparer(func(a, b Value) bool {
	return valueString(a) == valueString(b)
})

func TestRenderScalarValues(t *testing.T) {
	assert.Equal(t, "42", Number(42).String())
	assert.Equal(t, "3.5", Number(3.5).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, "nil", Nil{}.String())
}

func TestRenderStringValue(t *testing.T) {
	s := NewString("hello")
	require.Equal(t, "hello", s.String())
	s.Append(", world")
	assert.Equal(t, "hello, world", s.String())
}

func TestRenderArrayAfterMutation(t *testing.T) {
	arr := NewArray([]Value{Number(1), Number(2), Number(3)})
	require.True(t, arr.Insert(1, Number(99)))
	require.True(t, arr.Delete(3))

	want := []Value{Number(1), Number(99), Number(2)}
	if diff := cmp.Diff(want, arr.Elements, valueComparer, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("FAIL: array contents mismatch after insert/delete (-want +got):\n%s", diff)
	}
	assert.Equal(t, "[1, 99, 2]", arr.String())
}

func TestRenderStructPreservesInsertionOrder(t *testing.T) {
	st := NewStruct()
	st.Set("b", Number(2))
	st.Set("a", Number(1))
	st.Set("b", Number(20))

	assert.Equal(t, "{ b: 20, a: 1 }", st.String())
}
