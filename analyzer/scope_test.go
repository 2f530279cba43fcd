package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/phpuml/inspector/graph"
)

func TestSymbolTable(t *testing.T) {
	symbols := SymbolTable{}
	symbols.Bind("b", TypeNumber)
	symbols.Bind("a", TypeString)
	snapshot := symbols.Clone()
	symbols.Bind("a", TypeArray)
	symbols.Bind("c", TypeUnknown)

	assert.Equal(t, []string{"a", "b", "c"}, symbols.Names())
	assert.Equal(t, TypeArray, symbols["a"])
	assert.Equal(t, []string{"a", "b"}, snapshot.Names())
	assert.Equal(t, TypeString, snapshot["a"])
	assert.False(t, snapshot.Has("c"))
}

func TestFunctionTable_Declare(t *testing.T) {
	functions := FunctionTable{}
	first := &graph.Function{Name: "f"}
	second := &graph.Function{Name: "f", Params: []string{"x"}}

	assert.True(t, functions.Declare(first))
	assert.False(t, functions.Declare(first))
	assert.False(t, functions.Declare(&graph.Function{}))
	assert.False(t, functions.Declare(nil))
	assert.False(t, functions.Declare(second))
	assert.Same(t, first, functions.Lookup("f"))
	assert.Nil(t, functions.Lookup("g"))
}

func TestInfer(t *testing.T) {
	assert.Equal(t, TypeString, infer(graph.ValueString))
	assert.Equal(t, TypeNumber, infer(graph.ValueNumber))
	assert.Equal(t, TypeArray, infer(graph.ValueArray))
	assert.Equal(t, TypeUnknown, infer(graph.ValueOther))
	assert.Equal(t, TypeUnknown, infer(""))
}
