package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	first, err := Hash([]byte("<?php echo 1;"))
	require.NoError(t, err)
	second, err := Hash([]byte("<?php echo 1;"))
	require.NoError(t, err)
	other, err := Hash([]byte("<?php echo 2;"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestFlatten(t *testing.T) {
	a := &ExpressionStatement{Node: Node{Text: "a;"}}
	b := &ExpressionStatement{Node: Node{Text: "b;"}}
	c := &BreakStatement{Node: Node{Text: "break;"}}
	nested := &BlockStatement{Body: []Statement{b, &BlockStatement{Body: []Statement{c}}}}

	var texts []string
	for _, stmt := range Flatten([]Statement{a, nested}) {
		texts = append(texts, stmt.Source())
	}
	assert.Equal(t, []string{"a;", "b;", "break;"}, texts)
	assert.Empty(t, Flatten(nil))
}

func TestExpression_NilSafe(t *testing.T) {
	var expr *Expression
	assert.Equal(t, "", expr.Source())
	assert.Nil(t, expr.VariableNames())

	var location *Location
	assert.Equal(t, "", location.String())
	assert.Equal(t, "3:5", (&Location{StartLine: 3, Column: 5}).String())
}

func TestSyntaxError_Error(t *testing.T) {
	err := &SyntaxError{Path: "a.php", Line: 2, Column: 4, Message: "unexpected ';'"}
	assert.Equal(t, "syntax error at a.php:2:4 - unexpected ';'", err.Error())
	err.Path = ""
	assert.Equal(t, "syntax error at 2:4 - unexpected ';'", err.Error())
}
