package php

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/phpuml/inspector/graph"
)

// expression summarises one or more adjacent expression nodes, it returns nil when nodes is empty
func (l *lowerer) expression(nodes ...*sitter.Node) *graph.Expression {
	var present []*sitter.Node
	for _, n := range nodes {
		if n != nil {
			present = append(present, n)
		}
	}
	if len(present) == 0 {
		return nil
	}
	expr := &graph.Expression{}
	if len(present) == 1 {
		expr.Text = l.text(present[0])
	} else {
		first, last := present[0], present[len(present)-1]
		expr.Text = strings.TrimSpace(string(l.src[first.StartByte():last.EndByte()]))
	}
	for _, n := range present {
		l.summarize(n, expr)
	}
	return expr
}

func (l *lowerer) summarize(n *sitter.Node, expr *graph.Expression) {
	switch n.Type() {
	case "variable_name":
		expr.Variables = append(expr.Variables, strings.TrimPrefix(n.Content(l.src), "$"))
		return
	case "anonymous_function", "anonymous_function_creation_expression", "arrow_function":
		// closures bind their own parameters
		return
	case "function_call_expression":
		if call := l.call(n); call != nil {
			expr.Calls = append(expr.Calls, call)
		}
	case "assignment_expression", "reference_assignment_expression":
		expr.Assigns = true
	case "augmented_assignment_expression":
		expr.Assigns = true
		if operator(n) == "/=" && l.isZero(n.ChildByFieldName("right")) {
			expr.DivisionByZero = true
		}
	case "binary_expression":
		if operator(n) == "/" && l.isZero(n.ChildByFieldName("right")) {
			expr.DivisionByZero = true
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		l.summarize(n.NamedChild(i), expr)
	}
}

// call returns a named call, calls through variables or expressions yield nil
func (l *lowerer) call(n *sitter.Node) *graph.Call {
	fn := n.ChildByFieldName("function")
	if fn == nil {
		return nil
	}
	switch fn.Type() {
	case "name", "qualified_name":
	default:
		return nil
	}
	name := fn.Content(l.src)
	if idx := strings.LastIndex(name, `\`); idx != -1 {
		name = name[idx+1:]
	}
	call := &graph.Call{Name: name, Text: l.text(n)}
	if args := n.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			arg := args.NamedChild(i)
			if arg.Type() == "comment" {
				continue
			}
			call.Args = append(call.Args, l.text(arg))
		}
	}
	return call
}

// assignment returns `$name = value` details when n is a plain assignment to a variable
func (l *lowerer) assignment(n *sitter.Node) *graph.Assignment {
	if n == nil || n.Type() != "assignment_expression" {
		return nil
	}
	left, right := n.ChildByFieldName("left"), n.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "variable_name" {
		return nil
	}
	return &graph.Assignment{
		Name:  strings.TrimPrefix(left.Content(l.src), "$"),
		Value: l.text(right),
		Kind:  l.valueKind(right),
	}
}

// valueKind classifies an assigned value by its leading operand: a quoted literal is a string,
// array(...) or [...] an array, and a literal made of digits and dots only a number
func (l *lowerer) valueKind(n *sitter.Node) graph.ValueKind {
	switch n.Type() {
	case "integer", "float":
		if isDecimal(n.Content(l.src)) {
			return graph.ValueNumber
		}
		return graph.ValueOther
	}
	for n.Type() == "binary_expression" {
		left := n.ChildByFieldName("left")
		if left == nil {
			break
		}
		n = left
	}
	switch n.Type() {
	case "string", "encapsed_string":
		return graph.ValueString
	case "array_creation_expression":
		return graph.ValueArray
	}
	return graph.ValueOther
}

func isDecimal(literal string) bool {
	if literal == "" {
		return false
	}
	for _, c := range literal {
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// operator returns the operator token of a binary or augmented assignment expression
func operator(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); !child.IsNamed() {
			return child.Type()
		}
	}
	return ""
}

func (l *lowerer) isZero(n *sitter.Node) bool {
	for n != nil && n.Type() == "parenthesized_expression" {
		n = firstNamed(n)
	}
	if n == nil {
		return false
	}
	literal := strings.ReplaceAll(n.Content(l.src), "_", "")
	switch n.Type() {
	case "integer":
		value, err := strconv.ParseInt(literal, 0, 64)
		return err == nil && value == 0
	case "float":
		value, err := strconv.ParseFloat(literal, 64)
		return err == nil && value == 0
	}
	return false
}
