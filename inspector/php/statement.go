package php

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/phpuml/inspector/graph"
)

// lowerer converts the tree-sitter concrete syntax tree into graph statements
type lowerer struct {
	src    []byte
	offset int // bytes prepended to the input source
}

// statements lowers the statement children of a container node (program, block, case arm)
func (l *lowerer) statements(n *sitter.Node) []graph.Statement {
	var result []graph.Statement
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if stmt := l.statement(n.NamedChild(i)); stmt != nil {
			result = append(result, stmt)
		}
	}
	return result
}

func (l *lowerer) statement(n *sitter.Node) graph.Statement {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "php_tag", "text", "text_interpolation", "comment", "empty_statement":
		return nil
	case "expression_statement":
		expr := l.expression(n)
		if inner := firstNamed(n); inner != nil {
			expr.Assignment = l.assignment(inner)
		}
		return &graph.ExpressionStatement{Node: l.node(n), Expr: expr}
	case "echo_statement", "return_statement", "unset_statement", "global_declaration", "exit_statement":
		return &graph.ExpressionStatement{Node: l.node(n), Expr: l.expression(n)}
	case "compound_statement", "colon_block":
		return &graph.BlockStatement{Node: l.node(n), Body: l.statements(n)}
	case "if_statement":
		return l.ifStatement(n)
	case "while_statement":
		return &graph.WhileStatement{
			Node:      l.node(n),
			Condition: l.condition(n),
			Body:      l.body(bodyOf(n)),
		}
	case "do_statement":
		return &graph.DoWhileStatement{
			Node:      l.node(n),
			Condition: l.condition(n),
			Body:      l.body(bodyOf(n)),
		}
	case "for_statement":
		return l.forStatement(n)
	case "foreach_statement":
		return l.foreachStatement(n)
	case "switch_statement":
		return l.switchStatement(n)
	case "function_definition":
		return &graph.FunctionDeclaration{Node: l.node(n), Function: l.function(n)}
	case "break_statement":
		return &graph.BreakStatement{Node: l.node(n)}
	case "continue_statement":
		return &graph.ContinueStatement{Node: l.node(n)}
	}
	return &graph.UnsupportedStatement{Node: l.node(n), Type: n.Type()}
}

// body lowers a statement body which is either a block or a single statement
func (l *lowerer) body(n *sitter.Node) []graph.Statement {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "compound_statement", "colon_block":
		return l.statements(n)
	}
	if stmt := l.statement(n); stmt != nil {
		return []graph.Statement{stmt}
	}
	return nil
}

func (l *lowerer) ifStatement(n *sitter.Node) *graph.IfStatement {
	stmt := &graph.IfStatement{Node: l.node(n)}
	stmt.Branches = append(stmt.Branches, &graph.Branch{
		Keyword:   "if",
		Condition: l.condition(n),
		Body:      l.body(bodyOf(n)),
	})
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "else_if_clause":
			stmt.Branches = append(stmt.Branches, &graph.Branch{
				Keyword:   "elseif",
				Condition: l.condition(child),
				Body:      l.body(bodyOf(child)),
			})
		case "else_clause":
			body := bodyOf(child)
			if body != nil && body.Type() == "if_statement" {
				// `else if` continues the chain
				nested := l.ifStatement(body)
				nested.Branches[0].Keyword = "elseif"
				stmt.Branches = append(stmt.Branches, nested.Branches...)
				continue
			}
			stmt.Branches = append(stmt.Branches, &graph.Branch{
				Keyword: "else",
				Body:    l.body(body),
			})
		}
	}
	return stmt
}

func (l *lowerer) forStatement(n *sitter.Node) *graph.ForStatement {
	stmt := &graph.ForStatement{Node: l.node(n)}
	open, closing := parens(n)
	if open == -1 || closing == -1 {
		return stmt
	}
	stmt.Header = l.between(n.Child(open), n.Child(closing))

	var clauses [][]*sitter.Node
	var current []*sitter.Node
	for i := open + 1; i < closing; i++ {
		child := n.Child(i)
		if !child.IsNamed() {
			if child.Type() == ";" {
				clauses = append(clauses, current)
				current = nil
			}
			continue
		}
		if child.Type() == "comment" {
			continue
		}
		current = append(current, child)
	}
	clauses = append(clauses, current)
	for len(clauses) < 3 {
		clauses = append(clauses, nil)
	}
	stmt.Init = l.expression(clauses[0]...)
	for _, n := range clauses[0] {
		stmt.Bindings = append(stmt.Bindings, l.assignments(n)...)
	}
	stmt.Condition = l.expression(clauses[1]...)
	stmt.Update = l.expression(clauses[2]...)
	stmt.Body = l.body(after(n, closing))
	return stmt
}

// assignments collects plain assignments of a comma separated expression list
func (l *lowerer) assignments(n *sitter.Node) []*graph.Assignment {
	switch n.Type() {
	case "assignment_expression":
		if assignment := l.assignment(n); assignment != nil {
			return []*graph.Assignment{assignment}
		}
	case "sequence_expression":
		var result []*graph.Assignment
		for i := 0; i < int(n.NamedChildCount()); i++ {
			result = append(result, l.assignments(n.NamedChild(i))...)
		}
		return result
	}
	return nil
}

func (l *lowerer) foreachStatement(n *sitter.Node) *graph.ForeachStatement {
	stmt := &graph.ForeachStatement{Node: l.node(n)}
	open, closing := parens(n)
	if open == -1 || closing == -1 {
		return stmt
	}
	stmt.Header = l.between(n.Child(open), n.Child(closing))

	var subject, target []*sitter.Node
	seenAs := false
	for i := open + 1; i < closing; i++ {
		child := n.Child(i)
		if !child.IsNamed() {
			if strings.EqualFold(child.Type(), "as") {
				seenAs = true
			}
			continue
		}
		if child.Type() == "comment" {
			continue
		}
		if seenAs {
			target = append(target, child)
		} else {
			subject = append(subject, child)
		}
	}
	stmt.Subject = l.expression(subject...)
	if len(target) == 1 && target[0].Type() == "pair" && target[0].NamedChildCount() >= 2 {
		pair := target[0]
		stmt.Key = l.expression(pair.NamedChild(0))
		stmt.Value = l.expression(pair.NamedChild(int(pair.NamedChildCount()) - 1))
	} else {
		stmt.Value = l.expression(target...)
	}
	stmt.Body = l.body(after(n, closing))
	return stmt
}

func (l *lowerer) switchStatement(n *sitter.Node) *graph.SwitchStatement {
	stmt := &graph.SwitchStatement{Node: l.node(n), Selector: l.condition(n)}
	block := bodyOf(n)
	if block == nil {
		block = childOfType(n, "switch_block")
	}
	if block == nil {
		return stmt
	}
	for i := 0; i < int(block.NamedChildCount()); i++ {
		arm := block.NamedChild(i)
		switch arm.Type() {
		case "case_statement":
			value := arm.ChildByFieldName("value")
			if value == nil {
				value = firstNamed(arm)
			}
			stmt.Cases = append(stmt.Cases, &graph.SwitchCase{
				Value: l.expression(value),
				Body:  l.armStatements(arm, value),
			})
		case "default_statement":
			stmt.Cases = append(stmt.Cases, &graph.SwitchCase{
				Default: true,
				Body:    l.armStatements(arm, nil),
			})
		}
	}
	return stmt
}

// armStatements lowers the statements of a case arm, skipping the case value
func (l *lowerer) armStatements(arm, value *sitter.Node) []graph.Statement {
	var result []graph.Statement
	for i := 0; i < int(arm.NamedChildCount()); i++ {
		child := arm.NamedChild(i)
		if value != nil && sameNode(child, value) {
			continue
		}
		if stmt := l.statement(child); stmt != nil {
			result = append(result, stmt)
		}
	}
	return result
}

func (l *lowerer) function(n *sitter.Node) *graph.Function {
	function := &graph.Function{Text: l.text(n), Location: l.location(n)}
	if name := n.ChildByFieldName("name"); name != nil {
		function.Name = name.Content(l.src)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			param := params.NamedChild(i)
			if !strings.HasSuffix(param.Type(), "_parameter") {
				continue
			}
			nameNode := param.ChildByFieldName("name")
			if nameNode == nil {
				nameNode = childOfType(param, "variable_name")
			}
			if nameNode == nil {
				continue
			}
			function.Params = append(function.Params, strings.TrimPrefix(nameNode.Content(l.src), "$"))
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		function.Body = l.statements(body)
	}
	return function
}

// condition returns the unwrapped `condition` field of a control statement
func (l *lowerer) condition(n *sitter.Node) *graph.Expression {
	cond := n.ChildByFieldName("condition")
	if cond == nil {
		cond = childOfType(n, "parenthesized_expression")
	}
	if cond == nil {
		return nil
	}
	if cond.Type() == "parenthesized_expression" {
		if inner := firstNamed(cond); inner != nil {
			cond = inner
		}
	}
	return l.expression(cond)
}

func (l *lowerer) node(n *sitter.Node) graph.Node {
	return graph.Node{Text: l.text(n), Location: l.location(n)}
}

func (l *lowerer) text(n *sitter.Node) string {
	return strings.TrimSpace(n.Content(l.src))
}

// between returns the trimmed source strictly between two nodes
func (l *lowerer) between(from, to *sitter.Node) string {
	start, end := int(from.EndByte()), int(to.StartByte())
	if start >= end {
		return ""
	}
	return strings.TrimSpace(string(l.src[start:end]))
}

func (l *lowerer) location(n *sitter.Node) *graph.Location {
	start, end := n.StartPoint(), n.EndPoint()
	column := int(start.Column) + 1
	if start.Row == 0 {
		column -= l.offset
	}
	return &graph.Location{
		Start:     int(n.StartByte()) - l.offset,
		End:       int(n.EndByte()) - l.offset,
		StartLine: int(start.Row) + 1,
		EndLine:   int(end.Row) + 1,
		Column:    column,
	}
}

// bodyOf returns the `body` field, falling back to the last named child
func bodyOf(n *sitter.Node) *sitter.Node {
	if body := n.ChildByFieldName("body"); body != nil {
		return body
	}
	for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
		child := n.NamedChild(i)
		switch child.Type() {
		case "comment", "parenthesized_expression":
			continue
		}
		return child
	}
	return nil
}

// parens returns child indexes of the header parentheses of for/foreach
func parens(n *sitter.Node) (int, int) {
	open, closing, depth := -1, -1, 0
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.IsNamed() {
			continue
		}
		switch child.Type() {
		case "(":
			if depth == 0 && open == -1 {
				open = i
			}
			depth++
		case ")":
			depth--
			if depth == 0 && closing == -1 {
				closing = i
			}
		}
	}
	return open, closing
}

// after returns the first named, non comment child following index
func after(n *sitter.Node, index int) *sitter.Node {
	for i := index + 1; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.IsNamed() && child.Type() != "comment" {
			return child
		}
	}
	return nil
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() != "comment" {
			return child
		}
	}
	return nil
}

func childOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
