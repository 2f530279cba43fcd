package analyzer

import (
	"fmt"
	"strings"

	"github.com/viant/phpuml/analyzer/activity"
	"github.com/viant/phpuml/inspector/graph"
)

func (s *state) visitAll(statements []graph.Statement) error {
	for _, stmt := range statements {
		if err := s.visit(stmt); err != nil {
			return err
		}
	}
	return nil
}

// visitBody visits body statements as children of block, with stopAtBreak the walk ends after a break child
func (s *state) visitBody(block *activity.Activity, body []graph.Statement, stopAtBreak bool) error {
	for _, stmt := range graph.Flatten(body) {
		if err := s.visit(stmt); err != nil {
			return err
		}
		if last := block.Last(); stopAtBreak && last != nil && last.Kind == activity.Break {
			break
		}
	}
	return nil
}

func (s *state) visit(stmt graph.Statement) error {
	switch actual := stmt.(type) {
	case *graph.ExpressionStatement:
		return s.expressionStatement(actual)
	case *graph.IfStatement:
		return s.ifStatement(actual)
	case *graph.WhileStatement:
		return s.whileStatement(actual)
	case *graph.DoWhileStatement:
		return s.doWhileStatement(actual)
	case *graph.ForStatement:
		return s.forStatement(actual)
	case *graph.ForeachStatement:
		return s.foreachStatement(actual)
	case *graph.SwitchStatement:
		return s.switchStatement(actual)
	case *graph.FunctionDeclaration:
		return s.declare(actual.Function)
	case *graph.BreakStatement:
		s.add(&activity.Activity{Kind: activity.Break, Text: actual.Text, Location: actual.Location})
	case *graph.ContinueStatement:
		s.add(&activity.Activity{Kind: activity.Continue, Text: actual.Text, Location: actual.Location})
	case *graph.BlockStatement:
		return s.visitAll(actual.Body)
	case *graph.UnsupportedStatement:
		s.logger.Debug().Str("type", actual.Type).Str("location", actual.Location.String()).Msg("statement skipped")
	}
	return nil
}

func (s *state) expressionStatement(stmt *graph.ExpressionStatement) error {
	expr := stmt.Expr
	if expr == nil {
		expr = &graph.Expression{Text: stmt.Text}
	}
	if expr.DivisionByZero {
		return newError(DivisionByZero, stmt.Location, "division by zero in expression '%s'", stmt.Text)
	}
	if assignment := expr.Assignment; assignment != nil {
		s.bind(assignment.Name, infer(assignment.Kind))
	}
	for _, call := range expr.Calls {
		if fn := s.functions.Lookup(call.Name); fn != nil {
			return s.inline(call, fn, stmt.Location)
		}
	}
	for _, call := range expr.Calls {
		if !s.isBuiltin(call.Name) {
			return newError(UndeclaredFunction, stmt.Location, "function '%s()' is not declared", call.Name)
		}
	}
	if !expr.Assigns {
		for _, name := range expr.Variables {
			if !s.symbols.Has(name) {
				return newError(UndeclaredVariable, stmt.Location, "variable $%s used without declaration in '%s'", name, stmt.Text)
			}
		}
	}
	s.add(&activity.Activity{Kind: activity.Statement, Text: stmt.Text, Location: stmt.Location})
	return nil
}

// inline expands the body of fn in place as the children of a call activity
func (s *state) inline(call *graph.Call, fn *graph.Function, location *graph.Location) error {
	if got, expected := len(call.Args), fn.ParamCount(); got != expected {
		s.warn(activity.ArgumentCount, location,
			fmt.Sprintf("call to '%s' with %d argument(s), expected %d", fn.Name, got, expected))
	}
	if s.onChain(fn.Name) {
		cycle := strings.Join(append(append([]string{}, s.chain...), fn.Name), " -> ")
		return newError(RecursiveCall, location, "recursive call to '%s()' (%s)", fn.Name, cycle)
	}
	if len(s.chain) >= s.builder.maxCallDepth {
		return newError(CallDepthExceeded, location, "call to '%s()' exceeds the maximum inline depth %d", fn.Name, s.builder.maxCallDepth)
	}
	callActivity := &activity.Activity{Kind: activity.Call, Text: call.Text, Callee: call.Name, Location: location}
	restore := s.enterCall(callActivity, fn)
	defer restore()
	return s.visitAll(fn.Body)
}

func (s *state) ifStatement(stmt *graph.IfStatement) error {
	for _, branch := range stmt.Branches {
		if err := s.checkVariables(branch.Condition, stmt.Location); err != nil {
			return err
		}
	}
	block := &activity.Activity{Kind: activity.If, Text: stmt.Text, Location: stmt.Location}
	for _, branch := range stmt.Branches {
		block.Branches = append(block.Branches, &activity.Branch{
			Keyword:    branch.Keyword,
			Condition:  branch.Condition.Source(),
			Statements: texts(branch.Body),
		})
	}
	closeBlock := s.open(block)
	defer closeBlock()
	if len(stmt.Branches) == 0 {
		return nil
	}
	// only the first branch is expanded into children
	return s.visitBody(block, stmt.Branches[0].Body, true)
}

func (s *state) whileStatement(stmt *graph.WhileStatement) error {
	if err := s.checkVariables(stmt.Condition, stmt.Location); err != nil {
		return err
	}
	block := newLoop(activity.While, &stmt.Node, stmt.Condition.Source(), stmt.Body)
	closeBlock := s.open(block)
	defer closeBlock()
	return s.visitBody(block, stmt.Body, false)
}

func (s *state) doWhileStatement(stmt *graph.DoWhileStatement) error {
	if err := s.checkVariables(stmt.Condition, stmt.Location); err != nil {
		return err
	}
	block := newLoop(activity.DoWhile, &stmt.Node, stmt.Condition.Source(), stmt.Body)
	closeBlock := s.open(block)
	defer closeBlock()
	return s.visitBody(block, stmt.Body, false)
}

func (s *state) forStatement(stmt *graph.ForStatement) error {
	for _, assignment := range stmt.Bindings {
		s.bind(assignment.Name, infer(assignment.Kind))
	}
	if err := s.checkVariables(stmt.Condition, stmt.Location); err != nil {
		return err
	}
	if err := s.checkVariables(stmt.Update, stmt.Location); err != nil {
		return err
	}
	block := newLoop(activity.For, &stmt.Node, stmt.Header, stmt.Body)
	closeBlock := s.open(block)
	defer closeBlock()
	return s.visitBody(block, stmt.Body, true)
}

func (s *state) foreachStatement(stmt *graph.ForeachStatement) error {
	for _, name := range stmt.Subject.VariableNames() {
		if !s.symbols.Has(name) {
			return newError(UndeclaredVariable, stmt.Location, "variable $%s used without declaration in foreach", name)
		}
	}
	for _, name := range stmt.Key.VariableNames() {
		s.bind(name, TypeUnknown)
	}
	for _, name := range stmt.Value.VariableNames() {
		s.bind(name, TypeUnknown)
	}
	block := newLoop(activity.Foreach, &stmt.Node, stmt.Header, stmt.Body)
	closeBlock := s.open(block)
	defer closeBlock()
	return s.visitBody(block, stmt.Body, false)
}

func (s *state) switchStatement(stmt *graph.SwitchStatement) error {
	if err := s.checkVariables(stmt.Selector, stmt.Location); err != nil {
		return err
	}
	block := &activity.Activity{
		Kind:      activity.Switch,
		Text:      stmt.Text,
		Condition: stmt.Selector.Source(),
		Location:  stmt.Location,
	}
	var body []graph.Statement
	for _, arm := range stmt.Cases {
		block.Cases = append(block.Cases, &activity.Case{
			Value:      arm.Value.Source(),
			Default:    arm.Default,
			Statements: texts(arm.Body),
		})
		body = append(body, arm.Body...)
	}
	closeBlock := s.open(block)
	defer closeBlock()
	return s.visitBody(block, body, false)
}

func newLoop(kind activity.Kind, node *graph.Node, condition string, body []graph.Statement) *activity.Activity {
	return &activity.Activity{
		Kind:      kind,
		Text:      node.Text,
		Condition: condition,
		Body:      texts(body),
		Location:  node.Location,
	}
}

// checkVariables fails on the first variable of expr that is not declared
func (s *state) checkVariables(expr *graph.Expression, location *graph.Location) error {
	for _, name := range expr.VariableNames() {
		if !s.symbols.Has(name) {
			return newError(UndeclaredVariable, location, "variable $%s used without prior declaration in '%s'", name, expr.Source())
		}
	}
	return nil
}

func texts(statements []graph.Statement) []string {
	flat := graph.Flatten(statements)
	if len(flat) == 0 {
		return nil
	}
	result := make([]string, 0, len(flat))
	for _, stmt := range flat {
		result = append(result, stmt.Source())
	}
	return result
}
