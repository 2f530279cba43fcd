package analyzer

import (
	"fmt"

	"github.com/viant/phpuml/inspector/graph"
)

// ErrorKind classifies fatal semantic errors
type ErrorKind string

const (
	UndeclaredFunction ErrorKind = "UNDECLARED_FUNCTION"
	UndeclaredVariable ErrorKind = "UNDECLARED_VARIABLE"
	DivisionByZero     ErrorKind = "DIVISION_BY_ZERO"
	RecursiveCall      ErrorKind = "RECURSIVE_CALL"
	CallDepthExceeded  ErrorKind = "CALL_DEPTH_EXCEEDED"
	FunctionRedeclared ErrorKind = "FUNCTION_REDECLARED"
)

// SemanticError aborts the whole analysis pass
type SemanticError struct {
	Kind     ErrorKind
	Message  string
	Location *graph.Location
}

func (e *SemanticError) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("semantic error at line %d: %s", e.Location.StartLine, e.Message)
	}
	return "semantic error: " + e.Message
}

func newError(kind ErrorKind, location *graph.Location, format string, args ...interface{}) *SemanticError {
	return &SemanticError{Kind: kind, Message: fmt.Sprintf(format, args...), Location: location}
}
