package graph

import "fmt"

// SyntaxError reports the first syntax error found by the parser
type SyntaxError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("syntax error at %s:%d:%d - %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("syntax error at %d:%d - %s", e.Line, e.Column, e.Message)
}
