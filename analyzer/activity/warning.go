package activity

import (
	"fmt"

	"github.com/viant/phpuml/inspector/graph"
)

// WarningKind classifies non fatal findings
type WarningKind string

const (
	// ArgumentCount reports a call whose argument count differs from the declaration
	ArgumentCount WarningKind = "ARGUMENT_COUNT"
)

// Warning is a non fatal semantic finding
type Warning struct {
	Kind     WarningKind     `yaml:"kind"`
	Message  string          `yaml:"message"`
	Location *graph.Location `yaml:"-"`
}

func (w *Warning) String() string {
	if w.Location != nil {
		return fmt.Sprintf("%s (line %d)", w.Message, w.Location.StartLine)
	}
	return w.Message
}
