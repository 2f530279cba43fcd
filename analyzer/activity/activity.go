package activity

import "github.com/viant/phpuml/inspector/graph"

// Activity is one node of the program activity tree
type Activity struct {
	Kind      Kind            `yaml:"kind"`
	Text      string          `yaml:"text"`                // Verbatim source fragment
	Condition string          `yaml:"condition,omitempty"` // Loop condition, for/foreach header or switch selector
	Callee    string          `yaml:"callee,omitempty"`    // Bare callee name of a call
	Branches  []*Branch       `yaml:"branches,omitempty"`  // if/elseif/else arms in source order
	Cases     []*Case         `yaml:"cases,omitempty"`     // switch arms in source order
	Body      []string        `yaml:"body,omitempty"`      // Loop body statement texts
	Children  []*Activity     `yaml:"children,omitempty"`
	Location  *graph.Location `yaml:"-"`
}

// Branch is one arm of an if chain
type Branch struct {
	Keyword    string   `yaml:"keyword"` // if, elseif or else
	Condition  string   `yaml:"condition,omitempty"`
	Statements []string `yaml:"statements,omitempty"`
}

// Case is one arm of a switch
type Case struct {
	Value      string   `yaml:"value,omitempty"`
	Default    bool     `yaml:"default,omitempty"`
	Statements []string `yaml:"statements,omitempty"`
}

// Forest is an ordered list of top-level activities
type Forest []*Activity

// Append adds a child activity
func (a *Activity) Append(child *Activity) {
	a.Children = append(a.Children, child)
}

// Last returns the last child or nil
func (a *Activity) Last() *Activity {
	if len(a.Children) == 0 {
		return nil
	}
	return a.Children[len(a.Children)-1]
}

// Count returns the number of activities in the forest including descendants
func (f Forest) Count() int {
	count := 0
	for _, a := range f {
		count += 1 + Forest(a.Children).Count()
	}
	return count
}

// Walk visits activities depth first in source order until fn returns false
func (f Forest) Walk(fn func(a *Activity) bool) bool {
	for _, a := range f {
		if !fn(a) {
			return false
		}
		if !Forest(a.Children).Walk(fn) {
			return false
		}
	}
	return true
}
