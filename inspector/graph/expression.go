package graph

// ValueKind classifies the literal syntax of an assigned value
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueNumber ValueKind = "number"
	ValueArray  ValueKind = "array"
	ValueOther  ValueKind = "other"
)

// Expression is a structural summary of an expression subtree
type Expression struct {
	Text           string      // Verbatim text
	Variables      []string    // Referenced variable names in source order, without '$'
	Calls          []*Call     // Function calls in source order
	Assignment     *Assignment // Set when the expression is a plain `$name = value`
	Assigns        bool        // Whether any assignment operator occurs
	DivisionByZero bool        // Whether a literal zero divisor occurs
}

// Call represents a named function call
type Call struct {
	Name string   // Callee name
	Text string   // Verbatim call text
	Args []string // Verbatim argument texts
}

// Assignment represents `$Name = Value`
type Assignment struct {
	Name  string
	Value string
	Kind  ValueKind
}

// Source returns the expression text, or empty string for nil
func (e *Expression) Source() string {
	if e == nil {
		return ""
	}
	return e.Text
}

// VariableNames returns referenced variables, or nil for nil
func (e *Expression) VariableNames() []string {
	if e == nil {
		return nil
	}
	return e.Variables
}
