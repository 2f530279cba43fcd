package graph

// File represents a parsed PHP source file with its statements and declared functions
type File struct {
	Name       string      // File name
	Path       string      // File path or URL
	Hash       uint64      // Content fingerprint of the source
	Statements []Statement // Top-level statements in source order
	Functions  []*Function // Top-level function declarations in source order
}

// Function represents a declared function
type Function struct {
	Name     string      // Function name
	Params   []string    // Ordered parameter names without the leading '$'
	Body     []Statement // Body statements in source order
	Text     string      // Verbatim declaration text
	Location *Location   // Location of the declaration
}

// ParamCount returns the declared parameter count
func (f *Function) ParamCount() int {
	return len(f.Params)
}
