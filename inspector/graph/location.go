package graph

import "fmt"

// Location represents a span of source code
type Location struct {
	Start     int // Start byte offset
	End       int // End byte offset
	StartLine int // 1-based start line
	EndLine   int // 1-based end line
	Column    int // 1-based start column
}

// String returns line:column of the location start
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%d:%d", l.StartLine, l.Column)
}
