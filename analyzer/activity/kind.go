package activity

// Kind tags an activity with the construct it was built from
type Kind string

const (
	Statement Kind = "statement"
	If        Kind = "if"
	While     Kind = "while"
	For       Kind = "for"
	Foreach   Kind = "foreach"
	DoWhile   Kind = "do_while"
	Switch    Kind = "switch"
	Call      Kind = "call"
	Break     Kind = "break"
	Continue  Kind = "continue"
)

// IsLoop reports whether the kind is one of the loop kinds
func (k Kind) IsLoop() bool {
	switch k {
	case While, For, Foreach, DoWhile:
		return true
	}
	return false
}

// Keyword returns the source keyword of the kind, e.g. do-while
func (k Kind) Keyword() string {
	if k == DoWhile {
		return "do-while"
	}
	return string(k)
}
