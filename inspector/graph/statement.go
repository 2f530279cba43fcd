package graph

// Statement is implemented by the closed set of statement kinds produced by the parser
type Statement interface {
	// Source returns the verbatim statement text
	Source() string
	// Span returns the statement location
	Span() *Location
	statement()
}

// Node holds attributes shared by every statement
type Node struct {
	Text     string    // Verbatim source text
	Location *Location // Location in the source
}

func (n *Node) Source() string {
	return n.Text
}

func (n *Node) Span() *Location {
	return n.Location
}

func (n *Node) statement() {}

type (
	// ExpressionStatement covers expression, echo, return, unset and global statements
	ExpressionStatement struct {
		Node
		Expr *Expression
	}

	// IfStatement is a whole if/elseif/else chain
	IfStatement struct {
		Node
		Branches []*Branch
	}

	// Branch is one arm of an if chain
	Branch struct {
		Keyword   string      // if, elseif or else
		Condition *Expression // nil for else
		Body      []Statement
	}

	WhileStatement struct {
		Node
		Condition *Expression
		Body      []Statement
	}

	DoWhileStatement struct {
		Node
		Condition *Expression
		Body      []Statement
	}

	// ForStatement holds the for header split into its three clauses, absent clauses are nil
	ForStatement struct {
		Node
		Header    string
		Init      *Expression
		Bindings  []*Assignment // Plain `$name = value` assignments of the init clause
		Condition *Expression
		Update    *Expression
		Body      []Statement
	}

	// ForeachStatement is foreach (Subject as [Key =>] Value)
	ForeachStatement struct {
		Node
		Header  string
		Subject *Expression
		Key     *Expression
		Value   *Expression
		Body    []Statement
	}

	SwitchStatement struct {
		Node
		Selector *Expression
		Cases    []*SwitchCase
	}

	// SwitchCase is a case or default arm
	SwitchCase struct {
		Value   *Expression // nil for default
		Default bool
		Body    []Statement
	}

	FunctionDeclaration struct {
		Node
		Function *Function
	}

	BreakStatement struct {
		Node
	}

	ContinueStatement struct {
		Node
	}

	// BlockStatement is a brace-delimited statement list
	BlockStatement struct {
		Node
		Body []Statement
	}

	// UnsupportedStatement is any construct outside the analysed subset
	UnsupportedStatement struct {
		Node
		Type string // Parser node type
	}
)

// Flatten returns statements with nested blocks expanded in place
func Flatten(statements []Statement) []Statement {
	var result []Statement
	for _, stmt := range statements {
		if block, ok := stmt.(*BlockStatement); ok {
			result = append(result, Flatten(block.Body)...)
			continue
		}
		result = append(result, stmt)
	}
	return result
}
