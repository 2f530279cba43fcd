package analyzer

import (
	"sort"

	"github.com/viant/phpuml/inspector/graph"
)

// Type is a coarse variable type inferred from literal syntax
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeArray   Type = "array"
	TypeUnknown Type = "unknown"
)

// infer maps the literal class of an assigned value to a coarse type
func infer(kind graph.ValueKind) Type {
	switch kind {
	case graph.ValueString:
		return TypeString
	case graph.ValueNumber:
		return TypeNumber
	case graph.ValueArray:
		return TypeArray
	}
	return TypeUnknown
}

// SymbolTable maps variable names (without '$') to their inferred type
type SymbolTable map[string]Type

// Has reports whether name is declared
func (s SymbolTable) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Bind declares or re-declares name
func (s SymbolTable) Bind(name string, typ Type) {
	s[name] = typ
}

// Clone returns a snapshot of the table
func (s SymbolTable) Clone() SymbolTable {
	result := make(SymbolTable, len(s))
	for k, v := range s {
		result[k] = v
	}
	return result
}

// Names returns declared names in lexical order
func (s SymbolTable) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionTable maps function names to declarations
type FunctionTable map[string]*graph.Function

// Declare records fn and reports whether it was added, a name that is already taken keeps its first declaration
func (t FunctionTable) Declare(fn *graph.Function) bool {
	if fn == nil || fn.Name == "" {
		return false
	}
	if _, ok := t[fn.Name]; ok {
		return false
	}
	t[fn.Name] = fn
	return true
}

// Lookup returns the declaration of name or nil
func (t FunctionTable) Lookup(name string) *graph.Function {
	return t[name]
}
