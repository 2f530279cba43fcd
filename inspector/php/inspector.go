package php

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/viant/afs"
	"github.com/viant/phpuml/inspector/graph"
)

const (
	defaultFilename = "source.php"
	openTag         = "<?php"
)

// Inspector parses PHP source code into the graph model
type Inspector struct {
	fs afs.Service
}

// Option configures an Inspector
type Option func(*Inspector)

// WithFS sets the storage service used by InspectFile
func WithFS(fs afs.Service) Option {
	return func(i *Inspector) {
		i.fs = fs
	}
}

// NewInspector creates a PHP inspector
func NewInspector(options ...Option) *Inspector {
	i := &Inspector{fs: afs.New()}
	for _, option := range options {
		option(i)
	}
	return i
}

// InspectSource parses PHP source code from a byte slice
func (i *Inspector) InspectSource(src []byte) (*graph.File, error) {
	return i.inspect(context.Background(), src, defaultFilename)
}

// InspectFile downloads and parses a PHP file, URL can be a local path or any afs supported URL
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*graph.File, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return i.inspect(ctx, src, URL)
}

func (i *Inspector) inspect(ctx context.Context, src []byte, location string) (*graph.File, error) {
	source, offset := withOpenTag(src)

	parser := sitter.NewParser()
	parser.SetLanguage(php.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", location, err)
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, source, offset, location)
	}

	l := &lowerer{src: source, offset: offset}
	aFile := &graph.File{
		Name:       path.Base(location),
		Path:       location,
		Statements: l.statements(root),
	}
	if aFile.Hash, err = graph.Hash(src); err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", location, err)
	}
	for _, stmt := range aFile.Statements {
		if decl, ok := stmt.(*graph.FunctionDeclaration); ok {
			aFile.Functions = append(aFile.Functions, decl.Function)
		}
	}
	return aFile, nil
}

// withOpenTag prefixes bare snippets with the php open tag on the same line, so line numbers hold
func withOpenTag(src []byte) ([]byte, int) {
	if bytes.Contains(src, []byte(openTag)) {
		return src, 0
	}
	prefix := []byte(openTag + " ")
	return append(prefix, src...), len(prefix)
}

// syntaxError reports the first ERROR or MISSING node in document order
func syntaxError(root *sitter.Node, src []byte, offset int, location string) error {
	culprit := firstError(root)
	if culprit == nil {
		culprit = root
	}
	point := culprit.StartPoint()
	column := int(point.Column) + 1
	if point.Row == 0 {
		column -= offset
	}
	message := "unexpected input"
	if culprit.IsMissing() {
		message = "missing " + culprit.Type()
	} else if content := culprit.Content(src); content != "" {
		message = fmt.Sprintf("unexpected '%s'", abbreviate(content, 32))
	}
	return &graph.SyntaxError{
		Path:    location,
		Line:    int(point.Row) + 1,
		Column:  column,
		Message: message,
	}
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if found := firstError(child); found != nil {
			return found
		}
	}
	return nil
}

func abbreviate(text string, limit int) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		text = text[:idx]
	}
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
