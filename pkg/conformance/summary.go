// Package conformance drives the parser and its analyses over a corpus of
// YAML-described expressions, comparing parsed-tree shape and analysis
// output against golden values rather than exercising each grammar
// production by hand in Go.
package conformance

import "github.com/xpath31/xpathparser/pkg/ast"

// Summary is a structural fingerprint of an AST node: its String() label
// plus the recursively summarized children, deep enough to catch a wrong
// precedence shape or a misplaced operand but shallow enough to write by
// hand in a YAML fixture.
type Summary struct {
	Label    string     `yaml:"label"`
	Children []*Summary `yaml:"children,omitempty"`
}

// Summarize builds a Summary of n and its full descendant tree.
func Summarize(n ast.Node) *Summary {
	if n == nil {
		return nil
	}
	s := &Summary{Label: n.String()}
	for _, c := range n.Children() {
		s.Children = append(s.Children, Summarize(c))
	}
	return s
}
