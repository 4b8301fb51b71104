package analysis

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/xpath31/xpathparser/pkg/ast"
)

// NameSet is an insertion-ordered set of EQNames. Iteration order follows
// first occurrence in the walk (source order), though per the
// specification's ordering guarantees, set-valued output order is
// otherwise unspecified and callers should not depend on it beyond that.
type NameSet struct{ m *orderedmap.OrderedMap[ast.EQName, struct{}] }

func newNameSet() *NameSet {
	return &NameSet{m: orderedmap.New[ast.EQName, struct{}]()}
}

func (s *NameSet) add(n ast.EQName) { s.m.Set(n, struct{}{}) }

// Len reports the number of distinct names collected.
func (s *NameSet) Len() int { return s.m.Len() }

// Slice returns the collected names in insertion order.
func (s *NameSet) Slice() []ast.EQName {
	out := make([]ast.EQName, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Contains reports whether n was collected.
func (s *NameSet) Contains(n ast.EQName) bool {
	_, ok := s.m.Get(n)
	return ok
}

// StringSet is an insertion-ordered set of strings, used for collected
// namespace prefixes.
type StringSet struct{ m *orderedmap.OrderedMap[string, struct{}] }

func newStringSet() *StringSet {
	return &StringSet{m: orderedmap.New[string, struct{}]()}
}

func (s *StringSet) add(v string) { s.m.Set(v, struct{}{}) }

func (s *StringSet) Len() int { return s.m.Len() }

func (s *StringSet) Slice() []string {
	out := make([]string, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func (s *StringSet) Contains(v string) bool {
	_, ok := s.m.Get(v)
	return ok
}

// ExtraExtractor lets a caller surface additional EQNames embedded in
// string-literal arguments of specific functions, e.g. recognizing that
// xs:QName('p:nm') names prefix "p". It receives the called function's
// name and its (already-parsed) argument list and returns any EQNames it
// can extract from literal arguments.
type ExtraExtractor func(fn ast.EQName, args []ast.Argument) []ast.EQName

// CollectOptions configures FindUsedEQNames/FindUsedPrefixes.
type CollectOptions struct {
	// IncludeWildcardPrefixes, when true, makes a NameTest's "prefix:*"
	// wildcard contribute its prefix to FindUsedPrefixes. Off by default.
	IncludeWildcardPrefixes bool
	// Extra, when non-nil, is consulted at every FunctionCall to surface
	// additional EQNames embedded in string-literal arguments.
	Extra ExtraExtractor
}

// FindUsedEQNames walks root and collects the EQName attached to every
// variable reference, binding, parameter, function call, named function
// reference, arrow specifier, simple name test, atomic-or-union type,
// single type, and the name/type carried by attribute, element,
// schema-attribute, schema-element and processing-instruction kind tests.
func FindUsedEQNames(root ast.Node, opts CollectOptions) *NameSet {
	c := &collector{names: newNameSet(), prefixes: newStringSet(), opts: opts}
	c.visit(root)
	return c.names
}

// FindUsedPrefixes walks root and collects the non-empty prefix of every
// QName-form EQName encountered anywhere FindUsedEQNames looks;
// URIQualifiedNames never contribute a prefix. With
// opts.IncludeWildcardPrefixes, the prefix of any "prefix:*" NameTest
// wildcard is added as well.
func FindUsedPrefixes(root ast.Node, opts CollectOptions) *StringSet {
	c := &collector{names: newNameSet(), prefixes: newStringSet(), opts: opts}
	c.visit(root)
	return c.prefixes
}

type collector struct {
	names    *NameSet
	prefixes *StringSet
	opts     CollectOptions
}

func (c *collector) collect(n ast.EQName) {
	c.names.add(n)
	if n.HasPrefix() {
		c.prefixes.add(n.Prefix)
	}
}

func (c *collector) visit(n ast.Node) {
	if n == nil {
		return
	}
	switch node := n.(type) {
	case *ast.VarRef:
		c.collect(node.Name)
	case *ast.FunctionCall:
		c.collect(node.Name)
		if c.opts.Extra != nil {
			for _, extra := range c.opts.Extra(node.Name, node.Args) {
				c.collect(extra)
			}
		}
	case *ast.NamedFunctionRef:
		c.collect(node.Name)
	case *ast.ArrowExpr:
		// ArrowExpr.Children() surfaces each specifier's nested expression
		// (for the "(Expr)" specifier form) but not the specifier's own
		// Name/VarRef, since those are plain EQName fields, not Nodes.
		for _, step := range node.Tail {
			if step.Specifier.Name != nil {
				c.collect(*step.Specifier.Name)
			}
			if step.Specifier.VarRef != nil {
				c.collect(*step.Specifier.VarRef)
			}
		}
	case *ast.NameTest:
		switch node.Wildcard {
		case ast.NotWildcard:
			c.collect(node.Name)
		case ast.WildcardAnyLocal:
			if c.opts.IncludeWildcardPrefixes && node.Name.Prefix != "" {
				c.prefixes.add(node.Name.Prefix)
			}
		}
	case *ast.AtomicOrUnionType:
		c.collect(node.Name)
	case ast.SingleType:
		c.collect(node.Name)
	case *ast.KindTest:
		if node.Name != nil {
			c.collect(*node.Name)
		}
		if node.TypeName != nil {
			c.collect(*node.TypeName)
		}
	case ast.Param:
		c.collect(node.Name)
	case *ast.ForExpr:
		c.collectBindingNames(node.Bindings)
	case *ast.LetExpr:
		c.collectBindingNames(node.Bindings)
	case *ast.QuantifiedExpr:
		c.collectBindingNames(node.Bindings)
	}

	for _, child := range n.Children() {
		c.visit(child)
	}
}

// collectBindingNames records the bound name of every binding in a
// for/let/quantified expression; Children() on these nodes surfaces each
// binding's RHS and the trailing return/satisfies expression but not the
// bound EQName itself, since that name is not a sub-expression.
func (c *collector) collectBindingNames(bindings []ast.Binding) {
	for _, b := range bindings {
		c.collect(b.Name)
	}
}
