package conformance

// Case is a single corpus entry: an expression to parse, together with
// whatever it is expected to produce.
type Case struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`

	// WantErr, when true, asserts that Parse fails; Expr need not be valid
	// XPath in that case. Mutually exclusive with WantTree/WantUsedPrefixes.
	WantErr bool `yaml:"want_err,omitempty"`

	// WantTree, when non-nil, asserts the parsed root's Summarize() output
	// equals this tree exactly.
	WantTree *Summary `yaml:"want_tree,omitempty"`

	// WantUsedPrefixes, when non-nil, asserts
	// analysis.FindUsedPrefixes(root, CollectOptions{}) equals this set
	// (order-insensitive).
	WantUsedPrefixes []string `yaml:"want_used_prefixes,omitempty"`
}
