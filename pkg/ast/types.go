package ast

// SequenceType is implemented by the two sequence-type productions:
// EmptySequenceType and ItemSequenceType (an ItemType plus an occurrence
// indicator). It is a Node, not an Expr: sequence types appear only in
// type-annotation positions (instance of, treat as, inline-function
// signatures), never as evaluable operands.
type SequenceType interface {
	Node
	sequenceTypeNode()
}

// EmptySequenceType is the literal "empty-sequence()".
type EmptySequenceType struct {
	BaseNode
}

func (t *EmptySequenceType) sequenceTypeNode() {}
func (t *EmptySequenceType) String() string    { return "empty-sequence()" }
func (t *EmptySequenceType) Children() []Node  { return nil }

// Occurrence is the optional "?", "*" or "+" suffix on an ItemSequenceType.
type Occurrence int

const (
	OccurrenceOne Occurrence = iota
	OccurrenceOptional
	OccurrenceZeroOrMore
	OccurrenceOneOrMore
)

func (o Occurrence) String() string {
	switch o {
	case OccurrenceOptional:
		return "?"
	case OccurrenceZeroOrMore:
		return "*"
	case OccurrenceOneOrMore:
		return "+"
	default:
		return ""
	}
}

// ItemSequenceType is an ItemType together with an occurrence indicator.
type ItemSequenceType struct {
	BaseNode
	Item       ItemType
	Occurrence Occurrence
}

func (t *ItemSequenceType) sequenceTypeNode() {}
func (t *ItemSequenceType) String() string    { return "ItemSequenceType" + t.Occurrence.String() }
func (t *ItemSequenceType) Children() []Node  { return []Node{t.Item} }

// SingleType is an AtomicOrUnionType name with an optional trailing "?",
// used by castable/cast. CastExpr/CastableExpr embed it by value, and the
// value type implements Node so that their Children() can return it.
type SingleType struct {
	BaseNode
	Name     EQName
	Optional bool
}

func (t SingleType) Start() Position   { return t.BaseNode.StartPos }
func (t SingleType) End() Position     { return t.BaseNode.EndPos }
func (t SingleType) Children() []Node  { return nil }
func (t SingleType) String() string {
	if t.Optional {
		return t.Name.String() + "?"
	}
	return t.Name.String()
}

// ItemType is implemented by every item-type production: KindTest,
// AnyItemType ("item()"), the three function/map/array tests, an
// AtomicOrUnionType name, and a ParenthesizedItemType.
type ItemType interface {
	Node
	itemTypeNode()
}

// AnyItemType is the literal "item()".
type AnyItemType struct{ BaseNode }

func (t *AnyItemType) itemTypeNode()    {}
func (t *AnyItemType) String() string   { return "item()" }
func (t *AnyItemType) Children() []Node { return nil }

// AtomicOrUnionType is a bare EQName used as an item type, e.g. "xs:integer".
type AtomicOrUnionType struct {
	BaseNode
	Name EQName
}

func (t *AtomicOrUnionType) itemTypeNode()    {}
func (t *AtomicOrUnionType) String() string   { return t.Name.String() }
func (t *AtomicOrUnionType) Children() []Node { return nil }

// ParenthesizedItemType is "(ItemType)".
type ParenthesizedItemType struct {
	BaseNode
	Inner ItemType
}

func (t *ParenthesizedItemType) itemTypeNode()    {}
func (t *ParenthesizedItemType) String() string   { return "(" + t.Inner.String() + ")" }
func (t *ParenthesizedItemType) Children() []Node { return []Node{t.Inner} }

// KindKind enumerates the closed set of KindTest variants. Modeling all
// ten as one struct with a discriminant field, rather than ten distinct
// Go types, is a deliberate simplification: the variants share every field
// they need (an optional name and/or declared type) and nothing downstream
// (query or analysis) needs to type-switch on them individually, only to
// test Kind itself.
type KindKind int

const (
	KindDocument KindKind = iota
	KindElement
	KindAttribute
	KindSchemaElement
	KindSchemaAttribute
	KindPI // processing-instruction
	KindComment
	KindText
	KindNamespaceNode
	KindAnyKind // node()
)

func (k KindKind) String() string {
	switch k {
	case KindDocument:
		return "document-node"
	case KindElement:
		return "element"
	case KindAttribute:
		return "attribute"
	case KindSchemaElement:
		return "schema-element"
	case KindSchemaAttribute:
		return "schema-attribute"
	case KindPI:
		return "processing-instruction"
	case KindComment:
		return "comment"
	case KindText:
		return "text"
	case KindNamespaceNode:
		return "namespace-node"
	default:
		return "node"
	}
}

// KindTest is any of the ten node-kind tests. Name is set for
// element()/attribute() tests with an explicit (possibly wildcard) name,
// and for processing-instruction(Target) — where, per the disambiguation
// rule for that one production, Target is always a plain NCName local part
// with no prefix, recorded here as an unprefixed EQName. TypeName is set
// only for the optional "TypeName" clause of element()/attribute() tests.
// Nillable records the trailing "?" that marks an element test's type as
// nillable-permitting. DocumentElement holds the nested ElementTest or
// SchemaElementTest of "document-node(...)", when present.
type KindTest struct {
	BaseNode
	Kind            KindKind
	Name            *EQName   // element()/attribute() name, or PI target
	NameIsWildcard  bool      // "*" in place of a name, e.g. element(*)
	TypeName        *EQName   // optional declared type in element()/attribute()
	Nillable        bool      // optional trailing "?" on TypeName
	DocumentElement *KindTest // nested test inside document-node(...)
}

func (t *KindTest) itemTypeNode() {}
func (t *KindTest) String() string {
	return t.Kind.String() + "()"
}
func (t *KindTest) Children() []Node {
	if t.DocumentElement != nil {
		return []Node{t.DocumentElement}
	}
	return nil
}

// Param is one parameter of an inline function expression: "$name as Type".
type Param struct {
	BaseNode
	Name EQName
	Type SequenceType // nil when no "as SequenceType" clause is given
}

func (p Param) Children() []Node {
	if p.Type != nil {
		return []Node{p.Type}
	}
	return nil
}

func (p Param) String() string { return "Param(" + p.Name.String() + ")" }

// FunctionTest is "function(*)" (AnyFunctionTest) or
// "function(ParamType, ...) as ReturnType" (TypedFunctionTest). ParamTypes
// is nil for the any-function form.
type FunctionTest struct {
	BaseNode
	AnyFunction bool
	ParamTypes  []SequenceType
	ReturnType  SequenceType
}

func (t *FunctionTest) itemTypeNode() {}
func (t *FunctionTest) String() string {
	if t.AnyFunction {
		return "function(*)"
	}
	return "function(...)"
}
func (t *FunctionTest) Children() []Node {
	if t.AnyFunction {
		return nil
	}
	children := make([]Node, 0, len(t.ParamTypes)+1)
	for _, p := range t.ParamTypes {
		children = append(children, p)
	}
	return append(children, t.ReturnType)
}

// MapTest is "map(*)" (AnyMapTest) or "map(KeyType, ValueType)"
// (TypedMapTest). KeyType is nil for the any-map form.
type MapTest struct {
	BaseNode
	AnyMap    bool
	KeyType   *AtomicOrUnionType
	ValueType SequenceType
}

func (t *MapTest) itemTypeNode() {}
func (t *MapTest) String() string {
	if t.AnyMap {
		return "map(*)"
	}
	return "map(...)"
}
func (t *MapTest) Children() []Node {
	if t.AnyMap {
		return nil
	}
	return []Node{t.KeyType, t.ValueType}
}

// ArrayTest is "array(*)" (AnyArrayTest) or "array(MemberType)"
// (TypedArrayTest). MemberType is nil for the any-array form.
type ArrayTest struct {
	BaseNode
	AnyArray   bool
	MemberType SequenceType
}

func (t *ArrayTest) itemTypeNode() {}
func (t *ArrayTest) String() string {
	if t.AnyArray {
		return "array(*)"
	}
	return "array(...)"
}
func (t *ArrayTest) Children() []Node {
	if t.AnyArray {
		return nil
	}
	return []Node{t.MemberType}
}
