// Package viewer implements a terminal widget for viewing structured data.
//
// A Viewer holds a display tree built from a Value together with the active
// interaction point. Interaction points are the fold toggles of objects and
// arrays, the grow/shrink knobs of arrays and scalars. Use SelectNext and
// SelectPrevious (or the Scrollable methods) to move between them and
// ToggleActiveElement to act on the active one.
//
// Replacing the value with Update highlights what changed since the previous
// value; Reset replaces it without highlighting.
package viewer

// Kind identifies the shape of a Variant.
type Kind int

const (
	KindScalar Kind = iota
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is anything the viewer can display. Visit is called every time the
// viewer builds or updates its display tree.
type Value interface {
	Visit() Variant
}

// Member is a single key/value pair of a map variant.
type Member struct {
	Key   string
	Value Value
}

// Variant is the result of visiting a Value.
type Variant struct {
	Kind     Kind
	Scalar   string
	Elements []Value
	Members  []Member

	description    string
	hasDescription bool
}

// Scalar returns a scalar variant displaying s verbatim.
func Scalar(s string) Variant {
	return Variant{Kind: KindScalar, Scalar: s}
}

// Array returns an array variant.
func Array(elements ...Value) Variant {
	return Variant{Kind: KindArray, Elements: elements}
}

// Map returns a map variant. When keys repeat, the last member wins.
func Map(members ...Member) Variant {
	return Variant{Kind: KindMap, Members: members}
}

// WithDescription attaches a description that is shown in front of the
// opening bracket of arrays and maps. It is ignored for scalars.
func (v Variant) WithDescription(d string) Variant {
	v.description = d
	v.hasDescription = true
	return v
}

// Description returns the description and whether one is set.
func (v Variant) Description() (string, bool) {
	return v.description, v.hasDescription
}

// Text is a Value that is always displayed as the scalar it holds.
type Text string

// Visit implements Value.
func (t Text) Visit() Variant { return Scalar(string(t)) }

// ArrayValue is a Value backed by a slice of Values.
type ArrayValue []Value

// Visit implements Value.
func (a ArrayValue) Visit() Variant { return Array(a...) }

// MapValue is a Value backed by an ordered list of members.
type MapValue []Member

// Visit implements Value.
func (m MapValue) Visit() Variant { return Map(m...) }
