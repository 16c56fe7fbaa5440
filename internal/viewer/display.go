package viewer

import "sort"

// DefaultInitialItems is the number of array elements shown when an array is
// displayed for the first time.
const DefaultInitialItems = 3

// node is an element of the display tree.
type node interface {
	kind() Kind
}

type scalarNode struct {
	value   string
	changed bool
}

func (*scalarNode) kind() Kind { return KindScalar }

type objectNode struct {
	description        string
	hasDescription     bool
	descriptionChanged bool

	keys     []string // sorted
	members  map[string]node
	extended bool
}

func (*objectNode) kind() Kind { return KindMap }

func (o *objectNode) toggle() { o.extended = !o.extended }

// nearestKey returns key if present, otherwise the first key sorting after it,
// otherwise the last key.
func (o *objectNode) nearestKey(key string) (string, bool) {
	if len(o.keys) == 0 {
		return "", false
	}
	i := sort.SearchStrings(o.keys, key)
	if i < len(o.keys) {
		return o.keys[i], true
	}
	return o.keys[len(o.keys)-1], true
}

type arrayNode struct {
	description        string
	hasDescription     bool
	descriptionChanged bool

	values        []node
	extended      bool
	numExtended   int
	lengthChanged bool
}

func (*arrayNode) kind() Kind { return KindArray }

func (a *arrayNode) toggle() { a.extended = !a.extended }

func (a *arrayNode) canGrow() bool { return a.numExtended < len(a.values) }

func (a *arrayNode) canShrink() bool { return a.numExtended > 0 }

func (a *arrayNode) grow() bool {
	if !a.canGrow() {
		return false
	}
	a.numExtended++
	return true
}

func (a *arrayNode) shrink() bool {
	if !a.canShrink() {
		return false
	}
	a.numExtended--
	return true
}

// builder creates and diffs display trees.
type builder struct {
	initialItems int
}

func (b builder) build(v Value) node {
	vv := v.Visit()
	switch vv.Kind {
	case KindArray:
		values := make([]node, 0, len(vv.Elements))
		for _, e := range vv.Elements {
			values = append(values, b.build(e))
		}
		return &arrayNode{
			description:    vv.description,
			hasDescription: vv.hasDescription,
			values:         values,
			extended:       true,
			numExtended:    min(b.initialItems, len(values)),
		}
	case KindMap:
		obj := &objectNode{
			description:    vv.description,
			hasDescription: vv.hasDescription,
			members:        make(map[string]node, len(vv.Members)),
			extended:       true,
		}
		for _, m := range vv.Members {
			obj.members[m.Key] = b.build(m.Value)
		}
		obj.keys = sortedKeys(obj.members)
		return obj
	default:
		return &scalarNode{value: vv.Scalar}
	}
}

// update builds the tree for v, carrying over the view state of old and
// marking everything that differs from it.
func (b builder) update(old node, v Value) node {
	vv := v.Visit()
	switch o := old.(type) {
	case *scalarNode:
		if vv.Kind == KindScalar {
			return &scalarNode{value: vv.Scalar, changed: o.value != vv.Scalar}
		}
	case *objectNode:
		if vv.Kind == KindMap {
			obj := &objectNode{
				description:        vv.description,
				hasDescription:     vv.hasDescription,
				descriptionChanged: !sameDescription(o.description, o.hasDescription, vv),
				members:            make(map[string]node, len(vv.Members)),
				extended:           o.extended,
			}
			for _, m := range vv.Members {
				if prev, ok := o.members[m.Key]; ok {
					obj.members[m.Key] = b.update(prev, m.Value)
				} else {
					obj.members[m.Key] = b.build(m.Value)
				}
			}
			obj.keys = sortedKeys(obj.members)
			return obj
		}
	case *arrayNode:
		if vv.Kind == KindArray {
			values := make([]node, 0, len(vv.Elements))
			for i, e := range vv.Elements {
				if i < len(o.values) {
					values = append(values, b.update(o.values[i], e))
				} else {
					values = append(values, b.build(e))
				}
			}
			return &arrayNode{
				description:        vv.description,
				hasDescription:     vv.hasDescription,
				descriptionChanged: !sameDescription(o.description, o.hasDescription, vv),
				values:             values,
				extended:           o.extended,
				numExtended:        min(o.numExtended, len(values)),
				lengthChanged:      len(o.values) != len(values),
			}
		}
	}

	// The kind changed: everything below is new.
	n := b.build(v)
	markChanged(n)
	return n
}

func markChanged(n node) {
	switch n := n.(type) {
	case *scalarNode:
		n.changed = true
	case *objectNode:
		n.descriptionChanged = n.hasDescription
		for _, m := range n.members {
			markChanged(m)
		}
	case *arrayNode:
		n.descriptionChanged = n.hasDescription
		for _, v := range n.values {
			markChanged(v)
		}
	}
}

// expandAll unfolds every container and shows all array elements.
func expandAll(n node) {
	switch n := n.(type) {
	case *objectNode:
		n.extended = true
		for _, m := range n.members {
			expandAll(m)
		}
	case *arrayNode:
		n.extended = true
		n.numExtended = len(n.values)
		for _, v := range n.values {
			expandAll(v)
		}
	}
}

func sameDescription(old string, hadOld bool, vv Variant) bool {
	d, has := vv.Description()
	return hadOld == has && old == d
}

func sortedKeys(m map[string]node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
