package viewer

// Scrollable is implemented by widgets whose content can be stepped through.
type Scrollable interface {
	ScrollForwards() error
	ScrollBackwards() error
	ScrollToBeginning() error
	ScrollToEnd() error
}

var _ Scrollable = (*Viewer)(nil)

// Option configures a Viewer.
type Option func(*Viewer)

// WithInitialItems sets how many elements of a newly displayed array are
// shown. Negative values are treated as zero.
func WithInitialItems(n int) Option {
	return func(v *Viewer) {
		v.builder.initialItems = max(n, 0)
	}
}

// Viewer displays a value and tracks the active interaction point.
//
// There is always content: a Viewer is created with a value and the value can
// only be replaced, never removed. The zero Viewer is not usable; use New.
type Viewer struct {
	builder  builder
	root     node
	active   Path
	revision uint64
}

// New creates a Viewer displaying value.
func New(value Value, opts ...Option) *Viewer {
	v := &Viewer{builder: builder{initialItems: DefaultInitialItems}}
	for _, opt := range opts {
		opt(v)
	}
	v.root = v.builder.build(value)
	v.fixActive()
	return v
}

// Reset displays value without highlighting changes.
func (v *Viewer) Reset(value Value) {
	v.root = v.builder.build(value)
	v.fixActive()
}

// Update displays value and highlights where it differs from the previous
// value. Fold state and the number of shown array elements are kept. The
// highlighting lasts until the next Update or Reset.
func (v *Viewer) Update(value Value) {
	v.root = v.builder.update(v.root, value)
	v.fixActive()
}

// SelectNext activates the next interaction point, generally the one below
// the current one.
func (v *Viewer) SelectNext() error {
	ks := knobs(v.root, nil, nil)
	i := v.activeIndex(ks)
	if i+1 >= len(ks) {
		return ErrNoSelection
	}
	v.setActive(ks[i+1])
	return nil
}

// SelectPrevious activates the previous interaction point, generally the one
// above the current one.
func (v *Viewer) SelectPrevious() error {
	ks := knobs(v.root, nil, nil)
	i := v.activeIndex(ks)
	if i <= 0 {
		return ErrNoSelection
	}
	v.setActive(ks[i-1])
	return nil
}

// SelectFirst activates the first interaction point.
func (v *Viewer) SelectFirst() error {
	first := firstKnob(v.root)
	if v.active.Equal(first) {
		return ErrNoSelection
	}
	v.setActive(first)
	return nil
}

// SelectLast activates the last interaction point.
func (v *Viewer) SelectLast() error {
	ks := knobs(v.root, nil, nil)
	last := ks[len(ks)-1]
	if v.active.Equal(last) {
		return ErrNoSelection
	}
	v.setActive(last)
	return nil
}

// ToggleActiveElement acts on the active interaction point: it folds or
// unfolds structures and grows or shrinks the shown part of arrays. If the
// active interaction point disappears as a result, a nearby one is selected.
func (v *Viewer) ToggleActiveElement() error {
	err := act(v.active, v.root)
	v.fixActive()
	return err
}

// ExpandAll unfolds every structure and shows every array element.
func (v *Viewer) ExpandAll() {
	expandAll(v.root)
	v.fixActive()
}

// ActivePath returns a copy of the path of the active interaction point.
func (v *Viewer) ActivePath() Path {
	return append(Path(nil), v.active...)
}

// ActiveValue returns the text of the active scalar. For structural
// interaction points it returns the pointer of the structure.
func (v *Viewer) ActiveValue() string {
	n, err := lookup(v.active, v.root)
	if err != nil {
		return ""
	}
	if s, ok := n.(*scalarNode); ok {
		return s.value
	}
	if ptr := v.active.Pointer(); ptr != "" {
		return ptr
	}
	return "/"
}

// Revision increases every time the displayed content or the selection
// changes. It can be used as a cache key for rendered output.
func (v *Viewer) Revision() uint64 { return v.revision }

// ScrollForwards implements Scrollable.
func (v *Viewer) ScrollForwards() error { return v.SelectNext() }

// ScrollBackwards implements Scrollable.
func (v *Viewer) ScrollBackwards() error { return v.SelectPrevious() }

// ScrollToBeginning implements Scrollable.
func (v *Viewer) ScrollToBeginning() error { return v.SelectFirst() }

// ScrollToEnd implements Scrollable.
func (v *Viewer) ScrollToEnd() error { return v.SelectLast() }

func (v *Viewer) activeIndex(ks []Path) int {
	for i, k := range ks {
		if k.Equal(v.active) {
			return i
		}
	}
	return -1
}

func (v *Viewer) setActive(p Path) {
	v.active = p
	v.revision++
}

func (v *Viewer) fixActive() {
	v.active = fixPath(v.active, v.root)
	v.revision++
}
