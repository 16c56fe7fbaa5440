package viewer

// DefaultIndentation is the number of columns members and elements are
// indented by.
const DefaultIndentation = 2

// RenderingHints tell a widget how it is being drawn.
type RenderingHints struct {
	// Active is set when the widget has the input focus.
	Active bool
}

// DefaultHints returns hints for a focused widget.
func DefaultHints() RenderingHints {
	return RenderingHints{Active: true}
}

// Demand is the space a widget asks for along one axis.
type Demand struct {
	Min int
	// Max is the largest useful size; zero together with Unbounded set
	// means there is no upper limit.
	Max       int
	Unbounded bool
}

// AtLeast returns a demand for n cells or more.
func AtLeast(n int) Demand { return Demand{Min: n, Unbounded: true} }

// Exact returns a demand for exactly n cells.
func Exact(n int) Demand { return Demand{Min: n, Max: n} }

// Demand2D is the space a widget asks for.
type Demand2D struct {
	Width  Demand
	Height Demand
}

// Widget draws a Viewer. It is a short-lived value; create one with
// Viewer.AsWidget whenever drawing.
type Widget struct {
	viewer          *Viewer
	indentation     int
	activeFocused   StyleModifier
	inactiveFocused StyleModifier
	itemChanged     StyleModifier
}

// AsWidget returns a Widget drawing v with the default styles.
func (v *Viewer) AsWidget() Widget {
	return Widget{
		viewer:          v,
		indentation:     DefaultIndentation,
		activeFocused:   DefaultActiveFocused,
		inactiveFocused: DefaultInactiveFocused,
		itemChanged:     DefaultItemChanged,
	}
}

// Indentation sets the indentation of nested values.
func (w Widget) Indentation(n int) Widget {
	w.indentation = max(n, 0)
	return w
}

// ActiveFocused sets the style of the active interaction point while the
// widget has the focus.
func (w Widget) ActiveFocused(m StyleModifier) Widget {
	w.activeFocused = m
	return w
}

// InactiveFocused sets the style of the active interaction point while the
// widget does not have the focus.
func (w Widget) InactiveFocused(m StyleModifier) Widget {
	w.inactiveFocused = m
	return w
}

// ItemChanged sets the style of values changed by the last Update.
func (w Widget) ItemChanged(m StyleModifier) Widget {
	w.itemChanged = m
	return w
}

// Render draws the whole value.
func (w Widget) Render(hints RenderingHints) Frame {
	info := &renderInfo{
		focused:     w.inactiveFocused,
		itemChanged: w.itemChanged,
		indentation: w.indentation,
	}
	if hints.Active {
		info.focused = w.activeFocused
	}
	c := newCursor()
	draw(c, w.viewer.root, w.viewer.active, info)
	return c.frame()
}

// SpaceDemand estimates the space needed to draw the whole value.
func (w Widget) SpaceDemand() Demand2D {
	f := w.Render(DefaultHints())
	return Demand2D{
		Width:  AtLeast(f.Width()),
		Height: Exact(f.Height()),
	}
}

// Draw renders the value into a width x height window. If the value does not
// fit, the window is scrolled so that the active interaction point is
// visible.
func (w Widget) Draw(width, height int, hints RenderingHints) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	f := w.Render(hints)
	return f.Window(ScrollOffset(f.ActiveLine, f.Height(), height), width, height)
}

// ScrollOffset returns the first line to show in a window of height lines so
// that the active line is visible. The offset is kept at zero while possible.
func ScrollOffset(activeLine, total, height int) int {
	if height <= 0 || total <= height || activeLine < height {
		return 0
	}
	off := activeLine - height + 1
	return min(off, total-height)
}
