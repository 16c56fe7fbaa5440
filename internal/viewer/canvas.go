package viewer

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

type run struct {
	text  string
	style cellStyle
}

// Line is one rendered line of the widget.
type Line struct {
	runs  []run
	width int
}

// Width returns the number of terminal cells the line occupies.
func (l Line) Width() int { return l.width }

// Plain returns the text of the line without styling.
func (l Line) Plain() string {
	var sb strings.Builder
	for _, r := range l.runs {
		sb.WriteString(r.text)
	}
	return sb.String()
}

// String returns the styled line.
func (l Line) String() string {
	var sb strings.Builder
	for _, r := range l.runs {
		if r.style.plain() {
			sb.WriteString(r.text)
			continue
		}
		sb.WriteString(r.style.toLipgloss().Render(r.text))
	}
	return sb.String()
}

// clip returns the line cut to at most width cells.
func (l Line) clip(width int) Line {
	if l.width <= width {
		return l
	}
	out := Line{}
	for _, r := range l.runs {
		rest := width - out.width
		if rest <= 0 {
			break
		}
		w := runewidth.StringWidth(r.text)
		if w <= rest {
			out.runs = append(out.runs, r)
			out.width += w
			continue
		}
		var sb strings.Builder
		used := 0
		for _, c := range r.text {
			cw := runewidth.RuneWidth(c)
			if used+cw > rest {
				break
			}
			sb.WriteRune(c)
			used += cw
		}
		out.runs = append(out.runs, run{text: sb.String(), style: r.style})
		out.width += used
		break
	}
	return out
}

// Frame is the complete rendering of a widget.
type Frame struct {
	Lines []Line
	// ActiveLine is the index of the line holding the active interaction
	// point, or -1 if none was drawn.
	ActiveLine int
}

// Width returns the width of the widest line.
func (f Frame) Width() int {
	w := 0
	for _, l := range f.Lines {
		w = max(w, l.width)
	}
	return w
}

// Height returns the number of lines.
func (f Frame) Height() int { return len(f.Lines) }

// String returns the styled frame.
func (f Frame) String() string {
	lines := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		lines[i] = l.String()
	}
	return strings.Join(lines, "\n")
}

// Plain returns the frame without styling.
func (f Frame) Plain() string {
	lines := make([]string, len(f.Lines))
	for i, l := range f.Lines {
		lines[i] = l.Plain()
	}
	return strings.Join(lines, "\n")
}

// Window returns the styled part of the frame starting at line offset, at
// most width cells wide and height lines high.
func (f Frame) Window(offset, width, height int) string {
	if offset < 0 {
		offset = 0
	}
	var lines []string
	for i := offset; i < len(f.Lines) && i < offset+height; i++ {
		lines = append(lines, f.Lines[i].clip(width).String())
	}
	return strings.Join(lines, "\n")
}

// cursor writes styled text into lines. Newlines continue at the line start
// column.
type cursor struct {
	lines      []Line
	lineStart  int
	style      cellStyle
	activeLine int
}

func newCursor() *cursor {
	return &cursor{lines: []Line{{}}, activeLine: -1}
}

func (c *cursor) current() *Line { return &c.lines[len(c.lines)-1] }

func (c *cursor) write(s string) {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			c.wrapLine()
		}
		c.put(part, c.style)
	}
}

func (c *cursor) put(s string, style cellStyle) {
	if s == "" {
		return
	}
	l := c.current()
	s = sanitize(s, l.width)
	if n := len(l.runs); n > 0 && l.runs[n-1].style == style {
		l.runs[n-1].text += s
	} else {
		l.runs = append(l.runs, run{text: s, style: style})
	}
	l.width += runewidth.StringWidth(s)
}

// tabWidth is the distance between tab stops.
const tabWidth = 8

// sanitize makes s safe to print starting at column col. Tabs are expanded
// to the next tab stop and control characters are shown as escapes.
func sanitize(s string, col int) string {
	if !strings.ContainsFunc(s, isControl) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\t':
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case isControl(r):
			e := fmt.Sprintf("\\x%02x", r)
			sb.WriteString(e)
			col += len(e)
		default:
			sb.WriteRune(r)
			col += runewidth.RuneWidth(r)
		}
	}
	return sb.String()
}

// isControl reports C0 and C1 control characters and DEL.
func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

// wrapLine starts a new line at the line start column.
func (c *cursor) wrapLine() {
	c.lines = append(c.lines, Line{})
	c.put(strings.Repeat(" ", c.lineStart), cellStyle{})
}

// styled runs fn with m applied on top of the current style.
func (c *cursor) styled(fn func(), mods ...StyleModifier) {
	saved := c.style
	for _, m := range mods {
		c.style = m.apply(c.style)
	}
	fn()
	c.style = saved
}

// indented runs fn with the line start column moved right by n.
func (c *cursor) indented(n int, fn func()) {
	saved := c.lineStart
	c.lineStart += n
	fn()
	c.lineStart = saved
}

func (c *cursor) markActive() {
	c.activeLine = len(c.lines) - 1
}

func (c *cursor) frame() Frame {
	return Frame{Lines: c.lines, ActiveLine: c.activeLine}
}
