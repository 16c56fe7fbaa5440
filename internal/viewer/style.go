package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModifyMode says how a StyleModifier changes a boolean attribute.
type ModifyMode int

const (
	// Leave keeps the attribute as it is.
	Leave ModifyMode = iota
	// Yes sets the attribute.
	Yes
	// No clears the attribute.
	No
	// Toggle flips the attribute.
	Toggle
)

func (m ModifyMode) apply(b bool) bool {
	switch m {
	case Yes:
		return true
	case No:
		return false
	case Toggle:
		return !b
	default:
		return b
	}
}

// ParseModifyMode parses "leave", "yes", "no" or "toggle". The empty string
// means Leave; "true" and "false" are accepted as Yes and No.
func ParseModifyMode(s string) (ModifyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "leave":
		return Leave, nil
	case "yes", "true", "on":
		return Yes, nil
	case "no", "false", "off":
		return No, nil
	case "toggle":
		return Toggle, nil
	}
	return Leave, fmt.Errorf("unknown modify mode %q", s)
}

// cellStyle is the resolved style of a run of text.
type cellStyle struct {
	bold      bool
	italic    bool
	underline bool
	invert    bool
	fg        lipgloss.TerminalColor
	bg        lipgloss.TerminalColor
}

func (s cellStyle) plain() bool {
	return s == cellStyle{}
}

func (s cellStyle) toLipgloss() lipgloss.Style {
	st := lipgloss.NewStyle().
		Bold(s.bold).
		Italic(s.italic).
		Underline(s.underline).
		Reverse(s.invert)
	if s.fg != nil {
		st = st.Foreground(s.fg)
	}
	if s.bg != nil {
		st = st.Background(s.bg)
	}
	return st
}

// StyleModifier changes the style of the text written after it is applied.
// Modifiers stack: applying one on top of another only changes the
// attributes it mentions.
type StyleModifier struct {
	bold      ModifyMode
	italic    ModifyMode
	underline ModifyMode
	invert    ModifyMode
	fg        lipgloss.TerminalColor
	bg        lipgloss.TerminalColor
}

// NewStyleModifier returns a modifier that changes nothing.
func NewStyleModifier() StyleModifier { return StyleModifier{} }

// Bold sets how the bold attribute is changed.
func (m StyleModifier) Bold(mode ModifyMode) StyleModifier {
	m.bold = mode
	return m
}

// Italic sets how the italic attribute is changed.
func (m StyleModifier) Italic(mode ModifyMode) StyleModifier {
	m.italic = mode
	return m
}

// Underline sets how the underline attribute is changed.
func (m StyleModifier) Underline(mode ModifyMode) StyleModifier {
	m.underline = mode
	return m
}

// Invert sets how foreground and background are swapped.
func (m StyleModifier) Invert(mode ModifyMode) StyleModifier {
	m.invert = mode
	return m
}

// Foreground sets the foreground color. nil leaves it unchanged.
func (m StyleModifier) Foreground(c lipgloss.TerminalColor) StyleModifier {
	m.fg = c
	return m
}

// Background sets the background color. nil leaves it unchanged.
func (m StyleModifier) Background(c lipgloss.TerminalColor) StyleModifier {
	m.bg = c
	return m
}

func (m StyleModifier) apply(s cellStyle) cellStyle {
	s.bold = m.bold.apply(s.bold)
	s.italic = m.italic.apply(s.italic)
	s.underline = m.underline.apply(s.underline)
	s.invert = m.invert.apply(s.invert)
	if m.fg != nil {
		s.fg = m.fg
	}
	if m.bg != nil {
		s.bg = m.bg
	}
	return s
}

// Default styles of the widget.
var (
	DefaultActiveFocused   = NewStyleModifier().Invert(Toggle).Bold(Yes)
	DefaultInactiveFocused = NewStyleModifier().Bold(Yes)
	DefaultItemChanged     = NewStyleModifier().Background(lipgloss.Color("1"))
)
