package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"jsonview/internal/viewer"
)

// Theme names accepted by UIConfig.Theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is auto, light or dark. Auto inspects COLORFGBG.
	Theme string `yaml:"theme" json:"theme"`

	// StatusBar shows the active path and messages below the viewer
	StatusBar bool `yaml:"status_bar" json:"status_bar"`

	// AltScreen runs the viewer in the alternate screen buffer
	AltScreen bool `yaml:"alt_screen" json:"alt_screen"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:     ThemeAuto,
		StatusBar: true,
		AltScreen: true,
	}
}

// ViewerConfig configures the widget.
type ViewerConfig struct {
	// Indentation of nested members and elements
	Indentation int `yaml:"indentation" json:"indentation"`

	// InitialItems is how many elements of a new array are shown
	InitialItems int `yaml:"initial_items" json:"initial_items"`

	Styles StylesConfig `yaml:"styles" json:"styles"`
}

// DefaultViewerConfig mirrors the widget defaults.
func DefaultViewerConfig() ViewerConfig {
	return ViewerConfig{
		Indentation:  viewer.DefaultIndentation,
		InitialItems: viewer.DefaultInitialItems,
		Styles: StylesConfig{
			ActiveFocused:   StyleSpec{Invert: "toggle", Bold: "yes"},
			InactiveFocused: StyleSpec{Bold: "yes"},
			ItemChanged:     StyleSpec{Background: "1"},
		},
	}
}

// StyleSpec describes a viewer.StyleModifier. Attribute fields take leave,
// yes, no or toggle; colors take anything lipgloss.Color accepts (ANSI
// index or hex). Empty fields leave the attribute unchanged.
type StyleSpec struct {
	Bold       string `yaml:"bold,omitempty" json:"bold,omitempty"`
	Italic     string `yaml:"italic,omitempty" json:"italic,omitempty"`
	Underline  string `yaml:"underline,omitempty" json:"underline,omitempty"`
	Invert     string `yaml:"invert,omitempty" json:"invert,omitempty"`
	Foreground string `yaml:"foreground,omitempty" json:"foreground,omitempty"`
	Background string `yaml:"background,omitempty" json:"background,omitempty"`
}

// Modifier builds the StyleModifier described by s.
func (s StyleSpec) Modifier() (viewer.StyleModifier, error) {
	m := viewer.NewStyleModifier()
	for _, attr := range []struct {
		name  string
		value string
		set   func(viewer.StyleModifier, viewer.ModifyMode) viewer.StyleModifier
	}{
		{"bold", s.Bold, viewer.StyleModifier.Bold},
		{"italic", s.Italic, viewer.StyleModifier.Italic},
		{"underline", s.Underline, viewer.StyleModifier.Underline},
		{"invert", s.Invert, viewer.StyleModifier.Invert},
	} {
		mode, err := viewer.ParseModifyMode(attr.value)
		if err != nil {
			return m, fmt.Errorf("%s: %w", attr.name, err)
		}
		m = attr.set(m, mode)
	}
	if s.Foreground != "" {
		m = m.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		m = m.Background(lipgloss.Color(s.Background))
	}
	return m, nil
}

// StylesConfig holds the widget styles.
type StylesConfig struct {
	ActiveFocused   StyleSpec `yaml:"active_focused" json:"active_focused"`
	InactiveFocused StyleSpec `yaml:"inactive_focused" json:"inactive_focused"`
	ItemChanged     StyleSpec `yaml:"item_changed" json:"item_changed"`
}

// Modifiers holds converted widget styles.
type Modifiers struct {
	ActiveFocused   viewer.StyleModifier
	InactiveFocused viewer.StyleModifier
	ItemChanged     viewer.StyleModifier
}

// Modifiers converts all styles.
func (s StylesConfig) Modifiers() (Modifiers, error) {
	var out Modifiers
	var err error
	if out.ActiveFocused, err = s.ActiveFocused.Modifier(); err != nil {
		return out, fmt.Errorf("viewer.styles.active_focused: %w", err)
	}
	if out.InactiveFocused, err = s.InactiveFocused.Modifier(); err != nil {
		return out, fmt.Errorf("viewer.styles.inactive_focused: %w", err)
	}
	if out.ItemChanged, err = s.ItemChanged.Modifier(); err != nil {
		return out, fmt.Errorf("viewer.styles.item_changed: %w", err)
	}
	return out, nil
}

// KeyConfig maps actions of the interactive viewer to key names as reported
// by bubbletea (e.g. "down", "j", "ctrl+c", " ").
type KeyConfig struct {
	Next      []string `yaml:"next" json:"next"`
	Previous  []string `yaml:"previous" json:"previous"`
	First     []string `yaml:"first" json:"first"`
	Last      []string `yaml:"last" json:"last"`
	Toggle    []string `yaml:"toggle" json:"toggle"`
	Expand    []string `yaml:"expand" json:"expand"`
	Reload    []string `yaml:"reload" json:"reload"`
	CopyValue []string `yaml:"copy_value" json:"copy_value"`
	CopyPath  []string `yaml:"copy_path" json:"copy_path"`
	Help      []string `yaml:"help" json:"help"`
	Quit      []string `yaml:"quit" json:"quit"`
}

// DefaultKeyConfig returns the default bindings.
func DefaultKeyConfig() KeyConfig {
	return KeyConfig{
		Next:      []string{"down", "j"},
		Previous:  []string{"up", "k"},
		First:     []string{"home", "g"},
		Last:      []string{"end", "G"},
		Toggle:    []string{"enter", " "},
		Expand:    []string{"e"},
		Reload:    []string{"r"},
		CopyValue: []string{"y"},
		CopyPath:  []string{"Y"},
		Help:      []string{"?"},
		Quit:      []string{"q", "ctrl+c"},
	}
}
