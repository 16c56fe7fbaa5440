// Package ui hosts the JSON viewer widget in a bubbletea program.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jsonview/internal/config"
)

var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#101F38")
	LightPrimary    = lipgloss.Color("#101F38")
	LightMuted      = lipgloss.Color("#6a737d")
	LightBar        = lipgloss.Color("#e1e4e8")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#8BC34A")
	DarkMuted      = lipgloss.Color("#8a94a6")
	DarkBar        = lipgloss.Color("#1e2a3d")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Bar        lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Muted:      LightMuted,
		Bar:        LightBar,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Muted:      DarkMuted,
		Bar:        DarkBar,
		IsDark:     true,
	}
}

// DetectTheme resolves a configured theme name. For "auto" (or empty) the
// background index in COLORFGBG decides, falling back to light mode.
func DetectTheme(pref string) Theme {
	switch pref {
	case config.ThemeDark:
		return DarkTheme()
	case config.ThemeLight:
		return LightTheme()
	}

	// Format is usually "foreground;background", sometimes with a middle part.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			// 0-6 and 8 (dark grey) are likely dark backgrounds
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
		}
	}
	return LightTheme()
}

// Styles holds the styled components around the viewer.
type Styles struct {
	Theme Theme

	StatusBar lipgloss.Style
	Source    lipgloss.Style
	Path      lipgloss.Style
	Message   lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	bar := lipgloss.NewStyle().
		Background(theme.Bar).
		Foreground(theme.Foreground)

	return Styles{
		Theme:     theme,
		StatusBar: bar,
		Source: bar.
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),
		Path: bar.
			Padding(0, 1),
		Message: bar.
			Foreground(theme.Muted).
			Padding(0, 1),
		Error: bar.
			Foreground(Destructive).
			Bold(true).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles for the auto-detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme(config.ThemeAuto))
}
