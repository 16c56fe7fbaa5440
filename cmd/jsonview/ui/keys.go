package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"jsonview/internal/config"
)

// KeyMap holds the bindings of the interactive viewer.
type KeyMap struct {
	Next      key.Binding
	Previous  key.Binding
	First     key.Binding
	Last      key.Binding
	Toggle    key.Binding
	Expand    key.Binding
	Reload    key.Binding
	CopyValue key.Binding
	CopyPath  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// NewKeyMap builds bindings from configuration. An action without keys is
// disabled.
func NewKeyMap(c config.KeyConfig) KeyMap {
	return KeyMap{
		Next:      binding(c.Next, "next"),
		Previous:  binding(c.Previous, "previous"),
		First:     binding(c.First, "first"),
		Last:      binding(c.Last, "last"),
		Toggle:    binding(c.Toggle, "fold/grow/shrink"),
		Expand:    binding(c.Expand, "expand all"),
		Reload:    binding(c.Reload, "reload"),
		CopyValue: binding(c.CopyValue, "copy value"),
		CopyPath:  binding(c.CopyPath, "copy path"),
		Help:      binding(c.Help, "help"),
		Quit:      binding(c.Quit, "quit"),
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeyConfig())
}

func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = displayName(k)
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(names, "/"), desc),
	)
}

func displayName(k string) string {
	switch k {
	case " ":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First, k.Last},
		{k.Toggle, k.Expand, k.Reload},
		{k.CopyValue, k.CopyPath, k.Help, k.Quit},
	}
}

// Markdown lists the enabled bindings as a markdown table.
func (k KeyMap) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# jsonview key bindings\n\n")
	sb.WriteString("| Keys | Action |\n|---|---|\n")
	for _, group := range k.FullHelp() {
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			keys := make([]string, len(b.Keys()))
			for i, name := range b.Keys() {
				keys[i] = "`" + displayName(name) + "`"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", strings.Join(keys, ", "), h.Desc))
		}
	}
	return sb.String()
}
