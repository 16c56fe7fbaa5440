package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jsonview/cmd/jsonview/ui"
	"jsonview/internal/viewer"
)

// demoValues are the two versions swapped by the s and n keys. They differ
// only in "foo".
var demoValues = [2]viewer.Value{
	viewer.MapValue{
		{Key: "foo", Value: viewer.Text("String!")},
		{Key: "bar", Value: viewer.Text("true")},
	},
	viewer.MapValue{
		{Key: "foo", Value: viewer.Text("999")},
		{Key: "bar", Value: viewer.Text("true")},
	},
}

// demoModel feeds updates into the viewer on s and n.
type demoModel struct {
	inner ui.Model
}

func newDemoModel() demoModel {
	opts := ui.OptionsFromConfig(cfg)
	opts.Source = "demo (s/n: update)"
	return demoModel{inner: ui.New(demoValues[0], opts)}
}

func (m demoModel) Init() tea.Cmd { return m.inner.Init() }

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "s":
			msg = ui.ReloadMsg{Value: demoValues[0]}
		case "n":
			msg = ui.ReloadMsg{Value: demoValues[1]}
		}
	}
	next, cmd := m.inner.Update(msg)
	m.inner = next.(ui.Model)
	return m, cmd
}

func (m demoModel) View() string { return m.inner.View() }

func runDemo(cmd *cobra.Command, args []string) error {
	opts := []tea.ProgramOption{tea.WithReportFocus()}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(newDemoModel(), opts...).Run()
	return err
}
