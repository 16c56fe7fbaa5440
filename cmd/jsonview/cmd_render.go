package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"jsonview/cmd/jsonview/ui"
	"jsonview/internal/viewer"
)

var (
	renderWidth  int
	renderPlain  bool
	renderExpand bool
)

// runRender prints the tree as the viewer would show it, without the
// highlighting of an active element.
func runRender(cmd *cobra.Command, args []string) error {
	src := newSource(args, format)
	value, err := src.load()
	if err != nil {
		return err
	}

	opts := ui.OptionsFromConfig(cfg)
	v := viewer.New(value, viewer.WithInitialItems(opts.InitialItems))
	if renderExpand {
		v.ExpandAll()
	}
	frame := v.AsWidget().
		Indentation(opts.Indentation).
		ActiveFocused(opts.Styles.ActiveFocused).
		InactiveFocused(viewer.NewStyleModifier()).
		ItemChanged(opts.Styles.ItemChanged).
		Render(viewer.RenderingHints{Active: false})

	out := cmd.OutOrStdout()
	if !renderPlain {
		width := renderWidth
		if width <= 0 {
			width = frame.Width()
		}
		_, err := fmt.Fprintln(out, frame.Window(0, width, frame.Height()))
		return err
	}

	lines := strings.Split(frame.Plain(), "\n")
	if renderWidth > 0 {
		for i, l := range lines {
			lines[i] = runewidth.Truncate(l, renderWidth, "")
		}
	}
	_, err = fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}
