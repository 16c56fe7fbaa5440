package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"jsonview/cmd/jsonview/ui"
)

var keysRaw bool

// runKeys prints the configured key bindings.
func runKeys(cmd *cobra.Command, args []string) error {
	md := ui.NewKeyMap(cfg.Keys).Markdown()
	out := cmd.OutOrStdout()
	if keysRaw {
		_, err := fmt.Fprint(out, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render key bindings: %w", err)
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
