package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"jsonview/cmd/jsonview/ui"
	"jsonview/internal/treediff"
	"jsonview/internal/viewer"
)

var (
	diffContext int
	diffPlain   bool
)

// diffCmd compares two documents as fully expanded trees
var diffCmd = &cobra.Command{
	Use:   "diff OLD NEW",
	Short: "Show how two documents differ",
	Long: `Renders both documents fully expanded and prints a unified diff of the
trees. Keys are sorted in the tree, so reordering members is not a change.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().IntVarP(&diffContext, "context", "U", 3, "Unchanged lines around each change")
	diffCmd.Flags().BoolVar(&diffPlain, "plain", false, "Print without colors")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldText, err := expandedTree(args[0])
	if err != nil {
		return err
	}
	newText, err := expandedTree(args[1])
	if err != nil {
		return err
	}

	hunks := treediff.NewEngine(diffContext).Hunks(oldText, newText)
	logger.Sugar().Debugf("diff %s %s: %d hunks", args[0], args[1], len(hunks))
	if len(hunks) == 0 {
		return nil
	}
	return writeHunks(cmd.OutOrStdout(), args[0], args[1], hunks, diffPlain)
}

func expandedTree(path string) (string, error) {
	value, err := newSource([]string{path}, format).load()
	if err != nil {
		return "", err
	}
	v := viewer.New(value)
	v.ExpandAll()
	return v.AsWidget().
		Indentation(cfg.Viewer.Indentation).
		Render(viewer.RenderingHints{}).
		Plain(), nil
}

func writeHunks(w io.Writer, oldName, newName string, hunks []treediff.Hunk, plain bool) error {
	styles := map[treediff.Op]lipgloss.Style{
		treediff.Equal:  lipgloss.NewStyle(),
		treediff.Delete: lipgloss.NewStyle().Foreground(ui.Destructive),
		treediff.Insert: lipgloss.NewStyle().Foreground(ui.Success),
	}
	header := lipgloss.NewStyle().Bold(true)
	hunkHeader := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	if plain {
		header, hunkHeader = lipgloss.NewStyle(), lipgloss.NewStyle()
		for op := range styles {
			styles[op] = lipgloss.NewStyle()
		}
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n", header.Render("--- "+oldName), header.Render("+++ "+newName)); err != nil {
		return err
	}
	for _, h := range hunks {
		if _, err := fmt.Fprintln(w, hunkHeader.Render(h.Header())); err != nil {
			return err
		}
		for _, l := range h.Lines {
			if _, err := fmt.Fprintln(w, styles[l.Op].Render(l.Op.Prefix()+l.Text)); err != nil {
				return err
			}
		}
	}
	return nil
}
