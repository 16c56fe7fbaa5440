package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jsonview/internal/config"
	"jsonview/internal/jsonvalue"
	"jsonview/internal/logging"
)

// version is reported by --version.
var version = "0.1.1"

var (
	// Global flags
	verbose    bool
	configPath string
	formatName string

	// Viewer flags; zero values leave the configuration alone
	watchFile bool
	indent    int
	items     int

	// Resolved in PersistentPreRunE
	cfg    *config.Config
	format jsonvalue.Format
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jsonview [file|-]",
	Short: "Interactive terminal viewer for JSON and YAML documents",
	Long: `jsonview shows a document as a tree that can be navigated and folded.

Objects and arrays can be folded; long arrays show only their first elements
and can be grown or shrunk one element at a time. With --watch the document
is reloaded whenever the file changes and changed values are highlighted.

Reads standard input when the file is omitted or "-".`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		applyFlagOverrides(cmd)

		if format, err = jsonvalue.ParseFormat(formatName); err != nil {
			return err
		}

		if err := logging.Initialize(cfg.Logging, verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logging.Get(logging.CategoryBoot).Zap()
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "jsonview %s: logging to %s\n", version, logging.Path())
		}
		logging.BootDebug("jsonview %s, command %s", version, cmd.Name())
		logger.Debug("Configuration loaded",
			zap.String("path", path),
			zap.String("command", cmd.Name()),
			zap.Int("indentation", cfg.Viewer.Indentation),
			zap.Int("initial_items", cfg.Viewer.InitialItems))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: runView,
}

// renderCmd prints a document without starting the interactive viewer
var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Print the tree of a document",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRender,
}

// demoCmd runs the two-object update example
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show how updates are highlighted",
	Long: `Displays a small object. Press s and n to replace it with one of two
versions that differ in "foo"; the changed value is highlighted.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

// keysCmd documents the key bindings
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the key bindings of the interactive viewer",
	Args:  cobra.NoArgs,
	RunE:  runKeys,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "auto", "Input format: auto, json or yaml")
	rootCmd.PersistentFlags().IntVar(&indent, "indent", 0, "Indentation of nested values")
	rootCmd.PersistentFlags().IntVar(&items, "items", 0, "Array elements shown initially")

	rootCmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Reload the file when it changes")

	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Clip lines to this many cells (0: no limit)")
	renderCmd.Flags().BoolVar(&renderPlain, "plain", false, "Print without styles")
	renderCmd.Flags().BoolVar(&renderExpand, "expand-all", false, "Unfold everything and show all array elements")

	keysCmd.Flags().BoolVar(&keysRaw, "raw", false, "Print markdown instead of rendering it")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(keysCmd)
}

// applyFlagOverrides copies explicitly set flags over the configuration.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("indent") {
		cfg.Viewer.Indentation = max(indent, 0)
	}
	if flags.Changed("items") {
		cfg.Viewer.InitialItems = max(items, 0)
	}
	if flags.Changed("watch") {
		cfg.Watch.Enabled = watchFile
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.BootError("command failed: %v", err)
		_ = logging.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
