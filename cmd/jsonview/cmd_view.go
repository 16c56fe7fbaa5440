package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jsonview/cmd/jsonview/ui"
	"jsonview/internal/watch"
)

// runView starts the interactive viewer.
func runView(cmd *cobra.Command, args []string) error {
	src := newSource(args, format)
	value, err := src.load()
	if err != nil {
		return err
	}
	watching, err := shouldWatch(cmd, src)
	if err != nil {
		return err
	}

	opts := ui.OptionsFromConfig(cfg)
	opts.Source = src.name()
	if src.isFile() {
		opts.Loader = src.load
	}

	programOpts := []tea.ProgramOption{tea.WithReportFocus(), tea.WithMouseCellMotion()}
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if !src.isFile() {
		// Standard input holds the document; keys come from the terminal.
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	programOpts = append(programOpts, tea.WithContext(ctx))

	p := tea.NewProgram(ui.New(value, opts), programOpts...)

	g, gctx := errgroup.WithContext(ctx)
	if watching {
		w, err := watch.New(src.path, cfg.GetDebounce())
		if err != nil {
			return err
		}
		if err := w.Start(gctx); err != nil {
			return err
		}
		defer w.Stop()

		g.Go(func() error {
			forwardReloads(gctx, w, src, p.Send)
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("viewer: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// shouldWatch reports whether src is reloaded on change. Standard input
// cannot be watched: --watch on it is an error, while watch.enabled from the
// configuration is ignored.
func shouldWatch(cmd *cobra.Command, src source) (bool, error) {
	if !cfg.Watch.Enabled {
		return false, nil
	}
	if src.isFile() {
		return true, nil
	}
	if cmd.Flags().Changed("watch") {
		return false, errors.New("--watch needs a file, not standard input")
	}
	logger.Debug("Not watching standard input")
	return false, nil
}

// forwardReloads decodes watcher reloads and hands them to send until ctx is
// done.
func forwardReloads(ctx context.Context, w *watch.Watcher, src source, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-w.Events():
			if r.Err != nil {
				send(ui.ReloadMsg{Err: r.Err})
				continue
			}
			v, err := src.decode(r.Data)
			if err != nil {
				logger.Warn("Reload failed", zap.String("path", r.Path), zap.Error(err))
				send(ui.ReloadMsg{Err: err})
				continue
			}
			logger.Debug("Reloaded", zap.String("path", r.Path), zap.Int("bytes", len(r.Data)))
			send(ui.ReloadMsg{Value: v})
		}
	}
}
