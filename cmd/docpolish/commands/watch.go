package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docpolish/internal/config"
	"git.home.luguber.info/inful/docpolish/internal/pipeline"
	"git.home.luguber.info/inful/docpolish/internal/watch"
)

// WatchCmd implements the 'watch' command: run the post-processing stages
// whenever the generator rewrites the site tree.
type WatchCmd struct {
	Site string `short:"s" help:"Override the generated site directory"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if w.Site != "" {
		cfg.Site.Directory = w.Site
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	p := pipeline.New(cfg, pipeline.WithRecorder(newRecorder(cfg)))
	watcher := watch.New(cfg.Site.Directory, func(ctx context.Context) error {
		report, err := p.Polish(ctx)
		if err != nil {
			// A failed run in watch mode is reported, not fatal; the next
			// generator write gets another chance.
			return err
		}
		slog.Info("Site re-polished", "files", report.Files, "changes", report.TotalChanges())
		return nil
	})

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
