package reload

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/heynickdev/pbdev/internal/config"
	"github.com/heynickdev/pbdev/internal/logging"
)

// Guard keeps the reload supervisor's config file present and current for
// the lifetime of a dev session. Air itself does not recover from its config
// being deleted mid-run, so the guard re-synthesizes it whenever it is
// removed or rewritten without the marker.
type Guard struct {
	cfg    *config.Config
	dir    string
	logger logging.Logger
}

// NewGuard returns a guard over dir's air config.
func NewGuard(cfg *config.Config, dir string, logger logging.Logger) *Guard {
	return &Guard{
		cfg:    cfg,
		dir:    dir,
		logger: logger.WithComponent("config-guard"),
	}
}

// Run watches until ctx is cancelled. It returns the watcher setup error if
// any; watch-loop errors are logged and the loop continues.
func (g *Guard) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: delete+recreate would otherwise
	// drop the watch.
	if err := watcher.Add(g.dir); err != nil {
		return err
	}

	target := filepath.Join(g.dir, AirConfigFile)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			g.heal()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger.Warn("watch error", "error", err.Error())
		}
	}
}

func (g *Guard) heal() {
	wrote, err := Synthesize(g.cfg, g.dir)
	if err != nil {
		g.logger.Error(err, "failed to re-synthesize air config")
		return
	}
	if wrote {
		g.logger.Info("air config regenerated", "file", AirConfigFile)
	}
}
