package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conorfennell/kioku/internal/config"
	"github.com/conorfennell/kioku/internal/deck"
	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/history"
	"github.com/conorfennell/kioku/internal/schedule"
	"github.com/conorfennell/kioku/internal/storage"
)

type app struct {
	cfg   config.Config
	db    *storage.DB
	fs    afero.Fs
	clock schedule.Clock
}

func newApp() *app {
	return &app{fs: afero.NewOsFs(), clock: schedule.SystemClock{}}
}

// wire loads the configuration, installs the logger and opens the database.
func (a *app) wire(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	slog.SetDefault(cfg.Logger(cmd.ErrOrStderr()))

	if err := a.fs.MkdirAll(filepath.Dir(cfg.DB), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	db, err := storage.Open(cfg.DB)
	if err != nil {
		return err
	}
	a.db = db
	slog.Debug("Database opened", "path", cfg.DB)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// rootDir resolves the deck root: the configured one, remembered for next
// time, or else the last remembered one.
func (a *app) rootDir() (string, error) {
	if a.cfg.Root != "" {
		dir, err := filepath.Abs(a.cfg.Root)
		if err != nil {
			return "", fmt.Errorf("resolve root %s: %w", a.cfg.Root, err)
		}
		if err := a.db.SetSetting(storage.LastRootKey, dir); err != nil {
			return "", err
		}
		return dir, nil
	}

	dir, err := a.db.GetSetting(storage.LastRootKey)
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", domain.ErrNoRoot
	}
	return dir, nil
}

func (a *app) root() (*deck.Root, error) {
	dir, err := a.rootDir()
	if err != nil {
		return nil, err
	}
	return deck.NewRoot(a.fs, dir, a.clock), nil
}

func (a *app) openDeck(name string) (*deck.Root, *deck.Deck, error) {
	root, err := a.root()
	if err != nil {
		return nil, nil, err
	}
	d, err := root.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return root, d, nil
}

// commit snapshots the deck root when auto-commit is on. Failures are
// logged; the change itself is already on disk.
func (a *app) commit(root *deck.Root, message string) {
	if !a.cfg.Commit {
		return
	}
	if _, err := history.Commit(root.Dir(), message, a.clock.Now()); err != nil {
		slog.Warn("Failed to commit deck history", "path", root.Dir(), "error", err)
	}
}
