package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/history"
	"github.com/conorfennell/kioku/internal/storage"
)

func newInitCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init <dir>",
		Short: "Create a deck root and remember it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if err := app.fs.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create root %s: %w", dir, err)
			}
			if err := history.Init(dir); err != nil {
				return err
			}
			if err := app.db.SetSetting(storage.LastRootKey, dir); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialised deck root %s\n", dir)
			return nil
		},
	}
}

func newRootDirCmd(app *app) *cobra.Command {
	var forget bool

	cmd := &cobra.Command{
		Use:   "root [dir]",
		Short: "Show, set or forget the deck root",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case forget:
				if err := app.db.DeleteSetting(storage.LastRootKey); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, "Forgot deck root")
				return nil
			case len(args) == 1:
				dir, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				isDir, err := afero.IsDir(app.fs, dir)
				if err != nil || !isDir {
					return fmt.Errorf("%s is not a directory", dir)
				}
				if err := app.db.SetSetting(storage.LastRootKey, dir); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, dir)
				return nil
			}

			dir, err := app.rootDir()
			if errors.Is(err, domain.ErrNoRoot) {
				_, _ = fmt.Fprintln(out, "No deck root set. Run `kioku init <dir>`.")
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&forget, "forget", false, "forget the remembered root")
	return cmd
}
