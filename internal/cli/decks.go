package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/kioku/internal/render"
	"github.com/conorfennell/kioku/internal/scan"
)

func newDecksCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List decks with due and total card counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := app.root()
			if err != nil {
				return err
			}
			stats, err := scan.Run(root, app.db, app.clock.Now())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Decks(root.Dir(), stats))
			return nil
		},
	}
}

func newDeckCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Manage decks",
	}
	cmd.AddCommand(newDeckNewCmd(app))
	return cmd
}

func newDeckNewCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := app.root()
			if err != nil {
				return err
			}
			d, err := root.Create(args[0])
			if err != nil {
				return err
			}
			app.commit(root, fmt.Sprintf("Create deck %s", d.Name()))

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created deck %s\n", d.Name())
			return nil
		},
	}
}
