package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/render"
)

func newHistoryCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <deck> [id]",
		Short: "Show logged reviews of a deck or one card",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id domain.CardID
			if len(args) == 2 {
				id = domain.CardID(args[1])
			}
			logs, err := app.db.GetReviews(args[0], id, limit)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Reviews(args[0], logs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of reviews to show")
	return cmd
}
