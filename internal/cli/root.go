// Package cli implements the kioku command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/conorfennell/kioku/internal/config"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := newApp()

	rootCmd := &cobra.Command{
		Use:           "kioku",
		Short:         "kioku: spaced repetition for image flashcards",
		Long:          "kioku keeps decks of question/answer image cards in plain directories and schedules reviews with a fixed interval ladder.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.close()
		},
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newInitCmd(app),
		newRootDirCmd(app),
		newDecksCmd(app),
		newDeckCmd(app),
		newCardsCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newReviewCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}
