package cli

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/render"
)

func newCardsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cards <deck>",
		Short: "List the cards of a deck and when they are due",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, d, err := app.openDeck(args[0])
			if err != nil {
				return err
			}
			cards, err := d.Index()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), render.Cards(d.Name(), cards, app.clock.Now()))
			return nil
		},
	}
}

func newAddCmd(app *app) *cobra.Command {
	var questionPath, answerPath string

	cmd := &cobra.Command{
		Use:   "add <deck>",
		Short: "Add a card from a question and an answer image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, d, err := app.openDeck(args[0])
			if err != nil {
				return err
			}
			question, err := readImageFile(questionPath)
			if err != nil {
				return err
			}
			answer, err := readImageFile(answerPath)
			if err != nil {
				return err
			}

			card, err := d.AddCard(question, answer)
			if err != nil {
				return err
			}
			app.commit(root, fmt.Sprintf("Add card %s to %s", card.ID, d.Name()))

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added card %s to %s\n", card.ID, d.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&questionPath, "question", "", "question image (PNG or JPEG)")
	cmd.Flags().StringVar(&answerPath, "answer", "", "answer image (PNG or JPEG)")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")
	return cmd
}

func newEditCmd(app *app) *cobra.Command {
	var questionPath, answerPath string

	cmd := &cobra.Command{
		Use:   "edit <deck> <id>",
		Short: "Replace the images of a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if questionPath == "" && answerPath == "" {
				return errors.New("nothing to edit: pass --question and/or --answer")
			}
			root, d, err := app.openDeck(args[0])
			if err != nil {
				return err
			}
			card, err := d.Card(domain.CardID(args[1]))
			if err != nil {
				return err
			}

			var question, answer image.Image
			if questionPath != "" {
				if question, err = readImageFile(questionPath); err != nil {
					return err
				}
			}
			if answerPath != "" {
				if answer, err = readImageFile(answerPath); err != nil {
					return err
				}
			}
			if err := d.ReplaceImages(card, question, answer); err != nil {
				return err
			}
			app.commit(root, fmt.Sprintf("Edit card %s in %s", card.ID, d.Name()))

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated card %s in %s\n", card.ID, d.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&questionPath, "question", "", "new question image")
	cmd.Flags().StringVar(&answerPath, "answer", "", "new answer image")
	return cmd
}

func readImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
