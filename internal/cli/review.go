package cli

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conorfennell/kioku/internal/deck"
	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/render"
	"github.com/conorfennell/kioku/internal/session"
)

func newReviewCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "review <deck>",
		Short: "Review the due cards of a deck",
		Long:  "Shows each due card's question image, then its answer image, and asks how well you recalled it. Enter q at any prompt to stop.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, d, err := app.openDeck(args[0])
			if err != nil {
				return err
			}

			opts := []session.Option{session.WithClock(app.clock), session.WithRecorder(app.db)}
			if app.cfg.Seed != 0 {
				opts = append(opts, session.WithRand(rand.New(rand.NewPCG(uint64(app.cfg.Seed), 0))))
			}
			s, err := session.Start(d, opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.Done() {
				_, _ = fmt.Fprintln(out, "nothing to review")
				return nil
			}

			err = runReview(s, d, bufio.NewScanner(cmd.InOrStdin()), out)
			summary := s.Summary()
			_, _ = fmt.Fprintln(out, render.Summary(summary))
			if summary.Reviewed > 0 {
				app.commit(root, fmt.Sprintf("Review %s: %d cards", d.Name(), summary.Reviewed))
			}
			return err
		},
	}
}

// runReview drives the session until it is done or the reviewer quits.
func runReview(s *session.Session, d *deck.Deck, in *bufio.Scanner, out io.Writer) error {
	for !s.Done() {
		card, _ := s.Current()
		question, answer := describeImages(d, card)
		_, _ = fmt.Fprintf(out, "\ncard %s (level %d)\n", card.ID, card.Level)
		_, _ = fmt.Fprintf(out, "question: %s\n", question)
		_, _ = fmt.Fprint(out, "press enter for the answer ")
		if line, ok := readLine(in); !ok || isQuit(line) {
			s.Quit()
			return nil
		}
		_, _ = fmt.Fprintf(out, "answer: %s\n", answer)

		for {
			_, _ = fmt.Fprintf(out, "%s ", render.Choices(card.Level))
			line, ok := readLine(in)
			if !ok || isQuit(line) {
				s.Quit()
				return nil
			}

			outcome, err := domain.ParseOutcome(line)
			if err == nil {
				err = s.Answer(outcome)
			}
			if err == nil {
				break
			}
			if errors.Is(err, domain.ErrInvalidOutcome) || errors.Is(err, domain.ErrOutcomeNotOffered) {
				_, _ = fmt.Fprintln(out, err)
				continue
			}
			s.Quit()
			return err
		}
	}
	return nil
}

// describeImages returns the paths of the card images with their pixel
// sizes. A card whose images fail to decode is still shown by path.
func describeImages(d *deck.Deck, card domain.Card) (string, string) {
	question, answer := d.Path(card.Question), d.Path(card.Answer)
	q, a, err := d.LoadImages(card)
	if err != nil {
		slog.Warn("Failed to read card images", "card", card.ID, "error", err)
		return question, answer
	}
	return withSize(question, q), withSize(answer, a)
}

func withSize(path string, img image.Image) string {
	size := img.Bounds().Size()
	return fmt.Sprintf("%s (%dx%d)", path, size.X, size.Y)
}

func readLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func isQuit(line string) bool {
	line = strings.ToLower(line)
	return line == "q" || line == "quit"
}
