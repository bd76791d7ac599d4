// Package render formats decks, cards and sessions for the terminal.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/conorfennell/kioku/internal/deck"
	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/schedule"
	"github.com/conorfennell/kioku/internal/session"
)

const timeLayout = "2006-01-02 15:04"

// Decks renders the deck list with due/total counts.
func Decks(root string, stats []deck.Stats) string {
	s := newStyles()
	lines := []string{
		s.title.Render("Decks"),
		s.header.Render(fmt.Sprintf("root: %s", root)),
	}
	if len(stats) == 0 {
		lines = append(lines, s.faint.Render("No decks yet. Create one with `kioku deck new <name>`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := columnWidth(len("deck"), len(stats), func(i int) string { return stats[i].Deck })
	lines = append(lines, s.header.Render(pad("deck", width)+"  due/total"))
	for _, st := range stats {
		count := s.row.Render(st.String())
		if st.Due > 0 {
			count = s.due.Render(st.String())
		}
		lines = append(lines, s.row.Render(pad(st.Deck, width))+"  "+count)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Cards renders every card of a deck with its schedule at now.
func Cards(name string, cards []domain.Card, now time.Time) string {
	s := newStyles()
	lines := []string{
		s.title.Render(name),
		s.header.Render(fmt.Sprintf("cards: %d", len(cards))),
	}
	if len(cards) == 0 {
		lines = append(lines, s.faint.Render("No cards."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := columnWidth(len("id"), len(cards), func(i int) string { return string(cards[i].ID) })
	lines = append(lines, s.header.Render(fmt.Sprintf("%s  %-5s  %-16s  %-16s", pad("id", width), "level", "reviewed", "next")))
	for _, c := range cards {
		next := schedule.NextDue(c).Local().Format(timeLayout)
		line := fmt.Sprintf("%s  %-5d  %-16s  %-16s",
			pad(string(c.ID), width), c.Level, c.LastReviewed.Local().Format(timeLayout), next)
		if schedule.IsDue(c, now) {
			lines = append(lines, s.due.Render(line+"  due"))
		} else {
			lines = append(lines, s.row.Render(line))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Reviews renders a review log, newest first.
func Reviews(name string, logs []domain.ReviewLog) string {
	s := newStyles()
	lines := []string{s.title.Render(fmt.Sprintf("%s reviews", name))}
	if len(logs) == 0 {
		lines = append(lines, s.faint.Render("No reviews recorded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := columnWidth(len("card"), len(logs), func(i int) string { return string(logs[i].CardID) })
	lines = append(lines, s.header.Render(fmt.Sprintf("%-16s  %s  %-7s  %s", "when", pad("card", width), "outcome", "level")))
	for _, l := range logs {
		outcome := outcomeStyle(s, l.Outcome).Render(fmt.Sprintf("%-7s", l.Outcome))
		lines = append(lines, fmt.Sprintf("%s  %s  %s  %s",
			s.row.Render(fmt.Sprintf("%-16s", l.ReviewedAt.Local().Format(timeLayout))),
			s.row.Render(pad(string(l.CardID), width)),
			outcome,
			s.row.Render(fmt.Sprintf("%d -> %d", l.FromLevel, l.ToLevel)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Summary renders the result of a review session.
func Summary(sum session.Summary) string {
	s := newStyles()
	if sum.Reviewed == 0 && sum.Left == 0 {
		return s.faint.Render(fmt.Sprintf("%s: nothing to review.", sum.Deck))
	}

	parts := make([]string, 0, 3)
	for _, o := range []domain.Outcome{domain.Retry, domain.Hard, domain.Normal} {
		if n := sum.Outcomes[o]; n > 0 {
			parts = append(parts, outcomeStyle(s, o).Render(fmt.Sprintf("%s %d", o, n)))
		}
	}
	lines := []string{
		s.title.Render(fmt.Sprintf("%s: reviewed %d of %d cards", sum.Deck, sum.Reviewed, sum.Total)),
	}
	if len(parts) > 0 {
		lines = append(lines, strings.Join(parts, "  "))
	}
	if sum.Left > 0 {
		lines = append(lines, s.header.Render(fmt.Sprintf("%d left in this pass", sum.Left)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Choices renders the outcomes offered for a card with the interval each
// one leads to, e.g. "[r]etry now  [n]ormal 10 min".
func Choices(level int) string {
	s := newStyles()
	parts := make([]string, 0, 3)
	for _, o := range schedule.Offered(level) {
		next, err := schedule.NextLevel(level, o)
		if err != nil {
			continue
		}
		label := fmt.Sprintf("[%s]%s %s", o.Key(), o.String()[1:], schedule.Describe(next))
		parts = append(parts, outcomeStyle(s, o).Render(label))
	}
	return strings.Join(parts, "  ")
}

func outcomeStyle(s styles, o domain.Outcome) lipgloss.Style {
	switch o {
	case domain.Retry:
		return s.retry
	case domain.Hard:
		return s.hard
	default:
		return s.normal
	}
}

func columnWidth(minWidth, n int, value func(int) string) int {
	width := minWidth
	for i := 0; i < n; i++ {
		width = max(width, len(value(i)))
	}
	return width
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
