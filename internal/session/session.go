// Package session runs one review pass over a deck: it pops due cards,
// applies the answers, writes the new levels back and resurfaces cards that
// become due again before the session ends.
package session

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/queue"
	"github.com/conorfennell/kioku/internal/schedule"
)

// Deck is the part of a deck a session reads and writes.
type Deck interface {
	Name() string
	Index() ([]domain.Card, error)
	Record(card domain.Card) error
}

// Recorder keeps a log of answered cards.
type Recorder interface {
	RecordReview(log domain.ReviewLog) error
}

type Option func(*Session)

func WithClock(clock schedule.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// Summary describes a session so far.
type Summary struct {
	Deck     string
	Total    int
	Reviewed int
	Outcomes map[domain.Outcome]int
	// Left is the number of cards left in the pass when the session stopped.
	Left int
}

// Session is a single review pass over one deck. It is not safe for
// concurrent use.
type Session struct {
	deck     Deck
	queue    *queue.Queue
	clock    schedule.Clock
	rng      *rand.Rand
	recorder Recorder

	current *domain.Card
	summary Summary
	// quit is 1 once Quit has put the shown card back unanswered.
	quit int
}

// Start indexes the deck and pops the first due card. When nothing is due
// the returned session is already done.
func Start(deck Deck, opts ...Option) (*Session, error) {
	s := &Session{deck: deck, clock: schedule.SystemClock{}}
	for _, opt := range opts {
		opt(s)
	}

	cards, err := deck.Index()
	if err != nil {
		return nil, err
	}
	s.queue = queue.New(cards, s.clock, s.rng)
	s.queue.Setup()
	s.summary = Summary{Deck: deck.Name(), Total: len(cards), Outcomes: make(map[domain.Outcome]int)}

	slog.Info("Starting review", "deck", deck.Name(), "cards", len(cards), "due", s.queue.Len())
	s.advance()
	return s, nil
}

// Done reports whether the session has no card to show.
func (s *Session) Done() bool {
	return s.current == nil
}

// Current returns the card under review.
func (s *Session) Current() (domain.Card, bool) {
	if s.current == nil {
		return domain.Card{}, false
	}
	return *s.current, true
}

// Offered returns the outcomes the current card may be answered with.
func (s *Session) Offered() []domain.Outcome {
	if s.current == nil {
		return nil
	}
	return schedule.Offered(s.current.Level)
}

// Answer applies outcome to the current card, persists it and moves on to
// the next due card. When the card cannot be persisted it stays current and
// the error is returned.
func (s *Session) Answer(outcome domain.Outcome) error {
	if s.current == nil {
		return domain.ErrSessionDone
	}
	card := *s.current
	if !schedule.IsOffered(card.Level, outcome) {
		return fmt.Errorf("%w: %s at level %d", domain.ErrOutcomeNotOffered, outcome, card.Level)
	}

	now := s.clock.Now()
	updated, err := schedule.Apply(card, outcome, now)
	if err != nil {
		return err
	}
	if err := s.deck.Record(updated); err != nil {
		return err
	}

	if s.recorder != nil {
		entry := domain.ReviewLog{
			Deck:       s.deck.Name(),
			CardID:     card.ID,
			Outcome:    outcome,
			FromLevel:  card.Level,
			ToLevel:    updated.Level,
			ReviewedAt: now,
		}
		if err := s.recorder.RecordReview(entry); err != nil {
			slog.Warn("Failed to log review", "deck", s.deck.Name(), "card", card.ID, "error", err)
		}
	}

	slog.Debug("Answered card", "card", card.ID, "outcome", outcome, "from", card.Level, "to", updated.Level)
	s.summary.Reviewed++
	s.summary.Outcomes[outcome]++
	s.queue.PushRest(updated)
	s.advance()
	return nil
}

// Quit ends the session before the queue runs out.
func (s *Session) Quit() {
	if s.current != nil {
		s.queue.PushRest(*s.current)
		s.current = nil
		s.quit = 1
	}
}

// Summary returns the counts of the session so far.
func (s *Session) Summary() Summary {
	summary := s.summary
	summary.Outcomes = make(map[domain.Outcome]int, len(s.summary.Outcomes))
	for o, n := range s.summary.Outcomes {
		summary.Outcomes[o] = n
	}
	summary.Left = s.queue.Len() + s.quit
	if s.current != nil {
		summary.Left++
	}
	return summary
}

// advance pops the next card, starting a new pass when the current one is
// exhausted. The session ends when a new pass has nothing due.
func (s *Session) advance() {
	if s.queue.IsEnd() {
		s.queue.Setup()
	}
	if s.queue.IsEnd() {
		s.current = nil
		return
	}
	card := s.queue.Pop()
	s.current = &card
}
