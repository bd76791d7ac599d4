package session

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/kioku/internal/domain"
)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

type memDeck struct {
	cards     map[domain.CardID]domain.Card
	order     []domain.CardID
	recordErr error
}

func newMemDeck(cards ...domain.Card) *memDeck {
	d := &memDeck{cards: make(map[domain.CardID]domain.Card)}
	for _, c := range cards {
		d.cards[c.ID] = c
		d.order = append(d.order, c.ID)
	}
	return d
}

func (d *memDeck) Name() string { return "mem" }

func (d *memDeck) Index() ([]domain.Card, error) {
	out := make([]domain.Card, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.cards[id])
	}
	return out, nil
}

func (d *memDeck) Record(card domain.Card) error {
	if d.recordErr != nil {
		return d.recordErr
	}
	d.cards[card.ID] = card
	return nil
}

type logRecorder struct {
	logs []domain.ReviewLog
}

func (r *logRecorder) RecordReview(l domain.ReviewLog) error {
	r.logs = append(r.logs, l)
	return nil
}

func card(id string, level int, reviewed time.Time) domain.Card {
	return domain.Card{
		ID:           domain.CardID(id),
		Level:        level,
		LastReviewed: reviewed,
		Question:     domain.Artifact(id + "_Q.png"),
		Answer:       domain.Artifact(id + "_A.png"),
		Metadata:     domain.Artifact(id + "_D.txt"),
	}
}

func start(t *testing.T, deck Deck, clock *manualClock, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithClock(clock), WithRand(rand.New(rand.NewPCG(3, 4)))}, opts...)
	s, err := Start(deck, opts...)
	require.NoError(t, err)
	return s
}

func TestStartWithNothingDue(t *testing.T) {
	base := time.UnixMilli(0)
	clock := &manualClock{now: base.Add(time.Hour)}
	s := start(t, newMemDeck(card("a", 5, base)), clock)

	assert.True(t, s.Done())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Answer(domain.Normal), domain.ErrSessionDone)
	assert.Equal(t, Summary{Deck: "mem", Total: 1, Outcomes: map[domain.Outcome]int{}}, s.Summary())
}

func TestStartWithEmptyDeck(t *testing.T) {
	s := start(t, newMemDeck(), &manualClock{now: time.UnixMilli(0)})
	assert.True(t, s.Done())
}

func TestNewCardLifecycle(t *testing.T) {
	base := time.UnixMilli(0)
	clock := &manualClock{now: base}
	deck := newMemDeck(card("a", 0, base))
	recorder := &logRecorder{}
	s := start(t, deck, clock, WithRecorder(recorder))

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, domain.CardID("a"), current.ID)
	assert.Equal(t, []domain.Outcome{domain.Retry, domain.Normal}, s.Offered())

	assert.ErrorIs(t, s.Answer(domain.Hard), domain.ErrOutcomeNotOffered)

	require.NoError(t, s.Answer(domain.Normal))
	assert.True(t, s.Done(), "a level 2 card waits 10 minutes")

	saved := deck.cards["a"]
	assert.Equal(t, 2, saved.Level)
	assert.True(t, saved.LastReviewed.Equal(base))

	require.Len(t, recorder.logs, 1)
	assert.Equal(t, domain.ReviewLog{
		Deck: "mem", CardID: "a", Outcome: domain.Normal, FromLevel: 0, ToLevel: 2, ReviewedAt: base,
	}, recorder.logs[0])

	summary := s.Summary()
	assert.Equal(t, 1, summary.Reviewed)
	assert.Equal(t, 1, summary.Outcomes[domain.Normal])
	assert.Zero(t, summary.Left)
}

func TestRetriedCardResurfaces(t *testing.T) {
	base := time.UnixMilli(0)
	clock := &manualClock{now: base}
	deck := newMemDeck(card("a", 0, base), card("b", 0, base))
	s := start(t, deck, clock)

	first, _ := s.Current()
	require.NoError(t, s.Answer(domain.Retry))

	second, ok := s.Current()
	require.True(t, ok)
	assert.NotEqual(t, first.ID, second.ID, "a retried card waits for the next pass")
	require.NoError(t, s.Answer(domain.Normal))

	again, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, again.Level)

	require.NoError(t, s.Answer(domain.Normal))
	assert.True(t, s.Done())
	assert.Equal(t, 3, deck.cards[first.ID].Level)
	assert.Equal(t, 2, deck.cards[second.ID].Level)
}

func TestRecordFailureKeepsCard(t *testing.T) {
	base := time.UnixMilli(0)
	clock := &manualClock{now: base}
	deck := newMemDeck(card("a", 4, base))
	clock.now = base.Add(3 * 24 * time.Hour)
	s := start(t, deck, clock)
	require.False(t, s.Done())

	deck.recordErr = errors.New("disk full")
	err := s.Answer(domain.Hard)
	require.Error(t, err)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 4, current.Level)
	assert.Zero(t, s.Summary().Reviewed)

	deck.recordErr = nil
	require.NoError(t, s.Answer(domain.Hard))
	assert.Equal(t, 4, deck.cards["a"].Level)
	assert.True(t, s.Done())
}

func TestQuit(t *testing.T) {
	base := time.UnixMilli(0)
	clock := &manualClock{now: base}
	s := start(t, newMemDeck(card("a", 0, base), card("b", 1, base)), clock)

	s.Quit()
	assert.True(t, s.Done())
	assert.Equal(t, 2, s.Summary().Left)
	assert.Zero(t, s.Summary().Reviewed)
}
