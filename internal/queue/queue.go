// Package queue holds the working set of cards during a review session.
package queue

import (
	"math/rand/v2"
	"time"

	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/schedule"
)

// Queue splits the cards of a deck into target, the cards presented in the
// current pass, and rest, the cards waiting for a later pass. A popped card
// belongs to neither until it is pushed back with PushRest.
type Queue struct {
	target []domain.Card
	rest   []domain.Card
	clock  schedule.Clock
	rng    *rand.Rand
}

// New puts every card into rest. Call Setup to fill the first pass. A nil
// clock reads the wall clock and a nil rng shuffles with a time-seeded source.
func New(cards []domain.Card, clock schedule.Clock, rng *rand.Rand) *Queue {
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}
	rest := make([]domain.Card, len(cards))
	copy(rest, cards)
	return &Queue{rest: rest, clock: clock, rng: rng}
}

// Setup moves the cards that are due now from rest into target and shuffles
// target.
func (q *Queue) Setup() {
	now := q.clock.Now()
	var waiting []domain.Card
	for _, card := range q.rest {
		if schedule.IsDue(card, now) {
			q.target = append(q.target, card)
		} else {
			waiting = append(waiting, card)
		}
	}
	q.rest = waiting

	q.rng.Shuffle(len(q.target), func(i, j int) {
		q.target[i], q.target[j] = q.target[j], q.target[i]
	})
}

// IsEnd reports whether the current pass has no cards left.
func (q *Queue) IsEnd() bool {
	return len(q.target) == 0
}

// Pop removes and returns the next card of the pass. It panics when IsEnd
// is true.
func (q *Queue) Pop() domain.Card {
	if len(q.target) == 0 {
		panic("queue: Pop on an ended pass")
	}
	card := q.target[0]
	q.target = q.target[1:]
	return card
}

// PushRest returns a reviewed card to the queue. It is considered again at
// the next Setup.
func (q *Queue) PushRest(card domain.Card) {
	q.rest = append(q.rest, card)
}

// Len is the number of cards left in the current pass.
func (q *Queue) Len() int { return len(q.target) }

// Waiting is the number of cards held back for a later pass.
func (q *Queue) Waiting() int { return len(q.rest) }
