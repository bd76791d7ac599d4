package schedule

import (
	"time"

	"github.com/conorfennell/kioku/internal/domain"
)

// MaxLevel is the highest level reachable through normal reviews.
const MaxLevel = 8

// intervalMinutes is the minimum wait after a review, indexed by level.
// Levels 0 (new) and 1 (just failed) are due immediately.
var intervalMinutes = [...]int{
	0:        0,
	1:        0,
	2:        10,
	3:        60 * 24,
	4:        60 * 24 * 2,
	5:        60 * 24 * 5,
	6:        60 * 24 * 10,
	7:        60 * 24 * 14,
	MaxLevel: 60 * 24 * 20,
}

// IntervalMinutes returns the number of minutes that must pass after the last
// review before a card at the given level is due again. Levels above MaxLevel
// use the MaxLevel interval.
func IntervalMinutes(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return intervalMinutes[level]
}

// Interval is IntervalMinutes as a duration.
func Interval(level int) time.Duration {
	return time.Duration(IntervalMinutes(level)) * time.Minute
}

// IsDue reports whether the card should be presented at now.
func IsDue(card domain.Card, now time.Time) bool {
	if card.Level == 0 || card.Level == 1 {
		return true
	}

	elapsed := now.Sub(card.LastReviewed)
	// A review stamped in the future counts as already answered.
	if elapsed < 0 {
		return false
	}

	return int(elapsed/time.Minute) > IntervalMinutes(card.Level)
}

// NextDue returns the earliest whole minute at which the card becomes due.
// New and failed cards return their last review time.
func NextDue(card domain.Card) time.Time {
	if card.Level == 0 || card.Level == 1 {
		return card.LastReviewed
	}
	return card.LastReviewed.Add(Interval(card.Level) + time.Minute)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
