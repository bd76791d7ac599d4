package schedule

import (
	"fmt"
	"time"

	"github.com/conorfennell/kioku/internal/domain"
)

// hardFloor is the lowest level a hard answer can move a card to.
const hardFloor = 3

// hardLevels maps the current level to the level after a hard answer.
// Levels above MaxLevel use the MaxLevel entry.
var hardLevels = map[int]int{
	3:        3,
	4:        4,
	5:        4,
	6:        5,
	7:        5,
	MaxLevel: 5,
}

// Offered returns the outcomes a reviewer may choose at the given level.
// Cards still on the learning ramp (levels 0-2) cannot be answered hard.
func Offered(level int) []domain.Outcome {
	if level < hardFloor {
		return []domain.Outcome{domain.Retry, domain.Normal}
	}
	return []domain.Outcome{domain.Retry, domain.Hard, domain.Normal}
}

// IsOffered reports whether outcome is one of Offered(level).
func IsOffered(level int, outcome domain.Outcome) bool {
	for _, o := range Offered(level) {
		if o == outcome {
			return true
		}
	}
	return false
}

// NextLevel computes the level that follows an answer at the given level.
func NextLevel(level int, outcome domain.Outcome) (int, error) {
	switch outcome {
	case domain.Retry:
		return 1, nil
	case domain.Normal:
		return nextNormal(level), nil
	case domain.Hard:
		if level < hardFloor {
			return 0, fmt.Errorf("%w: hard at level %d", domain.ErrOutcomeNotOffered, level)
		}
		return nextHard(level), nil
	default:
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidOutcome, int(outcome))
	}
}

func nextNormal(level int) int {
	switch level {
	case 0:
		return 2
	case 1:
		return 3
	default:
		return min(MaxLevel, level+1)
	}
}

func nextHard(level int) int {
	next, ok := hardLevels[level]
	if !ok {
		next = hardLevels[MaxLevel]
	}
	return max(hardFloor, min(next, level))
}

// Apply returns a copy of card leveled by outcome and stamped as reviewed at now.
func Apply(card domain.Card, outcome domain.Outcome, now time.Time) (domain.Card, error) {
	level, err := NextLevel(card.Level, outcome)
	if err != nil {
		return domain.Card{}, err
	}
	card.Level = level
	card.LastReviewed = now
	return card, nil
}

// Describe renders an interval the way the review prompt shows it,
// e.g. "10 min" or "5 days".
func Describe(level int) string {
	minutes := IntervalMinutes(level)
	switch {
	case minutes == 0:
		return "now"
	case minutes < 60*24:
		return fmt.Sprintf("%d min", minutes)
	case minutes == 60*24:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", minutes/(60*24))
	}
}
