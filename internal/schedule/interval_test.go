package schedule

import (
	"testing"
	"time"

	"github.com/conorfennell/kioku/internal/domain"
)

func TestIntervalMinutes(t *testing.T) {
	testCases := []struct {
		level    int
		expected int
	}{
		{0, 0},
		{1, 0},
		{2, 10},
		{3, 1440},
		{4, 2880},
		{5, 7200},
		{6, 14400},
		{7, 20160},
		{8, 28800},
		{9, 28800},
		{100, 28800},
		{-1, 0},
	}

	for _, tc := range testCases {
		if got := IntervalMinutes(tc.level); got != tc.expected {
			t.Errorf("IntervalMinutes(%d) = %d, want %d", tc.level, got, tc.expected)
		}
	}

	if Interval(2) != 10*time.Minute {
		t.Errorf("Expected Interval(2) to be 10m, got %v", Interval(2))
	}
}

func TestIsDue(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	card := func(level int) domain.Card {
		return domain.Card{ID: "1", Level: level, LastReviewed: base}
	}

	t.Run("new and failed cards are always due", func(t *testing.T) {
		for _, level := range []int{0, 1} {
			for _, now := range []time.Time{base.Add(-48 * time.Hour), base, base.Add(time.Hour)} {
				if !IsDue(card(level), now) {
					t.Errorf("Expected level %d to be due at %v", level, now)
				}
			}
		}
	})

	t.Run("future review is not due", func(t *testing.T) {
		for level := 2; level <= 10; level++ {
			if IsDue(card(level), base.Add(-time.Second)) {
				t.Errorf("Expected level %d with a future timestamp to be not due", level)
			}
		}
	})

	t.Run("elapsed minutes must exceed the interval", func(t *testing.T) {
		c := card(2)
		if IsDue(c, base.Add(10*time.Minute)) {
			t.Error("Expected level 2 to be not due after exactly 10 minutes")
		}
		if IsDue(c, base.Add(10*time.Minute+59*time.Second)) {
			t.Error("Expected level 2 to be not due before the 11th minute")
		}
		if !IsDue(c, base.Add(11*time.Minute)) {
			t.Error("Expected level 2 to be due after 11 minutes")
		}
		if !IsDue(card(3), base.Add(24*time.Hour+time.Minute)) {
			t.Error("Expected level 3 to be due after one day and a minute")
		}
	})

	t.Run("monotonic in now", func(t *testing.T) {
		for level := 2; level <= 9; level++ {
			c := card(level)
			seenDue := false
			for step := 0; step <= 30*24; step++ {
				now := base.Add(time.Duration(step) * time.Hour)
				due := IsDue(c, now)
				if seenDue && !due {
					t.Fatalf("Level %d became not due again at %v", level, now)
				}
				seenDue = seenDue || due
			}
			if !seenDue {
				t.Errorf("Expected level %d to become due within 30 days", level)
			}
		}
	})
}

func TestNextDue(t *testing.T) {
	base := time.UnixMilli(0)
	c := domain.Card{Level: 2, LastReviewed: base}
	next := NextDue(c)
	if !next.Equal(base.Add(11 * time.Minute)) {
		t.Errorf("Expected next due at 11 minutes, got %v", next.Sub(base))
	}
	if IsDue(c, next.Add(-time.Nanosecond)) {
		t.Error("Expected card to be not due just before NextDue")
	}
	if !IsDue(c, next) {
		t.Error("Expected card to be due at NextDue")
	}
}
