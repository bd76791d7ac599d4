package domain

import (
	"encoding"
	"fmt"
	"strings"
)

// Outcome is the user's answer to a card review.
type Outcome int

const (
	Retry  Outcome = iota + 1 // Failed to recall.
	Hard                      // Recalled with difficulty.
	Normal                    // Recalled.
)

var outcomeNames = [...]string{Retry: "retry", Hard: "hard", Normal: "normal"}

var (
	_ fmt.Stringer             = Outcome(0)
	_ encoding.TextMarshaler   = Outcome(0)
	_ encoding.TextUnmarshaler = (*Outcome)(nil)
)

// String returns "retry", "hard" or "normal", or "Outcome(n)" for invalid values.
func (o Outcome) String() string {
	if o.IsValid() {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// IsValid reports whether o is one of Retry, Hard or Normal.
func (o Outcome) IsValid() bool {
	return o >= Retry && o <= Normal
}

// Key is the single letter used to pick the outcome at a prompt.
func (o Outcome) Key() string {
	if !o.IsValid() {
		return ""
	}
	return outcomeNames[o][:1]
}

// ParseOutcome accepts a full outcome name or its single-letter key,
// case-insensitively.
func ParseOutcome(s string) (Outcome, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for o := Retry; o <= Normal; o++ {
		if s == outcomeNames[o] || s == o.Key() {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
}

func (o Outcome) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOutcome, int(o))
	}
	return []byte(outcomeNames[o]), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	parsed, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
