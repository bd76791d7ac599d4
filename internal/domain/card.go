package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CardID identifies a card within its deck. It is generated from the
// creation time and shared by the three artifacts of the card.
type CardID string

// Artifact names one storage object inside a deck, e.g. "1700000000000_Q.png".
type Artifact string

// Card is the scheduling record of one flashcard.
type Card struct {
	ID           CardID `validate:"required"`
	Level        int    `validate:"gte=0"`
	LastReviewed time.Time
	Question     Artifact `validate:"required"`
	Answer       Artifact `validate:"required"`
	Metadata     Artifact `validate:"required"`
}

var validate = validator.New()

// Validate reports whether the card references all three artifacts and has a
// usable level.
func (c Card) Validate() error {
	return validate.Struct(c)
}

// ReviewLog records a single review event for a card.
type ReviewLog struct {
	Deck       string
	CardID     CardID
	Outcome    Outcome
	FromLevel  int
	ToLevel    int
	ReviewedAt time.Time
}
