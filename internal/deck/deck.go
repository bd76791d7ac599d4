package deck

import (
	"fmt"
	"image"
	"time"

	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/ident"
	"github.com/conorfennell/kioku/internal/parser"
	"github.com/conorfennell/kioku/internal/schedule"
)

// Deck is one named collection of cards backed by a Store.
type Deck struct {
	name  string
	store Store
	clock schedule.Clock
}

// New returns a deck over store. A nil clock uses the system clock.
func New(name string, store Store, clock schedule.Clock) *Deck {
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	return &Deck{name: name, store: store, clock: clock}
}

func (d *Deck) Name() string { return d.name }

// Index returns all complete cards of the deck.
func (d *Deck) Index() ([]domain.Card, error) {
	cards, err := Index(d.store)
	if err != nil {
		return nil, fmt.Errorf("index deck %s: %w", d.name, err)
	}
	return cards, nil
}

// Card returns the card with the given id.
func (d *Deck) Card(id domain.CardID) (domain.Card, error) {
	cards, err := d.Index()
	if err != nil {
		return domain.Card{}, err
	}
	for _, card := range cards {
		if card.ID == id {
			return card, nil
		}
	}
	return domain.Card{}, fmt.Errorf("%w: %s in deck %s", domain.ErrCardNotFound, id, d.name)
}

// Stats counts due and total cards.
type Stats struct {
	Deck  string
	Due   int
	Total int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d/%d", s.Due, s.Total)
}

// Stats indexes the deck and counts the cards due now.
func (d *Deck) Stats() (Stats, error) {
	cards, err := d.Index()
	if err != nil {
		return Stats{}, err
	}
	return Tally(d.name, cards, d.clock.Now()), nil
}

// Tally counts the cards of a deck that are due at now.
func Tally(name string, cards []domain.Card, now time.Time) Stats {
	stats := Stats{Deck: name, Total: len(cards)}
	for _, card := range cards {
		if schedule.IsDue(card, now) {
			stats.Due++
		}
	}
	return stats
}

// AddCard stores a new card at level 0. The metadata artifact is written
// last, so an interrupted add leaves an incomplete group the indexer skips.
func (d *Deck) AddCard(question, answer image.Image) (domain.Card, error) {
	names, err := d.store.List()
	if err != nil {
		return domain.Card{}, err
	}
	taken := make(map[domain.CardID]bool, len(names))
	for _, name := range names {
		if id, _, ok := parser.ParseArtifactName(name); ok {
			taken[domain.CardID(id)] = true
		}
	}

	now := d.clock.Now()
	id := ident.Next(now, func(id domain.CardID) bool { return taken[id] })
	card := domain.Card{
		ID:           id,
		Level:        0,
		LastReviewed: now,
		Question:     domain.Artifact(parser.QuestionName(string(id))),
		Answer:       domain.Artifact(parser.AnswerName(string(id))),
		Metadata:     domain.Artifact(parser.MetadataName(string(id))),
	}
	if err := card.Validate(); err != nil {
		return domain.Card{}, err
	}

	if err := WriteImage(d.store, card.Question, question); err != nil {
		return domain.Card{}, err
	}
	if err := WriteImage(d.store, card.Answer, answer); err != nil {
		return domain.Card{}, err
	}
	if err := d.Record(card); err != nil {
		return domain.Card{}, err
	}
	return card, nil
}

// ReplaceImages overwrites the images of an existing card. A nil image keeps
// that side unchanged.
func (d *Deck) ReplaceImages(card domain.Card, question, answer image.Image) error {
	if question != nil {
		if err := WriteImage(d.store, card.Question, question); err != nil {
			return err
		}
	}
	if answer != nil {
		if err := WriteImage(d.store, card.Answer, answer); err != nil {
			return err
		}
	}
	return nil
}

// LoadImages decodes the question and answer images of card.
func (d *Deck) LoadImages(card domain.Card) (question, answer image.Image, err error) {
	question, err = ReadImage(d.store, card.Question)
	if err != nil {
		return nil, nil, err
	}
	answer, err = ReadImage(d.store, card.Answer)
	if err != nil {
		return nil, nil, err
	}
	return question, answer, nil
}

// Record persists the level and review time of card.
func (d *Deck) Record(card domain.Card) error {
	line := parser.FormatMetadata(card.Level, card.LastReviewed)
	if err := d.store.WriteFile(string(card.Metadata), []byte(line)); err != nil {
		return fmt.Errorf("record card %s: %w", card.ID, err)
	}
	return nil
}

// Path resolves an artifact of this deck for display.
func (d *Deck) Path(artifact domain.Artifact) string {
	return d.store.Path(string(artifact))
}
