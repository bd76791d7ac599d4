package deck

import (
	"fmt"
	"log/slog"

	"github.com/conorfennell/kioku/internal/domain"
	"github.com/conorfennell/kioku/internal/parser"
)

// builder collects the artifacts of one card id as they are listed.
type builder struct {
	id       domain.CardID
	question domain.Artifact
	answer   domain.Artifact
	metadata domain.Artifact
}

func (b *builder) add(kind parser.Kind, name string) {
	switch kind {
	case parser.Question:
		b.question = domain.Artifact(name)
	case parser.Answer:
		b.answer = domain.Artifact(name)
	case parser.Metadata:
		b.metadata = domain.Artifact(name)
	}
}

func (b *builder) complete() bool {
	return b.question != "" && b.answer != "" && b.metadata != ""
}

// build reads the metadata of a complete group and returns the card. ok is
// false when the metadata does not parse; err is set only when the artifact
// could not be read.
func (b *builder) build(store Store) (card domain.Card, ok bool, err error) {
	rc, err := store.Open(string(b.metadata))
	if err != nil {
		return domain.Card{}, false, err
	}
	defer rc.Close()

	level, reviewed, err := parser.ParseMetadata(rc)
	if err != nil {
		slog.Debug("Skipping card with bad metadata", "id", b.id, "error", err)
		return domain.Card{}, false, nil
	}

	card = domain.Card{
		ID:           b.id,
		Level:        level,
		LastReviewed: reviewed,
		Question:     b.question,
		Answer:       b.answer,
		Metadata:     b.metadata,
	}
	return card, true, nil
}

// Index lists the store and returns every complete card in the order its id
// was first listed. Incomplete groups and unparsable metadata are skipped.
func Index(store Store) ([]domain.Card, error) {
	names, err := store.List()
	if err != nil {
		return nil, err
	}

	builders := make(map[domain.CardID]*builder)
	var order []domain.CardID
	for _, name := range names {
		id, kind, ok := parser.ParseArtifactName(name)
		if !ok {
			continue
		}
		b, found := builders[domain.CardID(id)]
		if !found {
			b = &builder{id: domain.CardID(id)}
			builders[b.id] = b
			order = append(order, b.id)
		}
		b.add(kind, name)
	}

	cards := make([]domain.Card, 0, len(order))
	var skipped int
	for _, id := range order {
		b := builders[id]
		if !b.complete() {
			skipped++
			continue
		}
		card, ok, err := b.build(store)
		if err != nil {
			return nil, fmt.Errorf("read metadata of card %s: %w", id, err)
		}
		if !ok {
			skipped++
			continue
		}
		cards = append(cards, card)
	}

	if skipped > 0 {
		slog.Debug("Indexed deck", "cards", len(cards), "skipped", skipped)
	}
	return cards, nil
}
