package scan

import (
	"log/slog"
	"time"

	"github.com/conorfennell/kioku/internal/deck"
	"github.com/conorfennell/kioku/internal/domain"
)

// ReviewStore is the review history kept alongside the decks.
type ReviewStore interface {
	GetReviewedCardIDs(deck string) ([]domain.CardID, error)
	DeleteReviewsByCard(deck string, cardID domain.CardID) error
}

// Run indexes every deck of root and counts the cards due at now. When
// reviews is not nil, review history of cards that no longer exist is
// removed. A deck that cannot be indexed is logged and left out.
func Run(root *deck.Root, reviews ReviewStore, now time.Time) ([]deck.Stats, error) {
	names, err := root.Decks()
	if err != nil {
		return nil, err
	}

	stats := make([]deck.Stats, 0, len(names))
	for _, name := range names {
		d, err := root.Open(name)
		if err != nil {
			slog.Error("Error opening deck", "deck", name, "error", err)
			continue
		}
		cards, err := d.Index()
		if err != nil {
			slog.Error("Error indexing deck", "deck", name, "error", err)
			continue
		}
		stats = append(stats, deck.Tally(name, cards, now))

		if reviews != nil {
			pruneOrphans(name, cards, reviews)
		}
	}
	return stats, nil
}

func pruneOrphans(name string, cards []domain.Card, reviews ReviewStore) {
	found := make(map[domain.CardID]bool, len(cards))
	for _, c := range cards {
		found[c.ID] = true
	}

	reviewed, err := reviews.GetReviewedCardIDs(name)
	if err != nil {
		slog.Warn("Failed to get reviewed cards", "deck", name, "error", err)
		return
	}

	var orphaned int
	for _, id := range reviewed {
		if found[id] {
			continue
		}
		slog.Info("Orphaned review history, deleting", "deck", name, "card", id)
		orphaned++
		if err := reviews.DeleteReviewsByCard(name, id); err != nil {
			slog.Warn("Failed to delete orphaned reviews", "deck", name, "card", id, "error", err)
		}
	}

	slog.Debug("Deck scanned",
		"deck", name,
		"cards", len(cards),
		"orphaned_deleted", orphaned,
	)
}
