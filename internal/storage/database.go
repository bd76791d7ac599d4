package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/conorfennell/kioku/internal/domain"
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// GetSetting returns the value stored under key, or "" if there is none.
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting removes key.
func (db *DB) DeleteSetting(key string) error {
	if _, err := db.conn.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// RecordReview appends one review to the log.
func (db *DB) RecordReview(log domain.ReviewLog) error {
	outcome, err := log.Outcome.MarshalText()
	if err != nil {
		return err
	}
	_, err = db.conn.Exec(`
		INSERT INTO reviews (deck, card_id, outcome, from_level, to_level, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		log.Deck,
		string(log.CardID),
		string(outcome),
		log.FromLevel,
		log.ToLevel,
		log.ReviewedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record review of card %s: %w", log.CardID, err)
	}
	return nil
}

// GetReviews returns the reviews of a deck, newest first. An empty cardID
// returns the reviews of every card. A limit of 0 or less means no limit.
func (db *DB) GetReviews(deck string, cardID domain.CardID, limit int) ([]domain.ReviewLog, error) {
	query := `
		SELECT deck, card_id, outcome, from_level, to_level, reviewed_at
		FROM reviews WHERE deck = ?`
	args := []any{deck}
	if cardID != "" {
		query += ` AND card_id = ?`
		args = append(args, string(cardID))
	}
	query += ` ORDER BY reviewed_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for deck %s: %w", deck, err)
	}
	defer rows.Close()

	var logs []domain.ReviewLog
	for rows.Next() {
		var (
			l        domain.ReviewLog
			id       string
			outcome  string
			reviewed int64
		)
		if err := rows.Scan(&l.Deck, &id, &outcome, &l.FromLevel, &l.ToLevel, &reviewed); err != nil {
			return nil, fmt.Errorf("failed to scan review row for deck %s: %w", deck, err)
		}
		if err := l.Outcome.UnmarshalText([]byte(outcome)); err != nil {
			return nil, fmt.Errorf("review of card %s: %w", id, err)
		}
		l.CardID = domain.CardID(id)
		l.ReviewedAt = time.UnixMilli(reviewed)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// GetReviewedCardIDs returns the distinct card ids with reviews in a deck.
func (db *DB) GetReviewedCardIDs(deck string) ([]domain.CardID, error) {
	rows, err := db.conn.Query(`
		SELECT DISTINCT card_id FROM reviews WHERE deck = ? ORDER BY card_id
	`, deck)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviewed cards for deck %s: %w", deck, err)
	}
	defer rows.Close()

	var ids []domain.CardID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan card id for deck %s: %w", deck, err)
		}
		ids = append(ids, domain.CardID(id))
	}
	return ids, rows.Err()
}

// DeleteReviewsByCard removes the review history of one card.
func (db *DB) DeleteReviewsByCard(deck string, cardID domain.CardID) error {
	_, err := db.conn.Exec(`
		DELETE FROM reviews
		WHERE deck = ? AND card_id = ?
	`, deck, string(cardID))
	if err != nil {
		return fmt.Errorf("failed to delete reviews of card %s: %w", cardID, err)
	}
	return nil
}
