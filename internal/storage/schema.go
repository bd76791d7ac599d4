package storage

const schema = `
-- The 'settings' table is a small key-value store for process-wide state,
-- such as the last opened deck root.
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- The 'reviews' table logs every answered card. Times are epoch milliseconds.
CREATE TABLE IF NOT EXISTS reviews (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    deck TEXT NOT NULL,
    card_id TEXT NOT NULL,
    outcome TEXT NOT NULL,
    from_level INTEGER NOT NULL,
    to_level INTEGER NOT NULL,
    reviewed_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_deck_card ON reviews(deck, card_id);
`

// LastRootKey is the settings key holding the last opened deck root.
const LastRootKey = "last_root"
