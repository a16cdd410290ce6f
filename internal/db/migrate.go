package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    name TEXT NOT NULL,
    buddy_name TEXT NOT NULL DEFAULT 'Zentrafuge',
    buddy_vibe TEXT NOT NULL DEFAULT 'calm',
    growth_level INTEGER NOT NULL DEFAULT 1 CHECK (growth_level BETWEEN 1 AND 5),
    growth_points INTEGER NOT NULL DEFAULT 0 CHECK (growth_points >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS chat_messages (
    id BIGSERIAL PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    sender TEXT NOT NULL CHECK (sender IN ('user', 'buddy')),
    text TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages (user_id, id);

CREATE TABLE IF NOT EXISTS buddy_messages (
    id TEXT PRIMARY KEY,
    message TEXT NOT NULL,
    sender_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    receiver_id TEXT,
    sent_at TIMESTAMPTZ,
    received_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_buddy_messages_unclaimed ON buddy_messages (sender_id) WHERE receiver_id IS NULL;
CREATE INDEX IF NOT EXISTS idx_buddy_messages_receiver ON buddy_messages (receiver_id);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}
