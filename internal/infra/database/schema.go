package database

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Chat groups. Exactly one row is active at a time (latest-group strategy).
CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    chat_id BIGINT NOT NULL,
    auto_vote_start_day INT NOT NULL,
    auto_vote_end_day INT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_groups_is_active ON groups(is_active);

-- One row per group and month, keyed so lookups never scan.
CREATE TABLE IF NOT EXISTS monthly_schedules (
    group_id TEXT NOT NULL REFERENCES groups(id),
    year_month CHAR(6) NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('open', 'closed')),
    final_selection JSONB NOT NULL DEFAULT '[]',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (group_id, year_month)
);

-- Vote ledger: one row per voter per date. The per-row primary key makes the
-- toggle an upsert on a disjoint row, so concurrent voters never conflict.
CREATE TABLE IF NOT EXISTS date_votes (
    group_id TEXT NOT NULL,
    vote_date DATE NOT NULL,
    user_id TEXT NOT NULL,
    choice TEXT NOT NULL CHECK (choice IN ('yes', 'no')),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (group_id, vote_date, user_id)
);

CREATE INDEX IF NOT EXISTS idx_date_votes_group_date ON date_votes(group_id, vote_date);

-- Display identities captured from the chat platform.
CREATE TABLE IF NOT EXISTS members (
    user_id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL DEFAULT '',
    avatar_url TEXT NOT NULL DEFAULT '',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
