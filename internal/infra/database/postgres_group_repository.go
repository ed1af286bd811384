package database

import (
	"context"
	"database/sql"
	"fmt"

	"pick_day_bot/internal/domain/group"
)

// Custom errors specific to the group registry.
var ErrGroupNotFound = fmt.Errorf("group not found")

type PostgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

// GetActive returns the single active group, newest registration first.
func (r *PostgresGroupRepository) GetActive(ctx context.Context) (*group.Group, error) {
	query := `SELECT id, chat_id, auto_vote_start_day, auto_vote_end_day, is_active, created_at, updated_at
               FROM groups WHERE is_active = TRUE ORDER BY updated_at DESC LIMIT 1`
	g := group.Group{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&g.ID, &g.ChatID, &g.AutoVoteStartDay, &g.AutoVoteEndDay, &g.IsActive, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("error getting active group: %w", err)
	}
	return &g, nil
}

// Save upserts the group. When the saved group is active, every other group
// is deactivated in the same transaction to hold the single-active invariant.
func (r *PostgresGroupRepository) Save(ctx context.Context, g *group.Group) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for group save: %w", err)
	}
	defer txn.Rollback() // Rollback if not committed

	if g.IsActive {
		if _, err := txn.ExecContext(ctx, `UPDATE groups SET is_active = FALSE, updated_at = NOW() WHERE is_active = TRUE AND id != $1`, g.ID); err != nil {
			return fmt.Errorf("failed to deactivate previous groups: %w", err)
		}
	}

	query := `INSERT INTO groups (id, chat_id, auto_vote_start_day, auto_vote_end_day, is_active)
               VALUES ($1, $2, $3, $4, $5)
               ON CONFLICT (id) DO UPDATE
               SET chat_id = EXCLUDED.chat_id,
                   auto_vote_start_day = EXCLUDED.auto_vote_start_day,
                   auto_vote_end_day = EXCLUDED.auto_vote_end_day,
                   is_active = EXCLUDED.is_active,
                   updated_at = NOW()
               RETURNING created_at, updated_at`
	err = txn.QueryRowContext(ctx, query, g.ID, g.ChatID, g.AutoVoteStartDay, g.AutoVoteEndDay, g.IsActive).
		Scan(&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving group: %w", err)
	}

	return txn.Commit()
}

func (r *PostgresGroupRepository) UpdateWindow(ctx context.Context, groupID string, startDay, endDay int) error {
	query := `UPDATE groups
               SET auto_vote_start_day = $1, auto_vote_end_day = $2, updated_at = NOW()
               WHERE id = $3
               RETURNING updated_at`
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, startDay, endDay, groupID).Scan(&updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrGroupNotFound
		}
		return fmt.Errorf("error updating group voting window: %w", err)
	}
	return nil
}
