package database

import (
	"context"
	"database/sql"
	"fmt"

	"pick_day_bot/internal/domain/member"
)

// Custom errors specific to the member store.
var ErrMemberNotFound = fmt.Errorf("member profile not found")

type PostgresMemberRepository struct {
	db *sql.DB
}

func NewPostgresMemberRepository(db *sql.DB) *PostgresMemberRepository {
	return &PostgresMemberRepository{db: db}
}

func (r *PostgresMemberRepository) Upsert(ctx context.Context, p *member.Profile) error {
	query := `INSERT INTO members (user_id, display_name, avatar_url)
               VALUES ($1, $2, $3)
               ON CONFLICT (user_id) DO UPDATE
               SET display_name = EXCLUDED.display_name,
                   avatar_url = EXCLUDED.avatar_url,
                   updated_at = NOW()
               RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.DisplayName, p.AvatarURL).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting member profile %s: %w", p.UserID, err)
	}
	return nil
}

func (r *PostgresMemberRepository) GetByID(ctx context.Context, userID string) (*member.Profile, error) {
	query := `SELECT user_id, display_name, avatar_url, updated_at FROM members WHERE user_id = $1`
	p := member.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.DisplayName, &p.AvatarURL, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("error getting member profile %s: %w", userID, err)
	}
	return &p, nil
}
