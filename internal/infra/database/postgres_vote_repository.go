package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pick_day_bot/internal/domain/calendar"
	"pick_day_bot/internal/domain/vote"
)

type PostgresVoteRepository struct {
	db *sql.DB
}

func NewPostgresVoteRepository(db *sql.DB) *PostgresVoteRepository {
	return &PostgresVoteRepository{db: db}
}

// SetChoice upserts the voter's row for the date. Each voter owns a disjoint
// row, so concurrent toggles by different users commute; a re-toggle by the
// same user atomically moves them between the yes and no sets. There is no
// whole-record read-modify-write anywhere in the write path.
func (r *PostgresVoteRepository) SetChoice(ctx context.Context, groupID string, date calendar.Date, userID string, choice vote.Choice) error {
	query := `INSERT INTO date_votes (group_id, vote_date, user_id, choice)
               VALUES ($1, $2, $3, $4)
               ON CONFLICT (group_id, vote_date, user_id) DO UPDATE
               SET choice = EXCLUDED.choice, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, groupID, sqlDate(date), userID, choice); err != nil {
		return fmt.Errorf("error recording vote %s/%s/%s: %w", groupID, date, userID, err)
	}
	return nil
}

// Get aggregates the voter rows of one date into a ledger record. A date
// with no rows reads as empty sets; absence is a valid prior state. Voters
// are ordered by arrival so tally participant lists are deterministic.
func (r *PostgresVoteRepository) Get(ctx context.Context, groupID string, date calendar.Date) (*vote.Record, error) {
	query := `SELECT user_id, choice FROM date_votes
               WHERE group_id = $1 AND vote_date = $2
               ORDER BY updated_at ASC, user_id ASC`
	rows, err := r.db.QueryContext(ctx, query, groupID, sqlDate(date))
	if err != nil {
		return nil, fmt.Errorf("error querying votes for %s/%s: %w", groupID, date, err)
	}
	defer rows.Close()

	rec := &vote.Record{GroupID: groupID, Date: date}
	for rows.Next() {
		var userID string
		var choice vote.Choice
		if err := rows.Scan(&userID, &choice); err != nil {
			return nil, fmt.Errorf("error scanning vote row: %w", err)
		}
		switch choice {
		case vote.ChoiceYes:
			rec.YesVoters = append(rec.YesVoters, userID)
		case vote.ChoiceNo:
			rec.NoVoters = append(rec.NoVoters, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote rows: %w", err)
	}
	return rec, nil
}

func sqlDate(d calendar.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
