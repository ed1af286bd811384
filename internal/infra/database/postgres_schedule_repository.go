package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"pick_day_bot/internal/domain/schedule"
)

// Custom errors specific to the schedule repository.
var ErrScheduleNotFound = fmt.Errorf("monthly schedule record not found")

type PostgresScheduleRepository struct {
	db *sql.DB
}

func NewPostgresScheduleRepository(db *sql.DB) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{db: db}
}

func (r *PostgresScheduleRepository) Get(ctx context.Context, groupID, yearMonth string) (*schedule.Record, error) {
	query := `SELECT group_id, year_month, status, final_selection, updated_at
               FROM monthly_schedules WHERE group_id = $1 AND year_month = $2`
	rec := schedule.Record{}
	var rawFinal []byte
	err := r.db.QueryRowContext(ctx, query, groupID, yearMonth).Scan(
		&rec.GroupID, &rec.YearMonth, &rec.Status, &rawFinal, &rec.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("error getting monthly schedule %s_%s: %w", groupID, yearMonth, err)
	}
	if len(rawFinal) > 0 {
		if err := json.Unmarshal(rawFinal, &rec.FinalSelection); err != nil {
			return nil, fmt.Errorf("error decoding final selection for %s_%s: %w", groupID, yearMonth, err)
		}
	}
	return &rec, nil
}

// Open upserts the record with status open. An existing row keeps its final
// selection; only the status and timestamp change.
func (r *PostgresScheduleRepository) Open(ctx context.Context, groupID, yearMonth string) error {
	query := `INSERT INTO monthly_schedules (group_id, year_month, status)
               VALUES ($1, $2, 'open')
               ON CONFLICT (group_id, year_month) DO UPDATE
               SET status = 'open', updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, groupID, yearMonth); err != nil {
		return fmt.Errorf("error opening monthly schedule %s_%s: %w", groupID, yearMonth, err)
	}
	return nil
}

func (r *PostgresScheduleRepository) Close(ctx context.Context, groupID, yearMonth string, final []schedule.FinalDate) error {
	if final == nil {
		final = []schedule.FinalDate{}
	}
	rawFinal, err := json.Marshal(final)
	if err != nil {
		return fmt.Errorf("error encoding final selection for %s_%s: %w", groupID, yearMonth, err)
	}

	query := `UPDATE monthly_schedules
               SET status = 'closed', final_selection = $1, updated_at = NOW()
               WHERE group_id = $2 AND year_month = $3
               RETURNING updated_at`
	var updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, rawFinal, groupID, yearMonth).Scan(&updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("error closing monthly schedule %s_%s: %w", groupID, yearMonth, err)
	}
	return nil
}
