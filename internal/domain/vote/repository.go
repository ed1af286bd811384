package vote

import (
	"context"

	"pick_day_bot/internal/domain/calendar"
)

// Ledger defines the vote record store.
//
// SetChoice must be a commutative per-user mutation: concurrent toggles by
// different users on the same date both land, and a user's re-toggle moves
// them between the yes and no sets atomically. Implementations must not
// read-modify-write the whole record, or racing clients silently drop votes.
type Ledger interface {
	SetChoice(ctx context.Context, groupID string, date calendar.Date, userID string, choice Choice) error

	// Get aggregates the ledger entry for one date. A date nobody voted on
	// yet reads as a record with empty voter sets, not an error.
	Get(ctx context.Context, groupID string, date calendar.Date) (*Record, error)
}
