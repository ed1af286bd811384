package schedule

import "context"

// Repository defines the operations for persisting monthly schedule records.
type Repository interface {
	// Get fetches the record for a group and YYYYMM key. Absence is a valid
	// prior state and is reported as ErrScheduleNotFound by implementations.
	Get(ctx context.Context, groupID, yearMonth string) (*Record, error)

	// Open upserts the record with status open, preserving any data already
	// present on the row (re-opening an open record is a harmless no-op at
	// the storage level; the state machine guards against it upstream).
	Open(ctx context.Context, groupID, yearMonth string) error

	// Close marks the record closed and stores the final selection.
	Close(ctx context.Context, groupID, yearMonth string, final []FinalDate) error
}
