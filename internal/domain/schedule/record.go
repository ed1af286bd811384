package schedule

import "time"

// Status is the persisted state of a monthly schedule record. Transitions are
// monotonic within a cycle: no record -> open -> closed.
type Status string

const (
	// StatusNoRecord is the implicit state before a group's month has ever
	// been addressed; no row exists yet.
	StatusNoRecord Status = ""
	StatusOpen     Status = "open"
	StatusClosed   Status = "closed"
)

// FinalDate is one winning date stored on a closed schedule record.
// Participant identities are resolved transiently at announcement time and
// are not part of the stored selection.
type FinalDate struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// Record tracks one group's voting cycle for one month. Keyed by
// (group_id, year_month) so lookups never scan.
type Record struct {
	GroupID        string
	YearMonth      string // YYYYMM
	Status         Status
	FinalSelection []FinalDate
	UpdatedAt      time.Time
}
