package vote

import "pick_day_bot/internal/domain/calendar"

// Choice is a participant's answer for one candidate date.
type Choice string

const (
	ChoiceYes Choice = "yes"
	ChoiceNo  Choice = "no"
)

// Record is the per-group, per-date vote ledger entry, aggregated from one
// row per voter. A user appears in at most one of the two sets; the toggle
// operation enforces the exclusion, not storage. Created lazily on first
// vote and never deleted; the next month's cycle simply supersedes it.
type Record struct {
	GroupID   string
	Date      calendar.Date
	YesVoters []string
	NoVoters  []string
}
