package calendar

import "context"

// Holiday is one entry from the offline-converted government calendar feed.
// The feed is dirty by nature: dates may use "/" or "-" separators, and
// entries that match no calendar day are ignored rather than rejected.
type Holiday struct {
	Date      string `json:"date"` // YYYY-MM-DD or YYYY/MM/DD
	Name      string `json:"name"`
	IsHoliday bool   `json:"isHoliday"`
}

// HolidaySource lists the holidays known to the deployment.
type HolidaySource interface {
	ListHolidays(ctx context.Context) ([]Holiday, error)
}
