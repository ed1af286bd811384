package clock

import (
	"fmt"
	"time"

	"pick_day_bot/internal/domain/calendar"
)

// driftBuffer compensates for external schedulers firing slightly before the
// intended minute; without it a trigger at 23:59:58 local time would resolve
// to the previous day.
const driftBuffer = 10 * time.Minute

// Location resolves the configured IANA zone name.
func Location(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// TodayIn resolves the current civil date in the given zone. This is the
// single place ambient time turns into a date; everything downstream takes
// the plain value. Deriving day-of-month anywhere else risks an off-by-one
// near local midnight and a wrongly skipped or duplicated transition.
func TodayIn(now time.Time, loc *time.Location) calendar.Date {
	t := now.Add(driftBuffer).In(loc)
	return calendar.Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}
