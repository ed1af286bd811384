package schedule

import (
	"time"

	"pick_day_bot/internal/domain/calendar"
)

// Period is the expected state of the voting window for a given day.
type Period string

const (
	PeriodOpen   Period = "OPEN"
	PeriodClosed Period = "CLOSED"
)

// VotingPeriod decides whether voting should be open on the given day.
// Both window bounds are inclusive. A window whose start day is numerically
// greater than its end day wraps across the month boundary (e.g. 25..5).
//
// today must already be resolved in the deployment's local timezone; a
// day-of-month derived from an unnormalized timestamp is off by one near
// local midnight and corrupts the transition schedule.
func VotingPeriod(today calendar.Date, startDay, endDay int) Period {
	day := today.Day
	if startDay <= endDay {
		if day >= startDay && day <= endDay {
			return PeriodOpen
		}
		return PeriodClosed
	}
	// Wrap window: open in the tail of this month or the head of the next.
	if day >= startDay || day <= endDay {
		return PeriodOpen
	}
	return PeriodClosed
}

// TargetMonth resolves which month the currently relevant voting window is
// about. Normally voting held in month M picks dates for M+1. A wrap window
// still open in the first days of a month, however, is finishing the vote
// for the current month; without this reclassification a window closing on
// day 3 of month M would be filed as voting for M+2.
func TargetMonth(today calendar.Date, startDay, endDay int) (int, time.Month) {
	if startDay > endDay && today.Day <= endDay {
		return today.Year, today.Month
	}
	return calendar.NextMonth(today.Year, today.Month)
}
