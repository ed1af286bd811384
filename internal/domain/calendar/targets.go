package calendar

import (
	"strings"
	"time"
)

// CandidateDate is one day eligible for voting: a weekend day or a holiday.
// Derived per month from the holiday feed, never persisted.
type CandidateDate struct {
	DateStr     string // YYYY-MM-DD
	Weekday     time.Weekday
	IsWeekend   bool
	IsHoliday   bool
	HolidayName string
}

// MonthTargets produces the candidate dates of a month in ascending order:
// one entry per day that is a weekend day or a listed holiday. Holiday dates
// are compared after separator normalization ("/" vs "-").
func MonthTargets(year int, month time.Month, holidays []Holiday) []CandidateDate {
	byDate := make(map[string]Holiday, len(holidays))
	for _, h := range holidays {
		if !h.IsHoliday {
			continue
		}
		byDate[strings.ReplaceAll(h.Date, "/", "-")] = h
	}

	var targets []CandidateDate
	for day := 1; day <= DaysInMonth(year, month); day++ {
		d := Date{Year: year, Month: month, Day: day}
		weekday := d.Weekday()
		isWeekend := weekday == time.Saturday || weekday == time.Sunday

		holiday, isHoliday := byDate[d.String()]
		if !isWeekend && !isHoliday {
			continue
		}

		targets = append(targets, CandidateDate{
			DateStr:     d.String(),
			Weekday:     weekday,
			IsWeekend:   isWeekend,
			IsHoliday:   isHoliday,
			HolidayName: holiday.Name,
		})
	}
	return targets
}
