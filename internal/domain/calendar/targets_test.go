package calendar

import (
	"testing"
	"time"
)

func TestMonthTargetsWeekendsOnly(t *testing.T) {
	// June 2026 starts on a Monday and has 30 days: weekends are
	// 6,7,13,14,20,21,27,28.
	targets := MonthTargets(2026, time.June, nil)

	if len(targets) != 8 {
		t.Fatalf("got %d targets, want 8 weekend days", len(targets))
	}
	expected := []string{
		"2026-06-06", "2026-06-07", "2026-06-13", "2026-06-14",
		"2026-06-20", "2026-06-21", "2026-06-27", "2026-06-28",
	}
	for i, want := range expected {
		if targets[i].DateStr != want {
			t.Errorf("targets[%d] = %s, want %s", i, targets[i].DateStr, want)
		}
		if !targets[i].IsWeekend {
			t.Errorf("targets[%d] (%s) not flagged as weekend", i, targets[i].DateStr)
		}
	}
}

func TestMonthTargetsIncludesHolidays(t *testing.T) {
	holidays := []Holiday{
		// Separator normalization: feed uses slashes.
		{Date: "2026/06/19", Name: "Dragon Boat Festival", IsHoliday: true},
		// Different month: silently ignored.
		{Date: "2026-07-01", Name: "Elsewhere", IsHoliday: true},
		// Not actually a day off: excluded.
		{Date: "2026-06-10", Name: "Workday memo", IsHoliday: false},
		// Dirty entry: tolerated, matches nothing.
		{Date: "junk", Name: "Broken", IsHoliday: true},
	}

	targets := MonthTargets(2026, time.June, holidays)
	if len(targets) != 9 {
		t.Fatalf("got %d targets, want 8 weekends + 1 holiday", len(targets))
	}

	var holidayTarget *CandidateDate
	for i := range targets {
		if targets[i].DateStr == "2026-06-19" {
			holidayTarget = &targets[i]
		}
		if targets[i].DateStr == "2026-06-10" {
			t.Error("non-holiday weekday 2026-06-10 included")
		}
	}
	if holidayTarget == nil {
		t.Fatal("holiday 2026-06-19 missing from targets")
	}
	if !holidayTarget.IsHoliday || holidayTarget.IsWeekend {
		t.Errorf("2026-06-19 flags = holiday:%v weekend:%v, want holiday-only",
			holidayTarget.IsHoliday, holidayTarget.IsWeekend)
	}
	if holidayTarget.HolidayName != "Dragon Boat Festival" {
		t.Errorf("holiday name = %q", holidayTarget.HolidayName)
	}

	// Ascending order throughout.
	for i := 1; i < len(targets); i++ {
		if targets[i-1].DateStr >= targets[i].DateStr {
			t.Errorf("targets out of order: %s before %s", targets[i-1].DateStr, targets[i].DateStr)
		}
	}
}

func TestMonthTargetsHolidayOnWeekend(t *testing.T) {
	holidays := []Holiday{{Date: "2026-06-06", Name: "Festival", IsHoliday: true}}
	targets := MonthTargets(2026, time.June, holidays)

	if len(targets) != 8 {
		t.Fatalf("got %d targets, want 8 (holiday merges into the weekend day)", len(targets))
	}
	first := targets[0]
	if first.DateStr != "2026-06-06" || !first.IsWeekend || !first.IsHoliday || first.HolidayName != "Festival" {
		t.Errorf("merged entry = %+v", first)
	}
}
