package schedule

import (
	"testing"
	"time"

	"pick_day_bot/internal/domain/calendar"
)

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.Date{Year: year, Month: month, Day: day}
}

func TestVotingPeriodSimpleWindow(t *testing.T) {
	// Window 24..30, inclusive on both ends.
	tests := []struct {
		name     string
		day      int
		expected Period
	}{
		{"day before start", 23, PeriodClosed},
		{"start boundary", 24, PeriodOpen},
		{"inside window", 27, PeriodOpen},
		{"end boundary", 30, PeriodOpen},
		{"day after end", 31, PeriodClosed},
		{"first of month", 1, PeriodClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VotingPeriod(date(2026, time.March, tt.day), 24, 30)
			if got != tt.expected {
				t.Errorf("VotingPeriod(day=%d, 24, 30) = %s, want %s", tt.day, got, tt.expected)
			}
		})
	}
}

func TestVotingPeriodSingleDayWindow(t *testing.T) {
	if got := VotingPeriod(date(2026, time.March, 15), 15, 15); got != PeriodOpen {
		t.Errorf("single-day window on its day = %s, want OPEN", got)
	}
	if got := VotingPeriod(date(2026, time.March, 16), 15, 15); got != PeriodClosed {
		t.Errorf("single-day window the day after = %s, want CLOSED", got)
	}
}

func TestVotingPeriodWrapWindow(t *testing.T) {
	// Window 25..5 wraps across the month boundary.
	tests := []struct {
		name     string
		day      int
		expected Period
	}{
		{"day before wrap start", 24, PeriodClosed},
		{"wrap start boundary", 25, PeriodOpen},
		{"tail of month", 26, PeriodOpen},
		{"head of next month", 1, PeriodOpen},
		{"wrap end boundary", 5, PeriodOpen},
		{"day after wrap end", 6, PeriodClosed},
		{"middle of month", 15, PeriodClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VotingPeriod(date(2026, time.February, tt.day), 25, 5)
			if got != tt.expected {
				t.Errorf("VotingPeriod(day=%d, 25, 5) = %s, want %s", tt.day, got, tt.expected)
			}
		})
	}
}

func TestVotingPeriodWrapAtMonthLengths(t *testing.T) {
	// The last day of the month is inside a wrap window regardless of the
	// month's length.
	tests := []struct {
		name string
		d    calendar.Date
	}{
		{"28-day February", date(2026, time.February, 28)},
		{"29-day February", date(2028, time.February, 29)},
		{"30-day April", date(2026, time.April, 30)},
		{"31-day March", date(2026, time.March, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VotingPeriod(tt.d, 28, 5); got != PeriodOpen {
				t.Errorf("VotingPeriod(%s, 28, 5) = %s, want OPEN", tt.d, got)
			}
		})
	}

	// A start day past the month's last day never opens in that month.
	if got := VotingPeriod(date(2026, time.February, 28), 30, 5); got != PeriodClosed {
		t.Errorf("VotingPeriod(2026-02-28, 30, 5) = %s, want CLOSED", got)
	}
}

func TestTargetMonthNormalWindow(t *testing.T) {
	// Voting held in month M targets M+1.
	year, month := TargetMonth(date(2026, time.March, 26), 24, 30)
	if year != 2026 || month != time.April {
		t.Errorf("TargetMonth = %04d/%s, want 2026/April", year, month)
	}
}

func TestTargetMonthDecemberRollsOver(t *testing.T) {
	year, month := TargetMonth(date(2026, time.December, 28), 24, 30)
	if year != 2027 || month != time.January {
		t.Errorf("TargetMonth = %04d/%s, want 2027/January", year, month)
	}
}

func TestTargetMonthWrapFinishingCurrentMonth(t *testing.T) {
	// Wrap window 25..5 still open on 2026-02-03 is finishing the vote for
	// February itself, not for April.
	year, month := TargetMonth(date(2026, time.February, 3), 25, 5)
	if year != 2026 || month != time.February {
		t.Errorf("TargetMonth = %04d/%s, want 2026/February", year, month)
	}

	// In the tail of the previous month the same window targets next month.
	year, month = TargetMonth(date(2026, time.January, 26), 25, 5)
	if year != 2026 || month != time.February {
		t.Errorf("TargetMonth = %04d/%s, want 2026/February", year, month)
	}
}

func TestTargetMonthWrapTailInDecember(t *testing.T) {
	year, month := TargetMonth(date(2026, time.December, 27), 25, 5)
	if year != 2027 || month != time.January {
		t.Errorf("TargetMonth = %04d/%s, want 2027/January", year, month)
	}
}
