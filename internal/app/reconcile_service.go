package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"pick_day_bot/internal/domain/calendar"
	"pick_day_bot/internal/domain/group"
	"pick_day_bot/internal/domain/member"
	"pick_day_bot/internal/domain/messaging"
	"pick_day_bot/internal/domain/schedule"
	"pick_day_bot/internal/domain/vote"
	idb "pick_day_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultQuorum is the minimum yes-vote count for a date to qualify.
	DefaultQuorum = 3
	// topDatesLimit caps how many ranked dates a closure announces.
	topDatesLimit = 2
	// unknownDisplayName renders voters whose profile cannot be resolved.
	unknownDisplayName = "unknown"
)

// ReconcileService drives the monthly schedule state machine for the active
// group: once per day an external trigger calls Reconcile, which compares
// the expected voting-period status against the stored record and performs
// at most one transition (open or close+tally+announce).
type ReconcileService struct {
	groups    group.Repository
	schedules schedule.Repository
	ledger    vote.Ledger
	members   member.Repository
	notifier  messaging.Notifier
	quorum    int
	logger    *logrus.Entry
}

func NewReconcileService(
	groups group.Repository,
	schedules schedule.Repository,
	ledger vote.Ledger,
	members member.Repository,
	notifier messaging.Notifier,
	quorum int,
	logger *logrus.Entry,
) *ReconcileService {
	if quorum <= 0 {
		quorum = DefaultQuorum
	}
	return &ReconcileService{
		groups:    groups,
		schedules: schedules,
		ledger:    ledger,
		members:   members,
		notifier:  notifier,
		quorum:    quorum,
		logger:    logger,
	}
}

// Reconcile runs one reconciliation pass for the active group and returns a
// human-readable summary of the actions taken. Duplicate invocations on the
// same day no-op: the transition table guards on the stored status, so a
// second call sees the already-updated record and reports no change.
//
// A failed announcement after the status write is reported in the summary
// but never rolls the transition back; re-running would otherwise
// double-announce.
func (s *ReconcileService) Reconcile(ctx context.Context, today calendar.Date) ([]string, error) {
	results := []string{fmt.Sprintf("[system] check date: %s", today)}

	g, err := s.groups.GetActive(ctx)
	if err != nil {
		if err == idb.ErrGroupNotFound {
			results = append(results, "no active group registered")
			return results, nil
		}
		return nil, fmt.Errorf("failed to load active group: %w", err)
	}
	if !g.HasVotingWindow() {
		results = append(results, fmt.Sprintf("[%s] active group missing voting window settings", g.ID))
		return results, nil
	}

	want := schedule.VotingPeriod(today, g.AutoVoteStartDay, g.AutoVoteEndDay)
	targetYear, targetMonth := schedule.TargetMonth(today, g.AutoVoteStartDay, g.AutoVoteEndDay)
	yearMonth := calendar.YearMonthKey(targetYear, targetMonth)
	results = append(results, fmt.Sprintf("[system] want status: %s, target month: %04d/%02d", want, targetYear, int(targetMonth)))

	current := schedule.StatusNoRecord
	rec, err := s.schedules.Get(ctx, g.ID, yearMonth)
	if err != nil && err != idb.ErrScheduleNotFound {
		return nil, fmt.Errorf("failed to load schedule record %s_%s: %w", g.ID, yearMonth, err)
	}
	if rec != nil {
		current = rec.Status
	}

	switch {
	case want == schedule.PeriodOpen && current != schedule.StatusOpen:
		line, err := s.openVoting(ctx, g, targetYear, targetMonth, yearMonth)
		if err != nil {
			return results, err
		}
		results = append(results, line)

	case want == schedule.PeriodClosed && current == schedule.StatusOpen:
		line, err := s.closeVoting(ctx, g, targetYear, targetMonth, yearMonth)
		if err != nil {
			return results, err
		}
		results = append(results, line)

	default:
		results = append(results, fmt.Sprintf("[%s] no change (want %s, current %q)", g.ID, want, current))
	}

	return results, nil
}

func (s *ReconcileService) openVoting(ctx context.Context, g *group.Group, year int, month time.Month, yearMonth string) (string, error) {
	if err := s.schedules.Open(ctx, g.ID, yearMonth); err != nil {
		return "", fmt.Errorf("failed to open schedule %s_%s: %w", g.ID, yearMonth, err)
	}
	monthStr := fmt.Sprintf("%04d/%02d", year, int(month))
	s.logger.WithFields(logrus.Fields{"group_id": g.ID, "year_month": yearMonth}).Info("Voting opened")

	payload, err := messaging.NewVotingOpen(monthStr)
	if err != nil {
		return "", err
	}
	if err := s.notifier.Send(ctx, g.ChatID, payload); err != nil {
		s.logger.WithError(err).WithField("group_id", g.ID).Warn("Voting-open push failed; transition stands")
		return fmt.Sprintf("[%s] OPENED voting for %s (push failed)", g.ID, monthStr), nil
	}
	return fmt.Sprintf("[%s] OPENED voting for %s", g.ID, monthStr), nil
}

func (s *ReconcileService) closeVoting(ctx context.Context, g *group.Group, year int, month time.Month, yearMonth string) (string, error) {
	top, checked, err := s.TallyMonth(ctx, g.ID, year, month)
	if err != nil {
		return "", err
	}

	final := make([]schedule.FinalDate, 0, len(top))
	for _, d := range top {
		final = append(final, schedule.FinalDate{Date: d.Date, Count: d.Count})
	}
	if err := s.schedules.Close(ctx, g.ID, yearMonth, final); err != nil {
		return "", fmt.Errorf("failed to close schedule %s_%s: %w", g.ID, yearMonth, err)
	}
	s.logger.WithFields(logrus.Fields{"group_id": g.ID, "year_month": yearMonth, "qualifying": len(top)}).Info("Voting closed")

	payload, err := messaging.NewVotingClosure(top)
	if err != nil {
		return "", err
	}
	pushNote := ""
	if err := s.notifier.Send(ctx, g.ChatID, payload); err != nil {
		s.logger.WithError(err).WithField("group_id", g.ID).Warn("Voting-closure push failed; transition stands")
		pushNote = " (push failed)"
	}

	if len(top) == 0 {
		return fmt.Sprintf("[%s] CLOSED (no candidates among %d days checked)%s", g.ID, checked, pushNote), nil
	}
	return fmt.Sprintf("[%s] CLOSED & announced top %d%s", g.ID, len(top), pushNote), nil
}

// TallyMonth reads every date ledger of the target month, keeps the dates
// with at least quorum yes votes, ranks them by count descending (ties keep
// date order) and resolves the display identities of the top entries.
// The number of days checked is returned for the operation summary.
func (s *ReconcileService) TallyMonth(ctx context.Context, groupID string, year int, month time.Month) ([]messaging.RankedDate, int, error) {
	days := calendar.DaysInMonth(year, month)

	var candidates []messaging.RankedDate
	for day := 1; day <= days; day++ {
		date := calendar.Date{Year: year, Month: month, Day: day}
		rec, err := s.ledger.Get(ctx, groupID, date)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read votes for %s: %w", date, err)
		}
		if len(rec.YesVoters) < s.quorum {
			continue
		}
		candidates = append(candidates, messaging.RankedDate{
			Date:  date.String(),
			Count: len(rec.YesVoters),
			// Participants resolved below, only for the announced top dates.
			Participants: profilesFromIDs(rec.YesVoters),
		})
	}

	// Stable sort: equal counts keep ascending date order, first wins.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Count > candidates[j].Count
	})
	if len(candidates) > topDatesLimit {
		candidates = candidates[:topDatesLimit]
	}

	for i := range candidates {
		for j := range candidates[i].Participants {
			candidates[i].Participants[j] = s.resolveProfile(ctx, candidates[i].Participants[j].UserID)
		}
	}
	return candidates, days, nil
}

func profilesFromIDs(userIDs []string) []member.Profile {
	profiles := make([]member.Profile, len(userIDs))
	for i, id := range userIDs {
		profiles[i] = member.Profile{UserID: id}
	}
	return profiles
}

// resolveProfile looks a voter up in the member store. An unresolvable ID
// degrades to a placeholder name rather than failing the whole tally.
func (s *ReconcileService) resolveProfile(ctx context.Context, userID string) member.Profile {
	p, err := s.members.GetByID(ctx, userID)
	if err != nil {
		if err != idb.ErrMemberNotFound {
			s.logger.WithError(err).WithField("user_id", userID).Warn("Profile lookup failed; rendering as unknown")
		}
		return member.Profile{UserID: userID, DisplayName: unknownDisplayName}
	}
	if p.DisplayName == "" {
		p.DisplayName = unknownDisplayName
	}
	return *p
}
