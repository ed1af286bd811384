package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pick_day_bot/internal/domain/calendar"
	"pick_day_bot/internal/domain/group"
	"pick_day_bot/internal/domain/messaging"
	"pick_day_bot/internal/domain/schedule"
	idb "pick_day_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for admin operations.
var ErrNoFinalSelection = fmt.Errorf("no closed schedule with a final selection to announce")

const (
	defaultVoteStartDay = 24
	defaultVoteEndDay   = 30
)

// AdminService handles group registration and voting-window management.
// Every operation is gated on the configured admin Telegram ID.
type AdminService struct {
	groups          group.Repository
	schedules       schedule.Repository
	notifier        messaging.Notifier
	adminTelegramID int64
	logger          *logrus.Entry
}

func NewAdminService(groups group.Repository, schedules schedule.Repository, notifier messaging.Notifier, adminID int64, logger *logrus.Entry) *AdminService {
	return &AdminService{
		groups:          groups,
		schedules:       schedules,
		notifier:        notifier,
		adminTelegramID: adminID,
		logger:          logger,
	}
}

// InitGroup registers a chat as the active group, deactivating any previous
// one (single-active-group model). Zero window days select the defaults.
func (s *AdminService) InitGroup(ctx context.Context, performingID, chatID int64, startDay, endDay int) (*group.Group, error) {
	if performingID != s.adminTelegramID {
		return nil, ErrAdminNotAuthorized
	}
	if startDay == 0 && endDay == 0 {
		startDay, endDay = defaultVoteStartDay, defaultVoteEndDay
	}
	if !windowInRange(startDay, endDay) {
		return nil, ErrInvalidWindow
	}

	g := &group.Group{
		ID:               strconv.FormatInt(chatID, 10),
		ChatID:           chatID,
		AutoVoteStartDay: startDay,
		AutoVoteEndDay:   endDay,
		IsActive:         true,
	}
	if err := s.groups.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save group: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"group_id":  g.ID,
		"start_day": startDay,
		"end_day":   endDay,
	}).Info("Group registered as active")
	return g, nil
}

// SetWindow changes the active group's voting window.
func (s *AdminService) SetWindow(ctx context.Context, performingID int64, startDay, endDay int) (*group.Group, error) {
	if performingID != s.adminTelegramID {
		return nil, ErrAdminNotAuthorized
	}
	if !windowInRange(startDay, endDay) {
		return nil, ErrInvalidWindow
	}

	g, err := s.groups.GetActive(ctx)
	if err != nil {
		if err == idb.ErrGroupNotFound {
			return nil, ErrNoActiveGroup
		}
		return nil, fmt.Errorf("failed to load active group: %w", err)
	}

	if err := s.groups.UpdateWindow(ctx, g.ID, startDay, endDay); err != nil {
		return nil, fmt.Errorf("failed to update voting window: %w", err)
	}
	g.AutoVoteStartDay = startDay
	g.AutoVoteEndDay = endDay

	s.logger.WithFields(logrus.Fields{
		"group_id":  g.ID,
		"start_day": startDay,
		"end_day":   endDay,
	}).Info("Voting window updated")
	return g, nil
}

// Overview reports the active group's window, the expected period status for
// today and the stored state of the targeted month.
func (s *AdminService) Overview(ctx context.Context, performingID int64, today calendar.Date) (string, error) {
	if performingID != s.adminTelegramID {
		return "", ErrAdminNotAuthorized
	}

	g, err := s.groups.GetActive(ctx)
	if err != nil {
		if err == idb.ErrGroupNotFound {
			return "", ErrNoActiveGroup
		}
		return "", fmt.Errorf("failed to load active group: %w", err)
	}

	want := schedule.VotingPeriod(today, g.AutoVoteStartDay, g.AutoVoteEndDay)
	targetYear, targetMonth := schedule.TargetMonth(today, g.AutoVoteStartDay, g.AutoVoteEndDay)
	yearMonth := calendar.YearMonthKey(targetYear, targetMonth)

	current := schedule.StatusNoRecord
	rec, err := s.schedules.Get(ctx, g.ID, yearMonth)
	if err != nil && err != idb.ErrScheduleNotFound {
		return "", fmt.Errorf("failed to load schedule record: %w", err)
	}
	if rec != nil {
		current = rec.Status
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Group %s\n", g.ID)
	fmt.Fprintf(&b, "Voting window: day %d to day %d\n", g.AutoVoteStartDay, g.AutoVoteEndDay)
	fmt.Fprintf(&b, "Today: %s, expected period: %s\n", today, want)
	fmt.Fprintf(&b, "Target month: %04d/%02d, stored status: %q", targetYear, int(targetMonth), current)
	if rec != nil && len(rec.FinalSelection) > 0 {
		b.WriteString("\nFinal selection:")
		for _, d := range rec.FinalSelection {
			fmt.Fprintf(&b, "\n- %s (%d yes)", d.Date, d.Count)
		}
	}
	return b.String(), nil
}

// AnnounceFinal pushes the stored final selection of the targeted month to
// the group as an event announcement.
func (s *AdminService) AnnounceFinal(ctx context.Context, performingID int64, today calendar.Date) error {
	if performingID != s.adminTelegramID {
		return ErrAdminNotAuthorized
	}

	g, err := s.groups.GetActive(ctx)
	if err != nil {
		if err == idb.ErrGroupNotFound {
			return ErrNoActiveGroup
		}
		return fmt.Errorf("failed to load active group: %w", err)
	}

	targetYear, targetMonth := schedule.TargetMonth(today, g.AutoVoteStartDay, g.AutoVoteEndDay)
	rec, err := s.schedules.Get(ctx, g.ID, calendar.YearMonthKey(targetYear, targetMonth))
	if err != nil {
		if err == idb.ErrScheduleNotFound {
			return ErrNoFinalSelection
		}
		return fmt.Errorf("failed to load schedule record: %w", err)
	}
	if rec.Status != schedule.StatusClosed || len(rec.FinalSelection) == 0 {
		return ErrNoFinalSelection
	}

	events := make([]messaging.Event, 0, len(rec.FinalSelection))
	for _, d := range rec.FinalSelection {
		events = append(events, messaging.Event{
			Date:  d.Date,
			Title: fmt.Sprintf("Group day (%d yes votes)", d.Count),
		})
	}
	payload, err := messaging.NewEventAnnouncement(events)
	if err != nil {
		return err
	}
	if err := s.notifier.Send(ctx, g.ChatID, payload); err != nil {
		return fmt.Errorf("failed to push event announcement: %w", err)
	}

	s.logger.WithField("group_id", g.ID).Info("Event announcement pushed")
	return nil
}

func windowInRange(startDay, endDay int) bool {
	return startDay >= 1 && startDay <= 31 && endDay >= 1 && endDay <= 31
}
