package app

import (
	"context"
	"fmt"
	"strings"

	"pick_day_bot/internal/domain/calendar"
	"pick_day_bot/internal/domain/member"
	"pick_day_bot/internal/domain/vote"

	"github.com/sirupsen/logrus"
)

// VoteService handles vote toggling against the per-date ledger.
type VoteService struct {
	ledger  vote.Ledger
	members member.Repository
	logger  *logrus.Entry
}

func NewVoteService(ledger vote.Ledger, members member.Repository, logger *logrus.Entry) *VoteService {
	return &VoteService{ledger: ledger, members: members, logger: logger}
}

// ToggleVote records userID's choice for one candidate date. The ledger
// mutation is a per-user upsert, so re-toggling moves the user between the
// yes and no sets and concurrent voters never overwrite each other.
func (s *VoteService) ToggleVote(ctx context.Context, groupID, dateStr, userID string, choice vote.Choice) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUnauthorized
	}
	if groupID == "" {
		return fmt.Errorf("%w: missing group ID", ErrInvalidDate)
	}
	if choice != vote.ChoiceYes && choice != vote.ChoiceNo {
		return ErrInvalidChoice
	}

	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	if err := s.ledger.SetChoice(ctx, groupID, date, userID, choice); err != nil {
		return fmt.Errorf("failed to record vote for %s on %s: %w", userID, date, err)
	}

	s.logger.WithFields(logrus.Fields{
		"group_id": groupID,
		"date":     date.String(),
		"user_id":  userID,
		"choice":   choice,
	}).Info("Vote recorded")
	return nil
}

// RecordVoterProfile captures the voter's display identity so that closure
// announcements can resolve it later. Failures here must not block the vote;
// callers log and continue.
func (s *VoteService) RecordVoterProfile(ctx context.Context, p *member.Profile) error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrUnauthorized
	}
	return s.members.Upsert(ctx, p)
}

// DateCounts reports the current yes/no counts for one date, recomputed from
// the voter sets. Stored counters are advisory only.
func (s *VoteService) DateCounts(ctx context.Context, groupID, dateStr string) (yes, no int, err error) {
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	rec, err := s.ledger.Get(ctx, groupID, date)
	if err != nil {
		return 0, 0, err
	}
	return len(rec.YesVoters), len(rec.NoVoters), nil
}
