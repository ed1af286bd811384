package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pick_day_bot/internal/app"
	"pick_day_bot/internal/domain/calendar"
	"pick_day_bot/internal/domain/group"
	"pick_day_bot/internal/domain/member"
	"pick_day_bot/internal/domain/schedule"
	"pick_day_bot/internal/domain/vote"
	"pick_day_bot/internal/infra/clock"
	idb "pick_day_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	callbackYesPrefix = "v_yes_"
	callbackNoPrefix  = "v_no_"
)

// RegisterVoteHandlers wires the voter-facing surface: the /dates command
// listing the target month's candidate dates with yes/no buttons, and the
// callback handler toggling votes in the ledger.
func RegisterVoteHandlers(
	ctx context.Context,
	b *telebot.Bot,
	voteService *app.VoteService,
	groups group.Repository,
	holidays calendar.HolidaySource,
	location *time.Location,
	baseLogger *logrus.Entry,
) {
	b.Handle("/dates", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/dates",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		g, err := groups.GetActive(ctx)
		if err != nil {
			if err == idb.ErrGroupNotFound {
				return c.Send("No group is set up yet. An admin has to run /init_group first.")
			}
			handlerLogger.WithError(err).Error("Failed to load active group")
			return c.Send("Something went wrong, please try again.")
		}

		today := clock.TodayIn(time.Now(), location)
		targetYear, targetMonth := schedule.TargetMonth(today, g.AutoVoteStartDay, g.AutoVoteEndDay)

		holidayList, err := holidays.ListHolidays(ctx)
		if err != nil {
			// Degrade to weekends only; the holiday feed is best-effort.
			handlerLogger.WithError(err).Warn("Holiday feed unavailable")
		}

		targets := calendar.MonthTargets(targetYear, targetMonth, holidayList)
		if len(targets) == 0 {
			return c.Send(fmt.Sprintf("No candidate dates found for %04d/%02d.", targetYear, int(targetMonth)))
		}

		markup := &telebot.ReplyMarkup{}
		var rows []telebot.Row
		for _, t := range targets {
			label := fmt.Sprintf("%s %s", t.DateStr, weekdayTag(t.Weekday))
			if t.IsHoliday && t.HolidayName != "" {
				label += " · " + t.HolidayName
			}
			btnYes := markup.Data("✅ "+label, callbackYesPrefix+t.DateStr)
			btnNo := markup.Data("❌", callbackNoPrefix+t.DateStr)
			rows = append(rows, markup.Row(btnYes, btnNo))
		}
		markup.Inline(rows...)

		text := fmt.Sprintf("🗳 Candidate dates for %04d/%02d — tap to vote:", targetYear, int(targetMonth))
		return c.Send(text, markup)
	})

	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := strings.TrimPrefix(c.Callback().Data, "\f")

		var choice vote.Choice
		var dateStr string
		switch {
		case strings.HasPrefix(data, callbackYesPrefix):
			choice = vote.ChoiceYes
			dateStr = strings.TrimPrefix(data, callbackYesPrefix)
		case strings.HasPrefix(data, callbackNoPrefix):
			choice = vote.ChoiceNo
			dateStr = strings.TrimPrefix(data, callbackNoPrefix)
		default:
			c.Bot().OnError(fmt.Errorf("unhandled callback data: %s", data), c)
			return c.Respond(&telebot.CallbackResponse{Text: "Unknown action."})
		}

		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "vote_callback",
			"sender_id": c.Sender().ID,
			"date":      dateStr,
			"choice":    choice,
		})

		g, err := groups.GetActive(ctx)
		if err != nil {
			handlerLogger.WithError(err).Warn("Vote callback without an active group")
			return c.Respond(&telebot.CallbackResponse{Text: "No active group."})
		}

		sender := c.Sender()
		userID := strconv.FormatInt(sender.ID, 10)

		// Capture the voter's display identity for closure announcements.
		// Best-effort: the vote itself must not depend on it.
		profile := &member.Profile{
			UserID:      userID,
			DisplayName: strings.TrimSpace(sender.FirstName + " " + sender.LastName),
		}
		if err := voteService.RecordVoterProfile(ctx, profile); err != nil {
			handlerLogger.WithError(err).Warn("Failed to record voter profile")
		}

		if err := voteService.ToggleVote(ctx, g.ID, dateStr, userID, choice); err != nil {
			switch {
			case errors.Is(err, app.ErrUnauthorized):
				return c.Respond(&telebot.CallbackResponse{Text: "Could not identify you."})
			case errors.Is(err, app.ErrInvalidDate):
				handlerLogger.WithError(err).Warn("Vote callback with malformed date")
				return c.Respond(&telebot.CallbackResponse{Text: "Invalid date."})
			default:
				handlerLogger.WithError(err).Error("Failed to record vote")
				return c.Respond(&telebot.CallbackResponse{Text: "Something went wrong, please retry."})
			}
		}

		ack := fmt.Sprintf("Vote recorded for %s", dateStr)
		if yes, no, err := voteService.DateCounts(ctx, g.ID, dateStr); err == nil {
			ack = fmt.Sprintf("%s (✅ %d / ❌ %d)", ack, yes, no)
		}
		return c.Respond(&telebot.CallbackResponse{Text: ack})
	})
}

func weekdayTag(w time.Weekday) string {
	return "(" + w.String()[:3] + ")"
}
