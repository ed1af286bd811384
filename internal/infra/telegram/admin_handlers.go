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
	"pick_day_bot/internal/infra/clock"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// Reconciler is the manual-trigger view of the reconcile service.
type Reconciler interface {
	Reconcile(ctx context.Context, today calendar.Date) ([]string, error)
}

// RegisterAdminHandlers registers handlers for admin commands.
// It requires the bot instance, the services, and the configured admin
// Telegram ID; the services re-check authorization themselves.
func RegisterAdminHandlers(
	ctx context.Context,
	b *telebot.Bot,
	adminService *app.AdminService,
	reconciler Reconciler,
	adminTelegramID int64,
	location *time.Location,
	baseLogger *logrus.Entry,
) {
	b.Handle("/init_group", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/init_group",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not allowed to run this command.")
		}

		args := c.Args()
		// Expected format: /init_group [startDay endDay]
		startDay, endDay := 0, 0
		if len(args) == 2 {
			var err error
			startDay, err = strconv.Atoi(args[0])
			if err == nil {
				endDay, err = strconv.Atoi(args[1])
			}
			if err != nil {
				return c.Send("Window days must be numbers. Usage: /init_group [startDay endDay]")
			}
		} else if len(args) != 0 {
			return c.Send("Usage: /init_group [startDay endDay]")
		}

		g, err := adminService.InitGroup(ctx, c.Sender().ID, c.Chat().ID, startDay, endDay)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch {
			case errors.Is(err, app.ErrAdminNotAuthorized):
				logWithError.Warn("Admin not authorized (service level)")
				return c.Send("You are not allowed to run this command.")
			case errors.Is(err, app.ErrInvalidWindow):
				return c.Send("Window days must be between 1 and 31.")
			default:
				logWithError.Error("Failed to register group")
				return c.Send(fmt.Sprintf("Failed to register this chat: %s", err.Error()))
			}
		}

		handlerLogger.WithField("group_id", g.ID).Info("Group registered")
		return c.Send(fmt.Sprintf("This chat is now the active group (window: day %d to day %d).",
			g.AutoVoteStartDay, g.AutoVoteEndDay))
	})

	b.Handle("/set_window", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/set_window",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not allowed to run this command.")
		}

		args := c.Args()
		// Expected format: /set_window <startDay> <endDay>
		if len(args) != 2 {
			return c.Send("Usage: /set_window <startDay> <endDay>")
		}
		startDay, err := strconv.Atoi(args[0])
		if err != nil {
			return c.Send("Start day must be a number.")
		}
		endDay, err := strconv.Atoi(args[1])
		if err != nil {
			return c.Send("End day must be a number.")
		}

		g, err := adminService.SetWindow(ctx, c.Sender().ID, startDay, endDay)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch {
			case errors.Is(err, app.ErrAdminNotAuthorized):
				logWithError.Warn("Admin not authorized (service level)")
				return c.Send("You are not allowed to run this command.")
			case errors.Is(err, app.ErrInvalidWindow):
				return c.Send("Window days must be between 1 and 31.")
			case errors.Is(err, app.ErrNoActiveGroup):
				return c.Send("No group is set up yet. Run /init_group first.")
			default:
				logWithError.Error("Failed to update voting window")
				return c.Send(fmt.Sprintf("Failed to update the window: %s", err.Error()))
			}
		}

		handlerLogger.WithFields(logrus.Fields{
			"start_day": g.AutoVoteStartDay,
			"end_day":   g.AutoVoteEndDay,
		}).Info("Voting window updated")

		if g.AutoVoteStartDay > g.AutoVoteEndDay {
			return c.Send(fmt.Sprintf("Voting window set: day %d through day %d of the next month (wraps).",
				g.AutoVoteStartDay, g.AutoVoteEndDay))
		}
		return c.Send(fmt.Sprintf("Voting window set: day %d to day %d.", g.AutoVoteStartDay, g.AutoVoteEndDay))
	})

	b.Handle("/status", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/status",
			"sender_id": c.Sender().ID,
		})
		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not allowed to run this command.")
		}

		today := clock.TodayIn(time.Now(), location)
		overview, err := adminService.Overview(ctx, c.Sender().ID, today)
		if err != nil {
			if errors.Is(err, app.ErrNoActiveGroup) {
				return c.Send("No group is set up yet. Run /init_group first.")
			}
			handlerLogger.WithError(err).Error("Failed to build status overview")
			return c.Send(fmt.Sprintf("Failed to read status: %s", err.Error()))
		}
		return c.Send(overview)
	})

	b.Handle("/reconcile", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/reconcile",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not allowed to run this command.")
		}

		today := clock.TodayIn(time.Now(), location)
		summary, err := reconciler.Reconcile(ctx, today)
		if err != nil {
			handlerLogger.WithError(err).Error("Manual reconciliation failed")
			return c.Send(fmt.Sprintf("Reconciliation failed: %s", err.Error()))
		}
		return c.Send(strings.Join(summary, "\n"))
	})

	b.Handle("/announce", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/announce",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("You are not allowed to run this command.")
		}

		today := clock.TodayIn(time.Now(), location)
		err := adminService.AnnounceFinal(ctx, c.Sender().ID, today)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch {
			case errors.Is(err, app.ErrNoFinalSelection):
				return c.Send("Nothing to announce: no closed vote with a final selection yet.")
			case errors.Is(err, app.ErrNoActiveGroup):
				return c.Send("No group is set up yet. Run /init_group first.")
			default:
				logWithError.Error("Failed to push announcement")
				return c.Send(fmt.Sprintf("Failed to announce: %s", err.Error()))
			}
		}
		return c.Send("Announcement sent.")
	})
}
