package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pick_day_bot/internal/app"
	"pick_day_bot/internal/infra/clock"
	"pick_day_bot/internal/infra/config"
	idb "pick_day_bot/internal/infra/database"
	"pick_day_bot/internal/infra/holiday"
	"pick_day_bot/internal/infra/httpapi"
	"pick_day_bot/internal/infra/logger"
	"pick_day_bot/internal/infra/scheduler"
	"pick_day_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Pick Day Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Could not load application configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg)
	log := logger.Get().WithField("component", "main")
	log.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"timezone":    cfg.Timezone,
	}).Info("Configuration loaded")

	location, err := clock.Location(cfg.Timezone)
	if err != nil {
		log.WithError(err).Fatal("Could not resolve configured timezone")
	}

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	if err := idb.CreateSchema(db); err != nil {
		log.WithError(err).Fatal("Could not ensure database schema")
	}
	log.Info("Database connection established and schema ensured.")

	// Initialize Repositories
	groupRepo := idb.NewPostgresGroupRepository(db)
	scheduleRepo := idb.NewPostgresScheduleRepository(db)
	voteRepo := idb.NewPostgresVoteRepository(db)
	memberRepo := idb.NewPostgresMemberRepository(db)
	log.Info("Repositories initialized.")

	holidaySource := holiday.NewFileSource(cfg.HolidaysFile, logger.Get().WithField("component", "holiday"))

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Get().WithField("component", "telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"message": c.Text(),
					"sender":  c.Sender().ID,
					"chat":    c.Chat().ID,
				})
			}
			entry.Error("Bot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.WithError(err).Fatal("Could not create Telegram bot")
	}

	notifier := telegram.NewNotifier(telegram.NewTelebotAdapter(bot), logger.Get().WithField("component", "notifier"))

	// Initialize Services
	voteService := app.NewVoteService(voteRepo, memberRepo, logger.Get().WithField("component", "vote_service"))
	reconcileService := app.NewReconcileService(
		groupRepo, scheduleRepo, voteRepo, memberRepo, notifier,
		cfg.VoteQuorum, logger.Get().WithField("component", "reconcile_service"),
	)
	adminService := app.NewAdminService(
		groupRepo, scheduleRepo, notifier,
		cfg.AdminTelegramID, logger.Get().WithField("component", "admin_service"),
	)
	log.Info("Services initialized.")

	// Register Handlers
	ctx := context.Background()
	telegram.RegisterVoteHandlers(ctx, bot, voteService, groupRepo, holidaySource, location,
		logger.Get().WithField("component", "vote_handlers"))
	telegram.RegisterAdminHandlers(ctx, bot, adminService, reconcileService, cfg.AdminTelegramID, location,
		logger.Get().WithField("component", "admin_handlers"))
	log.Info("Bot handlers registered.")

	// In-process daily trigger
	dailyScheduler := scheduler.NewDailyScheduler(reconcileService, location, cfg.CronSpecDaily,
		logger.Get().WithField("component", "scheduler"))
	dailyScheduler.Start()

	// External trigger surface (hosting platform cron hits this)
	apiHandlers := httpapi.NewHandlers(reconcileService, location, cfg.CronSecret,
		logger.Get().WithField("component", "httpapi"))
	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: apiHandlers.Router()}
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP trigger server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	log.Info("Application setup complete. Bot and scheduler are starting...")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	dailyScheduler.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown was not clean")
	}
	bot.Stop()
	log.Info("Application shut down gracefully.")
}
