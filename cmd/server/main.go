package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicine_reminder/internal/app"
	"medicine_reminder/internal/domain/intake"
	"medicine_reminder/internal/domain/medicine"
	"medicine_reminder/internal/domain/notify"
	"medicine_reminder/internal/domain/schedule"
	"medicine_reminder/internal/domain/user"
	"medicine_reminder/internal/infra/config"
	idb "medicine_reminder/internal/infra/database"
	"medicine_reminder/internal/infra/httpapi"
	"medicine_reminder/internal/infra/logger"
	"medicine_reminder/internal/infra/mail"
	"medicine_reminder/internal/infra/memory"
	"medicine_reminder/internal/infra/scheduler"
	"medicine_reminder/internal/infra/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; stderr is all we have.
		os.Stderr.WriteString("FATAL: could not load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg)
	log.WithField("environment", cfg.Environment).Info("Medicine Reminder service starting")

	loc := cfg.Location()

	// Repositories: Postgres in normal operation, in-memory for local dev.
	var (
		medRepo    medicine.Repository
		schedRepo  schedule.Repository
		intakeRepo intake.Repository
		userRepo   user.Repository
	)
	if cfg.Store == "postgres" {
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			log.WithError(err).Fatal("Could not connect to database")
		}
		defer db.Close()
		log.Info("Database connection established")

		medRepo = idb.NewPostgresMedicineRepository(db)
		schedRepo = idb.NewPostgresScheduleRepository(db)
		intakeRepo = idb.NewPostgresIntakeRepository(db)
		userRepo = idb.NewPostgresUserRepository(db)
	} else {
		log.Warn("Using in-memory store: all data is lost on restart")
		medRepo = memory.NewMedicineRepo()
		schedRepo = memory.NewScheduleRepo()
		intakeRepo = memory.NewIntakeRepo()
		userRepo = memory.NewUserRepo()
	}

	// Notification channels: email always, Telegram when a token is configured.
	mailer := mail.NewSendGridNotifier(cfg.SendGridAPIKey, cfg.MailFromEmail, cfg.MailFromName)
	var tgNotifier notify.Notifier
	if cfg.TelegramToken != "" {
		tg, err := telegram.NewTelebotNotifier(cfg.TelegramToken)
		if err != nil {
			log.WithError(err).Fatal("Could not create Telegram notifier")
		}
		tgNotifier = tg
		log.Info("Telegram notification channel enabled")
	}
	dispatcher := app.NewDispatcher(mailer, tgNotifier, cfg.NotifyTimeout, log)

	clock := app.SystemClock{}
	medicines := app.NewMedicineService(medRepo, schedRepo, intakeRepo, log)
	schedules := app.NewScheduleService(schedRepo, medRepo, log)
	intakes := app.NewIntakeService(intakeRepo, medRepo, userRepo, dispatcher, clock, loc, log)
	adherence := app.NewAdherenceService(schedRepo, medRepo, intakeRepo, clock, loc, log)
	reminders := app.NewReminderService(schedRepo, medRepo, userRepo, dispatcher, clock, loc, log)

	remindScheduler := scheduler.NewReminderScheduler(reminders, loc, cfg.CronSpecReminder, 50*time.Second, log)
	if err := remindScheduler.Start(); err != nil {
		log.WithError(err).Fatal("Could not start reminder scheduler")
	}

	router := httpapi.NewRouter(&httpapi.API{
		Medicines: medicines,
		Schedules: schedules,
		Intake:    intakes,
		Adherence: adherence,
		Logger:    log,
	})
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	// Graceful shutdown: stop taking requests, then let an in-flight reminder
	// cycle finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}
	remindScheduler.Stop()
	log.Info("Shut down gracefully")
}
