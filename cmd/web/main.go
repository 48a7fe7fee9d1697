package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ttttttwt/final-test/internal/cleanup"
	"github.com/ttttttwt/final-test/internal/config"
	"github.com/ttttttwt/final-test/internal/db"
	"github.com/ttttttwt/final-test/internal/handlers"
	"github.com/ttttttwt/final-test/internal/mail"
	"github.com/ttttttwt/final-test/internal/session"
)

func main() {
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		slog.Error("database connect failed", "error", err)
		os.Exit(1)
	}

	if err := db.Run(cfg.DatabaseURL()); err != nil {
		slog.Error("database migrate failed", "error", err)
		os.Exit(1)
	}

	if err := db.Seed(database); err != nil {
		slog.Error("database seed failed", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "host", cfg.DBHost, "name", cfg.DBName)

	// Hourly purge of expired sessions.
	sessions := session.NewStore(database, time.Duration(cfg.SessionTTLHours)*time.Hour)
	if _, err := cleanup.Run(sessions, cleanup.DefaultSchedule); err != nil {
		slog.Error("session cleanup start failed", "error", err)
		os.Exit(1)
	}

	var mailer handlers.ContactMailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.ContactTo)
	} else {
		slog.Warn("SMTP_HOST not set, contact form mail disabled")
	}

	r := newRouter(database, cfg, mailer)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
