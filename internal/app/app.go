// Package app composes the bot: configuration, logging, database, the
// conversation engine, and the Telegram runtime.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/ShumBox/shumdev/internal/buildinfo"
	"github.com/ShumBox/shumdev/internal/config"
	"github.com/ShumBox/shumdev/internal/conversation"
	"github.com/ShumBox/shumdev/internal/database"
	"github.com/ShumBox/shumdev/internal/logger"
	"github.com/ShumBox/shumdev/internal/notify"
	"github.com/ShumBox/shumdev/internal/order"
	"github.com/ShumBox/shumdev/internal/telegram"
)

// Run loads configuration, initializes infrastructure, and runs the bot until
// ctx is done.
func Run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("app: failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.L.Info("startup",
		slog.String("component", "app"),
		slog.String("event", "startup"),
		slog.String("go_version", runtime.Version()),
		slog.String("build_version", buildinfo.Version),
		slog.String("build_commit", buildinfo.Commit),
	)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("app: database initialization failed: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return fmt.Errorf("app: migrations failed: %w", err)
	}

	sessions := conversation.NewManager(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	go sessions.Run(ctx, time.Duration(cfg.Session.SweepIntervalSeconds)*time.Second)

	bot, err := telegram.New(cfg)
	if err != nil {
		return err
	}

	store := order.NewSQLStore(db)
	notifier := notify.NewOperator(bot, cfg.Telegram.OperatorID)
	engine := conversation.NewEngine(sessions, store, notifier)
	bot.Register(engine)

	logger.L.Info("app ready",
		slog.String("component", "app"),
		slog.String("event", "ready"),
		slog.Int64("operator_id", cfg.Telegram.OperatorID),
	)
	defer logger.L.Info("shutting down...",
		slog.String("component", "app"),
		slog.String("event", "shutdown"),
	)

	return bot.Run(ctx)
}
