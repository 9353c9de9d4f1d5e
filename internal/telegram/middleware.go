package telegram

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/ShumBox/shumdev/internal/logger"
)

// Recover catches panics in handlers and prevents the bot from crashing.
func Recover(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()
		return next(c)
	}
}

// ctxKey stores the request context in telebot's per-update storage so the
// handlers can hand it down to the engine.
const ctxKey = "ctx"

// Logger logs one summary line per handled update, tagged with a correlation
// id built from the update, chat, and user ids. The id travels down to the
// engine and store logs through the request context.
func Logger(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		start := time.Now()

		upd := c.Update()
		chatID, userID := int64(0), int64(0)
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		if user := c.Sender(); user != nil {
			userID = user.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		ctx := logger.WithRID(logger.WithUpdateMeta(context.Background(), userID, chatID), rid)
		c.Set(ctxKey, ctx)

		if t := c.Text(); t != "" {
			logger.TG.Debug("update received",
				slog.String("event", "update.received"),
				slog.String("rid", rid),
				slog.Int64("user_id", userID),
				slog.String("payload", logger.SanitizeLimit(t, 256)),
			)
		}

		err := next(c)

		attrs := []slog.Attr{
			slog.String("event", "handler.handled"),
			slog.String("status", logger.Status(err)),
			slog.String("rid", rid),
			slog.Int("update_id", upd.ID),
			slog.Int64("chat_id", chatID),
			slog.Int64("user_id", userID),
			slog.Duration("duration", logger.Took(start)),
		}
		if err != nil {
			attrs = append(attrs, slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
		}
		logger.TG.LogAttrs(context.Background(), slog.LevelInfo, "update handled", attrs...)
		return err
	}
}
