// Package telegram adapts the conversation engine to the Telegram Bot API
// via telebot: it receives updates, routes commands and text into the engine,
// and renders abstract replies into messages and keyboards.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/ShumBox/shumdev/internal/config"
	"github.com/ShumBox/shumdev/internal/conversation"
	"github.com/ShumBox/shumdev/internal/logger"
)

// Bot wraps the telebot runtime for the order dialog.
type Bot struct {
	bot *tele.Bot
	cfg *config.Config
}

// New builds the underlying telebot instance with the configured poller and a
// tuned HTTP client.
func New(cfg *config.Config) (*Bot, error) {
	poller := BuildPoller(PollerOptions{
		RunMode:                cfg.Telegram.RunMode,
		LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
		Webhook: WebhookOptions{
			Listen: cfg.Webhook.Listen,
			Port:   cfg.Webhook.Port,
			URL:    cfg.Webhook.URL,
		},
	})

	start := time.Now()
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: poller,
		Client: BuildHTTPClient(),
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: bot initialization failed: %w", err)
	}

	switch p := poller.(type) {
	case *tele.Webhook:
		logger.TG.Info("webhook mode",
			slog.String("event", "mode"),
			slog.String("mode", "webhook"),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", logger.Took(start)),
		)
	default:
		timeoutSec := cfg.Telegram.LongPollTimeoutSeconds
		if timeoutSec <= 0 {
			timeoutSec = 10
		}
		logger.TG.Info("polling mode",
			slog.String("event", "mode"),
			slog.String("mode", "polling"),
			slog.Int("timeout_seconds", timeoutSec),
			slog.Duration("duration", logger.Took(start)),
		)
	}

	return &Bot{bot: bot, cfg: cfg}, nil
}

// Send delivers a plain text message to a chat. It satisfies the notifier's
// Sender interface.
func (b *Bot) Send(chatID int64, text string) error {
	_, err := b.bot.Send(tele.ChatID(chatID), text)
	return err
}

// Register wires the engine into command and text handlers and publishes the
// command menu.
func (b *Bot) Register(engine *conversation.Engine) {
	h := &handlers{engine: engine}
	wrap := func(fn tele.HandlerFunc) tele.HandlerFunc {
		return Recover(Logger(fn))
	}

	b.bot.Handle("/start", wrap(h.onStart))
	b.bot.Handle("/cancel", wrap(h.onCancel))
	b.bot.Handle("/history", wrap(h.onHistory))
	b.bot.Handle(tele.OnText, wrap(h.onText))

	commands := []tele.Command{
		{Text: "/start", Description: "Оформить новый заказ"},
		{Text: "/cancel", Description: "Отменить оформление заказа"},
		{Text: "/history", Description: "История заказов"},
	}
	if err := b.bot.SetCommands(commands); err != nil {
		logger.TG.Warn("failed to set command menu",
			slog.String("event", "register.commands"),
			slog.String("err", err.Error()),
		)
	}
}

// Run starts polling until the context is done, then stops the bot.
func (b *Bot) Run(ctx context.Context) error {
	if strings.EqualFold(b.cfg.Telegram.RunMode, config.RunModeLongpoll) {
		if err := deleteWebhook(b.cfg.Telegram.Token, false); err != nil {
			logger.TG.Warn("failed to delete webhook",
				slog.String("event", "delete_webhook"),
				slog.String("mode", "polling"),
				slog.String("err", err.Error()),
			)
		}
	}

	done := make(chan struct{})
	go func() {
		b.bot.Start()
		close(done)
	}()

	select {
	case <-ctx.Done():
		b.bot.Stop()
		<-done
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	case <-done:
		return nil
	}
}

// deleteWebhook clears a stale webhook registration before long polling.
func deleteWebhook(token string, dropPending bool) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty token")
	}
	url := fmt.Sprintf("https://api.telegram.org/bot%s/deleteWebhook", token)
	body := "drop_pending_updates=false"
	if dropPending {
		body = "drop_pending_updates=true"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deleteWebhook status: %s", resp.Status)
	}
	return nil
}
