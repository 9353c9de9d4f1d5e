package telegram

import (
	"context"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/ShumBox/shumdev/internal/conversation"
	"github.com/ShumBox/shumdev/internal/logger"
)

const (
	// textNoDialog is the transport's own fallback for plain text arriving
	// while no dialog is in progress.
	textNoDialog = "Чтобы оформить заказ, нажмите /start."
	// textHistoryUnavailable hides storage failures behind a generic message.
	textHistoryUnavailable = "Не удалось получить историю заказов. Попробуйте позже."
)

type handlers struct {
	engine *conversation.Engine
}

func fromContext(c tele.Context) conversation.User {
	u := c.Sender()
	if u == nil {
		return conversation.User{}
	}
	return conversation.User{ID: u.ID, FirstName: u.FirstName}
}

// requestContext returns the correlation context stored by the Logger
// middleware, or a fresh one when the handler runs unwrapped.
func requestContext(c tele.Context) context.Context {
	if ctx, ok := c.Get(ctxKey).(context.Context); ok && ctx != nil {
		return ctx
	}
	return context.Background()
}

func (h *handlers) onStart(c tele.Context) error {
	reply := h.engine.Start(requestContext(c), fromContext(c))
	return sendReply(c, reply)
}

func (h *handlers) onCancel(c tele.Context) error {
	reply := h.engine.Cancel(requestContext(c), fromContext(c))
	return sendReply(c, reply)
}

func (h *handlers) onHistory(c tele.Context) error {
	from := fromContext(c)
	text, err := h.engine.History(requestContext(c), from.ID)
	if err != nil {
		logger.TG.Error("history lookup failed",
			slog.String("event", "history"),
			slog.Int64("user_id", from.ID),
			slog.String("err", err.Error()),
		)
		return c.Send(textHistoryUnavailable)
	}
	return c.Send(text)
}

func (h *handlers) onText(c tele.Context) error {
	replies := h.engine.Message(requestContext(c), fromContext(c), c.Text())
	if replies == nil {
		return c.Send(textNoDialog)
	}
	for _, reply := range replies {
		if err := sendReply(c, reply); err != nil {
			return err
		}
	}
	return nil
}

// sendReply renders an abstract engine reply into a Telegram message.
func sendReply(c tele.Context, r conversation.Reply) error {
	opts := &tele.SendOptions{}
	switch {
	case len(r.Choices) > 0:
		opts.ReplyMarkup = ReplyChoices(r.Choices)
	case r.RemoveKeyboard:
		opts.ReplyMarkup = RemoveKeyboard()
	}
	return c.Send(r.Text, opts)
}
