package conversation

import (
	"context"
	"log/slog"

	"github.com/ShumBox/shumdev/internal/logger"
	"github.com/ShumBox/shumdev/internal/order"
)

// User identifies the person the bot is talking to.
type User struct {
	ID        int64
	FirstName string
}

// Notifier delivers a summary of a completed order to the operator.
// Delivery is best-effort: the engine logs failures and moves on.
type Notifier interface {
	OrderCreated(ctx context.Context, o order.Order, from User) error
}

// Engine dispatches incoming events into the state machine and performs the
// finalize sequence: persist, notify, confirm, destroy the session.
type Engine struct {
	sessions *Manager
	store    order.Store
	notifier Notifier
	log      *slog.Logger
}

// NewEngine wires the engine's collaborators.
func NewEngine(sessions *Manager, store order.Store, notifier Notifier) *Engine {
	return &Engine{
		sessions: sessions,
		store:    store,
		notifier: notifier,
		log:      logger.BOT,
	}
}

// Start begins a fresh dialog, overwriting any session already in progress.
func (e *Engine) Start(ctx context.Context, from User) Reply {
	e.sessions.Begin(from.ID)
	logger.With(ctx, e.log).InfoContext(ctx, "dialog started",
		slog.String("event", "dialog.start"),
		slog.Int64("user_id", from.ID),
	)
	return StartReply()
}

// Active reports whether the user has a dialog in progress. Routing does not
// depend on it; Message signals "no dialog" with a nil result.
func (e *Engine) Active(userID int64) bool {
	_, ok := e.sessions.Get(userID)
	return ok
}

// Message feeds one text input into the user's dialog. A nil result means no
// dialog is in progress and the transport should fall back.
func (e *Engine) Message(ctx context.Context, from User, text string) []Reply {
	sess, ok := e.sessions.Get(from.ID)
	if !ok {
		return nil
	}

	tr := Advance(sess.Step, sess.Draft, text)
	if tr.Finalize {
		return e.finalize(ctx, from, tr.Draft)
	}

	e.sessions.Set(from.ID, tr.Next, tr.Draft)

	status := "ok"
	if tr.Next == sess.Step {
		status = "retry"
	}
	logger.With(ctx, e.log).DebugContext(ctx, "dialog step",
		slog.String("event", "dialog.step"),
		slog.String("status", status),
		slog.Int64("user_id", from.ID),
		slog.String("from", string(sess.Step)),
		slog.String("to", string(tr.Next)),
	)
	return tr.Replies
}

// Cancel aborts the dialog without persisting anything.
func (e *Engine) Cancel(ctx context.Context, from User) Reply {
	e.sessions.End(from.ID)
	logger.With(ctx, e.log).InfoContext(ctx, "dialog cancelled",
		slog.String("event", "dialog.cancel"),
		slog.Int64("user_id", from.ID),
	)
	return Reply{Text: textCancelled, RemoveKeyboard: true}
}

// History renders the user's past orders.
func (e *Engine) History(ctx context.Context, userID int64) (string, error) {
	orders, err := e.store.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return formatHistory(orders), nil
}

// finalize runs once the last field is captured. The store insert must
// succeed before the user sees a confirmation; the operator notification must
// not block it.
func (e *Engine) finalize(ctx context.Context, from User, d order.Draft) []Reply {
	log := logger.With(ctx, e.log)

	id, err := e.store.Insert(ctx, from.ID, d)
	if err != nil {
		// No resume path: the draft is dropped and the user starts over.
		e.sessions.End(from.ID)
		log.ErrorContext(ctx, "order submit failed",
			slog.String("event", "order.submit"),
			slog.Int64("user_id", from.ID),
			slog.String("err", err.Error()),
		)
		return []Reply{{Text: textStorageFailure, RemoveKeyboard: true}}
	}

	o := order.Order{
		ID:              id,
		UserID:          from.ID,
		ShopType:        d.ShopType,
		ShopName:        d.ShopName,
		ShopAddress:     d.ShopAddress,
		Items:           d.Items,
		DeliveryTime:    d.DeliveryTime,
		Phone:           d.Phone,
		DeliveryAddress: d.DeliveryAddress,
		Status:          order.StatusNew,
	}
	if nerr := e.notifier.OrderCreated(ctx, o, from); nerr != nil {
		log.WarnContext(ctx, "operator notification failed",
			slog.String("event", "order.notify"),
			slog.Int64("user_id", from.ID),
			slog.Int64("order_id", id),
			slog.String("err", nerr.Error()),
		)
	}

	e.sessions.End(from.ID)
	log.InfoContext(ctx, "order created",
		slog.String("event", "order.submit"),
		slog.String("status", "ok"),
		slog.Int64("user_id", from.ID),
		slog.Int64("order_id", id),
	)
	return []Reply{
		{Text: formatSummary(d)},
		{Text: textOrderCreated},
	}
}
