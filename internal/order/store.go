package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ShumBox/shumdev/internal/logger"
)

// Store persists completed orders. Inserts are append-only; the bot never
// updates or deletes rows.
type Store interface {
	Insert(ctx context.Context, userID int64, d Draft) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
}

// SQLStore implements Store on top of the orders table.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open database handle.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

const insertOrderQuery = `
	INSERT INTO orders (user_id, type, shop_name, shop_address, items, delivery_time, phone, delivery_address)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id`

// Insert appends a new order with the default status and returns the
// store-assigned id.
func (s *SQLStore) Insert(ctx context.Context, userID int64, d Draft) (int64, error) {
	start := time.Now()
	log := logger.With(ctx, logger.DB)

	var id int64
	err := s.db.GetContext(ctx, &id, insertOrderQuery,
		userID, d.ShopType, d.ShopName, d.ShopAddress, d.Items, d.DeliveryTime, d.Phone, d.DeliveryAddress,
	)
	if err != nil {
		log.Error("order insert failed",
			slog.String("event", "orders.insert"),
			slog.Int64("user_id", userID),
			slog.Duration("duration", logger.Took(start)),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("insert order: %w", err)
	}

	log.Info("order inserted",
		slog.String("event", "orders.insert"),
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.Int64("order_id", id),
		slog.Duration("duration", logger.Took(start)),
	)
	return id, nil
}

const listByUserQuery = `
	SELECT id, user_id, type, shop_name, shop_address, items, delivery_time, phone, delivery_address, status
	FROM orders
	WHERE user_id = $1
	ORDER BY id`

// ListByUser returns all orders of a user in insertion order.
func (s *SQLStore) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	var orders []Order
	if err := s.db.SelectContext(ctx, &orders, listByUserQuery, userID); err != nil {
		logger.With(ctx, logger.DB).Error("order list failed",
			slog.String("event", "orders.list"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
