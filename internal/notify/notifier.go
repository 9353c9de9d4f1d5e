// Package notify formats and delivers operator alerts about completed orders.
package notify

import (
	"context"
	"fmt"

	"github.com/ShumBox/shumdev/internal/conversation"
	"github.com/ShumBox/shumdev/internal/order"
)

// Sender delivers a plain text message to a chat. The Telegram adapter
// satisfies it.
type Sender interface {
	Send(chatID int64, text string) error
}

// Operator notifies the single statically configured operator chat.
type Operator struct {
	sender Sender
	chatID int64
}

// NewOperator builds a notifier bound to the operator chat id.
func NewOperator(sender Sender, chatID int64) *Operator {
	return &Operator{sender: sender, chatID: chatID}
}

// OrderCreated sends the fixed-layout order summary to the operator.
func (n *Operator) OrderCreated(_ context.Context, o order.Order, from conversation.User) error {
	if err := n.sender.Send(n.chatID, formatAlert(o, from)); err != nil {
		return fmt.Errorf("notify operator: %w", err)
	}
	return nil
}

func formatAlert(o order.Order, from conversation.User) string {
	return fmt.Sprintf(
		"Новый заказ!\n"+
			"Пользователь: %s (%d)\n"+
			"Тип магазина: %s\n"+
			"Название магазина: %s\n"+
			"Адрес магазина: %s\n"+
			"Товары/услуги: %s\n"+
			"Время доставки: %s\n"+
			"Номер телефона: %s\n"+
			"Адрес доставки: %s",
		from.FirstName, from.ID,
		o.ShopType, o.ShopName, o.ShopAddress, o.Items, o.DeliveryTime, o.Phone, o.DeliveryAddress,
	)
}
