package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShumBox/shumdev/internal/conversation"
	"github.com/ShumBox/shumdev/internal/order"
)

type fakeSender struct {
	chatID int64
	text   string
	err    error
}

func (s *fakeSender) Send(chatID int64, text string) error {
	s.chatID = chatID
	s.text = text
	return s.err
}

func sampleOrder() order.Order {
	return order.Order{
		ID:              1,
		UserID:          42,
		ShopType:        "Аптека",
		ShopName:        "Будь здоров",
		ShopAddress:     "ул. Ленина, 1",
		Items:           "аспирин",
		DeliveryTime:    "14:00",
		Phone:           "+79991234567",
		DeliveryAddress: "ул. Мира, 5",
		Status:          order.StatusNew,
	}
}

func TestOperatorOrderCreatedFormat(t *testing.T) {
	sender := &fakeSender{}
	n := NewOperator(sender, 5977892192)

	err := n.OrderCreated(context.Background(), sampleOrder(), conversation.User{ID: 42, FirstName: "Иван"})
	require.NoError(t, err)

	assert.Equal(t, int64(5977892192), sender.chatID)
	assert.Equal(t,
		"Новый заказ!\n"+
			"Пользователь: Иван (42)\n"+
			"Тип магазина: Аптека\n"+
			"Название магазина: Будь здоров\n"+
			"Адрес магазина: ул. Ленина, 1\n"+
			"Товары/услуги: аспирин\n"+
			"Время доставки: 14:00\n"+
			"Номер телефона: +79991234567\n"+
			"Адрес доставки: ул. Мира, 5",
		sender.text)
}

func TestOperatorOrderCreatedSendFailure(t *testing.T) {
	cause := errors.New("telegram: 403 forbidden")
	sender := &fakeSender{err: cause}
	n := NewOperator(sender, 1)

	err := n.OrderCreated(context.Background(), sampleOrder(), conversation.User{ID: 42})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}
