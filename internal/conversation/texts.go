package conversation

import (
	"fmt"
	"strings"

	"github.com/ShumBox/shumdev/internal/order"
)

const (
	textWelcome = "Добро пожаловать в сервис доставки 'Доставка в Шумерле'!\n" +
		"Выберите тип магазина:"
	textAskShopName        = "Введите название магазина:"
	textAskShopAddress     = "Введите адрес магазина:"
	textAskItems           = "Опишите товары или услуги, которые нужно доставить:"
	textAskDeliveryTime    = "Укажите желаемое время доставки (например, 14:00):"
	textAskPhone           = "Введите ваш номер телефона (например, +79991234567):"
	textPhoneRetry         = "Неверный формат номера телефона. Пожалуйста, введите заново (например, +79991234567):"
	textAskDeliveryAddress = "Введите адрес доставки:"
	textOrderCreated       = "Заказ успешно создан! Для создания нового заказа нажмите /start."
	textCancelled          = "Создание заказа отменено. Для начала заново нажмите /start."
	textStorageFailure     = "Не удалось сохранить заказ. Попробуйте оформить его заново через /start."
	textNoHistory          = "У вас нет истории заказов."
	textHistoryHeader      = "Ваша история заказов:\n"
)

// shopTypeChoices is the reply keyboard offered on the first step. Free text
// is accepted as well.
var shopTypeChoices = [][]string{
	{"Продуктовый магазин", "Строительный магазин"},
	{"Аптека", "Другое"},
}

func formatSummary(d order.Draft) string {
	return fmt.Sprintf(
		"Ваш заказ:\n"+
			"Тип магазина: %s\n"+
			"Название магазина: %s\n"+
			"Адрес магазина: %s\n"+
			"Товары/услуги: %s\n"+
			"Время доставки: %s\n"+
			"Номер телефона: %s\n"+
			"Адрес доставки: %s",
		d.ShopType, d.ShopName, d.ShopAddress, d.Items, d.DeliveryTime, d.Phone, d.DeliveryAddress,
	)
}

func formatHistory(orders []order.Order) string {
	if len(orders) == 0 {
		return textNoHistory
	}
	var b strings.Builder
	b.WriteString(textHistoryHeader)
	for _, o := range orders {
		fmt.Fprintf(&b, "Заказ #%d:\nТип магазина: %s\nСтатус: %s\n\n", o.ID, o.ShopType, o.Status)
	}
	return b.String()
}
