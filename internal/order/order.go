// Package order defines the delivery order model, its validation rules, and
// the persistent store.
package order

// StatusNew is the status the store assigns to every freshly created order.
const StatusNew = "New"

// Draft accumulates order fields while the conversation is in progress.
// Fields are filled one by one, in step order, and stored verbatim.
type Draft struct {
	ShopType        string
	ShopName        string
	ShopAddress     string
	Items           string
	DeliveryTime    string
	Phone           string
	DeliveryAddress string
}

// Order is a persisted order row. It is immutable once written; status
// changes are an administrative concern outside of the bot.
type Order struct {
	ID              int64  `db:"id"`
	UserID          int64  `db:"user_id"`
	ShopType        string `db:"type"`
	ShopName        string `db:"shop_name"`
	ShopAddress     string `db:"shop_address"`
	Items           string `db:"items"`
	DeliveryTime    string `db:"delivery_time"`
	Phone           string `db:"phone"`
	DeliveryAddress string `db:"delivery_address"`
	Status          string `db:"status"`
}
