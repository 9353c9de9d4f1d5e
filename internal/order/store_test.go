package order

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// sqlite mirror of the Postgres schema; the store's queries use $N
// placeholders and RETURNING, which both engines accept.
const testSchema = `
	CREATE TABLE orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		shop_name TEXT NOT NULL,
		shop_address TEXT NOT NULL,
		items TEXT NOT NULL,
		delivery_time TEXT NOT NULL,
		phone TEXT NOT NULL,
		delivery_address TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'New'
	)`

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return NewSQLStore(db)
}

func testDraft(phone string) Draft {
	return Draft{
		ShopType:        "Аптека",
		ShopName:        "Будь здоров",
		ShopAddress:     "ул. Ленина, 1",
		Items:           "аспирин, бинт",
		DeliveryTime:    "14:00",
		Phone:           phone,
		DeliveryAddress: "ул. Мира, 5",
	}
}

func TestSQLStoreInsertAssignsMonotonicIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, 100, testDraft("+79991234567"))
	require.NoError(t, err)
	second, err := store.Insert(ctx, 100, testDraft("89991234567"))
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestSQLStoreInsertStoresFieldsVerbatim(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	draft := testDraft("+79991234567")

	id, err := store.Insert(ctx, 42, draft)
	require.NoError(t, err)

	orders, err := store.ListByUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	got := orders[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, draft.ShopType, got.ShopType)
	assert.Equal(t, draft.ShopName, got.ShopName)
	assert.Equal(t, draft.ShopAddress, got.ShopAddress)
	assert.Equal(t, draft.Items, got.Items)
	assert.Equal(t, draft.DeliveryTime, got.DeliveryTime)
	assert.Equal(t, draft.Phone, got.Phone)
	assert.Equal(t, draft.DeliveryAddress, got.DeliveryAddress)
	assert.Equal(t, StatusNew, got.Status)
}

func TestSQLStoreListByUserOrderAndIsolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Insert(ctx, 7, testDraft("+79991234567"))
		require.NoError(t, err)
	}
	_, err := store.Insert(ctx, 8, testDraft("89991234567"))
	require.NoError(t, err)

	orders, err := store.ListByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := 1; i < len(orders); i++ {
		assert.Greater(t, orders[i].ID, orders[i-1].ID)
	}
	for _, o := range orders {
		assert.Equal(t, int64(7), o.UserID)
	}
}

func TestSQLStoreListByUserEmpty(t *testing.T) {
	store := newTestStore(t)

	orders, err := store.ListByUser(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
