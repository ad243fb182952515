package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

func seedUser(t *testing.T, db *MYSQLStore, name, email string) int {
	id, err := ExecNamedLastId(context.Background(), db.DB(),
		`INSERT INTO users (name, email, password_hash, cart_data) VALUES (:name, :email, :hash, :cart)`,
		map[string]any{"name": name, "email": email, "hash": "x", "cart": "{}"},
	)
	require.NoError(t, err)
	return id
}

func TestOrderLifecycle(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userId := seedUser(t, db, "alice", "alice@example.com")

	order, err := db.Orders().CreateOrder(ctx, &entity.OrderNew{
		UserID: userId,
		Items: entity.LineItems{
			{FoodID: "1", Name: "Ramen", Category: "Noodles", Qty: 2, Price: decimal.NewFromInt(10)},
		},
		Amount:  decimal.NewFromInt(20),
		Address: entity.Address{"street": "1 Main St"},
	})
	require.NoError(t, err)
	assert.False(t, order.Payment)
	assert.Equal(t, entity.OrderStatusProcessing, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Ramen", order.Items[0].Name)

	require.NoError(t, db.Orders().SetOrderPaid(ctx, order.ID))
	got, err := db.Orders().GetOrderById(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.Payment)

	// Marking paid twice is a no-op, not an error.
	require.NoError(t, db.Orders().SetOrderPaid(ctx, order.ID))

	require.NoError(t, db.Orders().UpdateOrderStatus(ctx, order.ID, entity.OrderStatusDelivered))
	got, err = db.Orders().GetOrderById(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, got.Status)

	byUser, err := db.Orders().GetOrdersByUser(ctx, userId)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	require.NoError(t, db.Orders().DeleteOrder(ctx, order.ID))
	_, err = db.Orders().GetOrderById(ctx, order.ID)
	assert.True(t, db.IsErrNotFound(err))
}

func TestOrderNotFound(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	err := db.Orders().SetOrderPaid(ctx, 12345)
	assert.True(t, db.IsErrNotFound(err))

	err = db.Orders().UpdateOrderStatus(ctx, 12345, entity.OrderStatusDelivered)
	assert.True(t, db.IsErrNotFound(err))
}

func TestStaleUnpaidOrders(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userId := seedUser(t, db, "bob", "bob@example.com")

	unpaid, err := db.Orders().CreateOrder(ctx, &entity.OrderNew{
		UserID: userId,
		Items:  entity.LineItems{{Name: "Soup", Qty: 1, Price: decimal.NewFromInt(4)}},
		Amount: decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	paid, err := db.Orders().CreateOrder(ctx, &entity.OrderNew{
		UserID:  userId,
		Items:   entity.LineItems{{Name: "Soup", Qty: 1, Price: decimal.NewFromInt(4)}},
		Amount:  decimal.NewFromInt(4),
		Payment: true,
	})
	require.NoError(t, err)

	stale, err := db.Orders().StaleUnpaidOrders(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, unpaid.ID, stale[0].ID)
	assert.NotEqual(t, paid.ID, stale[0].ID)

	stale, err = db.Orders().StaleUnpaidOrders(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, stale)
}
