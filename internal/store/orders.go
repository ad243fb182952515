package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

type ordersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Orders() dependency.Orders {
	return &ordersStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.Order, error) {
	status := entity.OrderStatusProcessing
	query := `
	INSERT INTO customer_order (user_id, items, amount, address, payment, status)
	VALUES (:userId, :items, :amount, :address, :payment, :status)`
	id, err := ExecNamedLastId(ctx, ms.DB(), query, map[string]any{
		"userId":  orderNew.UserID,
		"items":   orderNew.Items,
		"amount":  orderNew.Amount,
		"address": orderNew.Address,
		"payment": orderNew.Payment,
		"status":  status,
	})
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return ms.GetOrderById(ctx, id)
}

func (ms *MYSQLStore) GetOrderById(ctx context.Context, id int) (*entity.Order, error) {
	query := `
	SELECT id, user_id, items, amount, address, payment, status, placed
	FROM customer_order WHERE id = :id`
	order, err := QueryNamedOne[entity.Order](ctx, ms.DB(), query, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return &order, nil
}

func (ms *MYSQLStore) GetOrdersByUser(ctx context.Context, userId int) ([]entity.Order, error) {
	query := `
	SELECT id, user_id, items, amount, address, payment, status, placed
	FROM customer_order WHERE user_id = :userId ORDER BY placed DESC`
	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), query, map[string]any{"userId": userId})
	if err != nil {
		return nil, fmt.Errorf("orders by user: %w", err)
	}
	return orders, nil
}

func (ms *MYSQLStore) ListOrders(ctx context.Context) ([]entity.Order, error) {
	query := `
	SELECT id, user_id, items, amount, address, payment, status, placed
	FROM customer_order ORDER BY placed DESC`
	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (ms *MYSQLStore) SetOrderPaid(ctx context.Context, id int) error {
	// Existence checked first: MySQL reports zero affected rows both for a
	// missing order and for a no-op update, so RowsAffected can't tell the
	// two apart.
	if _, err := ms.GetOrderById(ctx, id); err != nil {
		return err
	}
	query := `UPDATE customer_order SET payment = TRUE WHERE id = :id`
	if err := ExecNamed(ctx, ms.DB(), query, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("set order paid: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	if _, err := ms.GetOrderById(ctx, id); err != nil {
		return err
	}
	query := `UPDATE customer_order SET status = :status WHERE id = :id`
	if err := ExecNamed(ctx, ms.DB(), query, map[string]any{"id": id, "status": status}); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) DeleteOrder(ctx context.Context, id int) error {
	query := `DELETE FROM customer_order WHERE id = :id`
	if err := ExecNamed(ctx, ms.DB(), query, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) StaleUnpaidOrders(ctx context.Context, olderThan time.Time) ([]entity.Order, error) {
	query := `
	SELECT id, user_id, items, amount, address, payment, status, placed
	FROM customer_order WHERE payment = FALSE AND placed < :olderThan`
	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), query, map[string]any{"olderThan": olderThan})
	if err != nil {
		return nil, fmt.Errorf("stale unpaid orders: %w", err)
	}
	return orders, nil
}
