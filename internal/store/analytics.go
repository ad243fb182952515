package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

type analyticsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Analytics() dependency.Analytics {
	return &analyticsStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) CountOrders(ctx context.Context) (int, error) {
	count, err := QueryCountNamed(ctx, ms.DB(), `SELECT COUNT(*) FROM customer_order`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (ms *MYSQLStore) TotalPaidSales(ctx context.Context) (decimal.Decimal, error) {
	type row struct {
		Total decimal.Decimal `db:"total"`
	}
	query := `
	SELECT COALESCE(SUM(amount), 0) AS total
	FROM customer_order WHERE payment = TRUE`
	r, err := QueryNamedOne[row](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("total paid sales: %w", err)
	}
	return r.Total, nil
}

func (ms *MYSQLStore) ActiveUsersCount(ctx context.Context, from, to time.Time) (int, error) {
	query := `
	SELECT COUNT(DISTINCT user_id)
	FROM customer_order
	WHERE placed >= :from AND placed <= :to`
	count, err := QueryCountNamed(ctx, ms.DB(), query, map[string]any{"from": from, "to": to})
	if err != nil {
		return 0, fmt.Errorf("active users: %w", err)
	}
	return count, nil
}

func (ms *MYSQLStore) DailyPaidSales(ctx context.Context, from, to time.Time) ([]entity.DailySales, error) {
	query := `
	SELECT DATE_FORMAT(placed, '%Y-%m-%d') AS day,
		COALESCE(SUM(amount), 0) AS total,
		COUNT(*) AS orders
	FROM customer_order
	WHERE payment = TRUE AND placed >= :from AND placed <= :to
	GROUP BY day
	ORDER BY day ASC`
	series, err := QueryListNamed[entity.DailySales](ctx, ms.DB(), query, map[string]any{"from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("daily paid sales: %w", err)
	}
	return series, nil
}

func (ms *MYSQLStore) PaidOrdersWithItems(ctx context.Context, from, to time.Time) ([]entity.Order, error) {
	query := `
	SELECT id, user_id, items, amount, address, payment, status, placed
	FROM customer_order
	WHERE payment = TRUE AND placed >= :from AND placed <= :to
	ORDER BY placed ASC`
	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), query, map[string]any{"from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("paid orders with items: %w", err)
	}
	return orders, nil
}
