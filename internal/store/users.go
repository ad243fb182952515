package store

import (
	"context"
	"fmt"

	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

type usersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Users() dependency.Users {
	return &usersStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) CountUsers(ctx context.Context) (int, error) {
	count, err := QueryCountNamed(ctx, ms.DB(), `SELECT COUNT(*) FROM users`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (ms *MYSQLStore) GetCart(ctx context.Context, userId int) (entity.CartData, error) {
	type row struct {
		Cart entity.CartData `db:"cart_data"`
	}
	query := `SELECT cart_data FROM users WHERE id = :id`
	r, err := QueryNamedOne[row](ctx, ms.DB(), query, map[string]any{"id": userId})
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if r.Cart == nil {
		return entity.CartData{}, nil
	}
	return r.Cart, nil
}

func (ms *MYSQLStore) UpdateCart(ctx context.Context, userId int, cart entity.CartData) error {
	if _, err := ms.GetCart(ctx, userId); err != nil {
		return err
	}
	query := `UPDATE users SET cart_data = :cart WHERE id = :id`
	if err := ExecNamed(ctx, ms.DB(), query, map[string]any{"id": userId, "cart": cart}); err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	return nil
}
