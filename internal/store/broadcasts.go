package store

import (
	"context"
	"fmt"

	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

type broadcastsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Broadcasts() dependency.Broadcasts {
	return &broadcastsStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) AddBroadcast(ctx context.Context, sellerName, message string) (int, error) {
	query := `INSERT INTO broadcast (seller_name, message) VALUES (:sellerName, :message)`
	id, err := ExecNamedLastId(ctx, ms.DB(), query, map[string]any{
		"sellerName": sellerName,
		"message":    message,
	})
	if err != nil {
		return 0, fmt.Errorf("insert broadcast: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) ListBroadcasts(ctx context.Context) ([]entity.Broadcast, error) {
	query := `
	SELECT id, seller_name, message, created_at
	FROM broadcast ORDER BY created_at DESC, id DESC`
	broadcasts, err := QueryListNamed[entity.Broadcast](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("list broadcasts: %w", err)
	}
	return broadcasts, nil
}
