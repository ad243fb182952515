package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

type catalogStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Catalog() dependency.Catalog {
	return &catalogStore{MYSQLStore: ms}
}

func (ms *MYSQLStore) AddFood(ctx context.Context, food *entity.FoodNew) (int, error) {
	query := `
	INSERT INTO food (name, description, price, category, image, stock)
	VALUES (:name, :description, :price, :category, :image, :stock)`
	id, err := ExecNamedLastId(ctx, ms.DB(), query, map[string]any{
		"name":        food.Name,
		"description": food.Description,
		"price":       food.Price,
		"category":    food.Category,
		"image":       food.Image,
		"stock":       food.Stock,
	})
	if err != nil {
		return 0, fmt.Errorf("insert food: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) DeleteFood(ctx context.Context, id int) error {
	query := `DELETE FROM food WHERE id = :id`
	if err := ExecNamed(ctx, ms.DB(), query, map[string]any{"id": id}); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) ListFoods(ctx context.Context) ([]entity.Food, error) {
	query := `
	SELECT id, name, description, price, category, image, stock, created_at
	FROM food ORDER BY id`
	foods, err := QueryListNamed[entity.Food](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return foods, nil
}

func (ms *MYSQLStore) UpdateFoodPrice(ctx context.Context, id int, price decimal.Decimal) error {
	if _, err := ms.FoodById(ctx, id); err != nil {
		return err
	}
	query := `UPDATE food SET price = :price WHERE id = :id`
	if err := ExecNamed(ctx, ms.DB(), query, map[string]any{"id": id, "price": price}); err != nil {
		return fmt.Errorf("update food price: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) FoodById(ctx context.Context, id int) (*entity.Food, error) {
	query := `
	SELECT id, name, description, price, category, image, stock, created_at
	FROM food WHERE id = :id`
	food, err := QueryNamedOne[entity.Food](ctx, ms.DB(), query, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("food by id: %w", err)
	}
	return &food, nil
}

func (ms *MYSQLStore) FoodByName(ctx context.Context, name string) (*entity.Food, error) {
	query := `
	SELECT id, name, description, price, category, image, stock, created_at
	FROM food WHERE name = :name`
	food, err := QueryNamedOne[entity.Food](ctx, ms.DB(), query, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("food by name: %w", err)
	}
	return &food, nil
}

func (ms *MYSQLStore) FoodsByIds(ctx context.Context, ids []int) (map[int]entity.Food, error) {
	if len(ids) == 0 {
		return map[int]entity.Food{}, nil
	}
	query := `
	SELECT id, name, description, price, category, image, stock, created_at
	FROM food WHERE id IN (:ids)`
	foods, err := QueryListNamed[entity.Food](ctx, ms.DB(), query, map[string]any{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("foods by ids: %w", err)
	}
	byId := make(map[int]entity.Food, len(foods))
	for _, f := range foods {
		byId[f.ID] = f
	}
	return byId, nil
}

func (ms *MYSQLStore) CountFoods(ctx context.Context) (int, error) {
	count, err := QueryCountNamed(ctx, ms.DB(), `SELECT COUNT(*) FROM food`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("count foods: %w", err)
	}
	return count, nil
}
