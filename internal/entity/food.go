package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Food represents the food table.
type Food struct {
	ID          int             `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Category    string          `db:"category" json:"category"`
	Image       string          `db:"image" json:"image"`
	Stock       *int            `db:"stock" json:"stock"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

type FoodNew struct {
	Name        string          `valid:"required"`
	Description string          `valid:"-"`
	Price       decimal.Decimal `valid:"required"`
	Category    string          `valid:"required"`
	Image       string          `valid:"-"`
	Stock       *int            `valid:"-"`
}
