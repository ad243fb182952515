package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// User represents the user table. Analytics reads it only as a count; the
// cart document lives on the user the same way the storefront stores it.
type User struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CartData  CartData  `db:"cart_data" json:"cartData"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CartData maps a food id to the quantity currently in the cart.
type CartData map[string]int

func (c CartData) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal cart data: %w", err)
	}
	return string(b), nil
}

func (c *CartData) Scan(src any) error {
	return scanJSON(src, c, "cart data")
}
