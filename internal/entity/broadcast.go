package entity

import "time"

// Broadcast is a seller announcement shown on the storefront.
type Broadcast struct {
	ID         int       `db:"id" json:"id"`
	SellerName string    `db:"seller_name" json:"sellerName"`
	Message    string    `db:"message" json:"message"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
