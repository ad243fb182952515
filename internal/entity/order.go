package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses are free-form lifecycle strings carried over from the
// storefront; the store never validates them beyond non-emptiness.
const (
	OrderStatusProcessing     = "Food Processing"
	OrderStatusOutForDelivery = "Out for delivery"
	OrderStatusDelivered      = "Delivered"
)

// Order represents the customer_order table.
type Order struct {
	ID      int             `db:"id" json:"id"`
	UserID  int             `db:"user_id" json:"userId"`
	Items   LineItems       `db:"items" json:"items"`
	Amount  decimal.Decimal `db:"amount" json:"amount"`
	Address Address         `db:"address" json:"address"`
	Payment bool            `db:"payment" json:"payment"`
	Status  string          `db:"status" json:"status"`
	Placed  time.Time       `db:"placed" json:"date"`
}

type OrderNew struct {
	UserID  int             `json:"userId"`
	Items   LineItems       `json:"items" valid:"required"`
	Amount  decimal.Decimal `json:"amount" valid:"required"`
	Address Address         `json:"address"`
	Payment bool            `json:"-"`
}

// Address is a free-form delivery address document.
type Address map[string]any

func (a Address) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal address: %w", err)
	}
	return string(b), nil
}

func (a *Address) Scan(src any) error {
	return scanJSON(src, a, "address")
}

// LineItem is one product-quantity-price entry embedded in an order.
//
// Historical records are inconsistently shaped: the product reference may
// arrive as foodId, _id or id; the captured price as price or amount; qty may
// be missing entirely. Decoding applies the ordered fallbacks
// foodId -> _id -> id, price -> amount -> 0, qty -> 1 once, at the ingestion
// boundary, so every reader downstream sees a canonical record. This is a
// permanent invariant of the read path, not legacy to be migrated away.
type LineItem struct {
	FoodID   string          `json:"foodId,omitempty"`
	Name     string          `json:"name,omitempty"`
	Category string          `json:"category,omitempty"`
	Qty      int             `json:"qty"`
	Price    decimal.Decimal `json:"price"`
}

// CatalogID reports the catalog id the item references, when the raw
// reference parses as one. Junk references ("abc", empty, Mongo-era hex ids)
// simply report false and resolve by name instead.
func (li LineItem) CatalogID() (int, bool) {
	if li.FoodID == "" {
		return 0, false
	}
	id, err := strconv.Atoi(li.FoodID)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Revenue is qty x captured price.
func (li LineItem) Revenue() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Qty)))
}

func (li *LineItem) UnmarshalJSON(b []byte) error {
	var raw struct {
		FoodID   json.RawMessage `json:"foodId"`
		MongoID  json.RawMessage `json:"_id"`
		ID       json.RawMessage `json:"id"`
		Name     string          `json:"name"`
		Category string          `json:"category"`
		Qty      *json.Number    `json:"qty"`
		Price    json.RawMessage `json:"price"`
		Amount   json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("line item: %w", err)
	}

	li.Name = raw.Name
	li.Category = raw.Category

	li.FoodID = firstIDCandidate(raw.FoodID, raw.MongoID, raw.ID)

	li.Qty = 1
	if raw.Qty != nil {
		if n, err := raw.Qty.Int64(); err == nil && n > 0 {
			li.Qty = int(n)
		}
	}

	li.Price = firstPriceCandidate(raw.Price, raw.Amount)
	return nil
}

// firstIDCandidate walks the ordered alias list and keeps the first usable
// reference, stringified. Numbers and strings both occur in stored data.
func firstIDCandidate(candidates ...json.RawMessage) string {
	for _, c := range candidates {
		if len(c) == 0 || string(c) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(c, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(c, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

func firstPriceCandidate(candidates ...json.RawMessage) decimal.Decimal {
	for _, c := range candidates {
		if len(c) == 0 || string(c) == "null" {
			continue
		}
		var d decimal.Decimal
		if err := json.Unmarshal(c, &d); err == nil {
			return d
		}
	}
	return decimal.Zero
}

// LineItems is the items JSON column of customer_order.
type LineItems []LineItem

func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		return "[]", nil
	}
	b, err := json.Marshal(li)
	if err != nil {
		return nil, fmt.Errorf("marshal line items: %w", err)
	}
	return string(b), nil
}

func (li *LineItems) Scan(src any) error {
	return scanJSON(src, li, "line items")
}

func scanJSON(src, dst any, what string) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("scan %s: unsupported type %T", what, src)
	}
}
