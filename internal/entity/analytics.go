package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateWindow is the inclusive [Start, End] range an aggregation is computed
// over. Request-scoped, never persisted.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Range renders the window boundaries the way the API reports them.
func (w DateWindow) Range() WindowRange {
	r := WindowRange{}
	if !w.Start.IsZero() {
		s := w.Start.Format("2006-01-02")
		r.Start = &s
	}
	if !w.End.IsZero() {
		e := w.End.Format("2006-01-02")
		r.End = &e
	}
	return r
}

type WindowRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// DailySales is one calendar-day bucket of the paid-sales time series.
type DailySales struct {
	Day    string          `db:"day" json:"date"`
	Total  decimal.Decimal `db:"total" json:"total"`
	Orders int             `db:"orders" json:"orders"`
}

type CategorySales struct {
	Name    string          `json:"name"`
	Revenue decimal.Decimal `json:"revenue"`
	Qty     int             `json:"qty"`
}

type ProductSales struct {
	Name    string          `json:"name"`
	Qty     int             `json:"qty"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Overview carries the admin dashboard KPIs. Global totals are unwindowed;
// ActiveUsersWindow, SalesOverTime, SalesByCategory and TopProducts are
// restricted to the resolved window.
type Overview struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	TotalOrders       int             `json:"totalOrders"`
	TotalProducts     int             `json:"totalProducts"`
	TotalUsers        int             `json:"totalUsers"`
	ActiveUsersWindow int             `json:"activeUsersWindow"`
	SalesOverTime     []DailySales    `json:"salesOverTime"`
	SalesByCategory   []CategorySales `json:"salesByCategory"`
	TopProducts       []ProductSales  `json:"topProducts"`
	// ConversionRate is orders/users x 100. A heuristic, not a probability:
	// users placing several orders push it past 100, and that is accepted.
	ConversionRate float64     `json:"conversionRate"`
	Range          WindowRange `json:"range"`
}

// ProductCard is the catalog side of a product-insights detail response.
type ProductCard struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"`
}

type ProductDailySales struct {
	Day     string          `json:"date"`
	Qty     int             `json:"qty"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

type ProductTotals struct {
	Qty     int             `json:"qty"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// BuyerStat is one buyer's aggregate for a single product within the window.
type BuyerStat struct {
	UserID int `json:"userId"`
	Qty    int `json:"qty"`
	Orders int `json:"orders"`
}

type ProductDetail struct {
	Product       ProductCard         `json:"product"`
	Totals        ProductTotals       `json:"totals"`
	SalesOverTime []ProductDailySales `json:"salesOverTime"`
	RepeatBuyers  int                 `json:"repeatBuyers"`
	TopBuyers     []BuyerStat         `json:"topBuyers"`
	Range         WindowRange         `json:"range"`
}

// ProductSummary is one row of the product-insights list. Key prefers the
// catalog id and falls back to the raw reference or name when the line items
// never resolved.
type ProductSummary struct {
	Key         string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Qty         int             `json:"qty"`
	Revenue     decimal.Decimal `json:"revenue"`
	Orders      int             `json:"orders"`
	AvgPrice    decimal.Decimal `json:"avgPrice"`
	BuyersCount int             `json:"buyersCount"`
	Stock       *int            `json:"stock"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type InsightsPage struct {
	Products           []ProductSummary `json:"products"`
	Pagination         Pagination       `json:"pagination"`
	TotalProductsCount int              `json:"totalProductsCount"`
	Range              WindowRange      `json:"range"`
}
