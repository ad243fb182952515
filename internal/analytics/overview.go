package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tastehub/tastehub-manager/internal/datewindow"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

// GetOverview computes the dashboard KPIs. Each step reads the stores
// independently; a fault in any of them aborts the whole request with a
// single wrapped error rather than a partially filled result.
func (s *Service) GetOverview(ctx context.Context, start, end string) (*entity.Overview, error) {
	window := datewindow.Resolve(s.nowFn(), start, end)
	an := s.repo.Analytics()

	o := &entity.Overview{
		Range: window.Range(),
	}

	var err error
	o.TotalOrders, err = an.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	o.TotalProducts, err = s.repo.Catalog().CountFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("count foods: %w", err)
	}
	o.TotalUsers, err = s.repo.Users().CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	o.TotalSales, err = an.TotalPaidSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("total paid sales: %w", err)
	}

	o.ActiveUsersWindow, err = an.ActiveUsersCount(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("active users: %w", err)
	}

	o.SalesOverTime, err = an.DailyPaidSales(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	if o.SalesOverTime == nil {
		o.SalesOverTime = []entity.DailySales{}
	}

	o.SalesByCategory, o.TopProducts, err = s.itemBreakdowns(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("item breakdowns: %w", err)
	}

	if o.TotalUsers > 0 {
		rate := float64(o.TotalOrders) / float64(o.TotalUsers) * 100
		o.ConversionRate = math.Round(rate*100) / 100
	}

	return o, nil
}

// itemBreakdowns expands paid windowed orders into line items, resolves each
// against the catalog and accumulates the per-category and per-product
// groupings in a single pass. Unresolvable references degrade to the
// line item's own name/category, then to the placeholder labels; they are
// never dropped.
func (s *Service) itemBreakdowns(ctx context.Context, window entity.DateWindow) ([]entity.CategorySales, []entity.ProductSales, error) {
	orders, err := s.repo.Analytics().PaidOrdersWithItems(ctx, window.Start, window.End)
	if err != nil {
		return nil, nil, fmt.Errorf("paid orders: %w", err)
	}

	foods, err := s.resolveCatalog(ctx, orders)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve catalog: %w", err)
	}

	type bucket struct {
		revenue decimal.Decimal
		qty     int
	}
	byCategory := map[string]*bucket{}
	byProduct := map[string]*bucket{}
	var categoryOrder, productOrder []string

	for _, order := range orders {
		for _, item := range order.Items {
			name, category := resolveItem(item, foods)
			if name == "" {
				name = fallbackProduct
			}
			revenue := item.Revenue()

			cb, ok := byCategory[category]
			if !ok {
				cb = &bucket{}
				byCategory[category] = cb
				categoryOrder = append(categoryOrder, category)
			}
			cb.revenue = cb.revenue.Add(revenue)
			cb.qty += item.Qty

			pb, ok := byProduct[name]
			if !ok {
				pb = &bucket{}
				byProduct[name] = pb
				productOrder = append(productOrder, name)
			}
			pb.qty += item.Qty
			pb.revenue = pb.revenue.Add(revenue)
		}
	}

	categories := make([]entity.CategorySales, 0, len(categoryOrder))
	for _, name := range categoryOrder {
		b := byCategory[name]
		categories = append(categories, entity.CategorySales{
			Name:    name,
			Revenue: b.revenue,
			Qty:     b.qty,
		})
	}

	products := make([]entity.ProductSales, 0, len(productOrder))
	for _, name := range productOrder {
		b := byProduct[name]
		products = append(products, entity.ProductSales{
			Name:    name,
			Qty:     b.qty,
			Revenue: b.revenue,
		})
	}
	// Stable keeps first-seen order among equal quantities.
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Qty > products[j].Qty
	})
	if len(products) > topProductsLimit {
		products = products[:topProductsLimit]
	}

	return categories, products, nil
}

// resolveCatalog batch-loads every catalog entry the orders' line items
// reference by a parseable id. One round trip keeps the expansion pass free
// of per-item lookups.
func (s *Service) resolveCatalog(ctx context.Context, orders []entity.Order) (map[int]entity.Food, error) {
	seen := map[int]struct{}{}
	var ids []int
	for _, order := range orders {
		for _, item := range order.Items {
			id, ok := item.CatalogID()
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return map[int]entity.Food{}, nil
	}
	return s.repo.Catalog().FoodsByIds(ctx, ids)
}

// resolveItem matches a line item to a catalog entry by id when parseable,
// else falls back to the name/category the item itself carries.
func resolveItem(item entity.LineItem, foods map[int]entity.Food) (name, category string) {
	if id, ok := item.CatalogID(); ok {
		if food, found := foods[id]; found {
			name, category = food.Name, food.Category
		}
	}
	if name == "" {
		name = item.Name
	}
	if category == "" {
		category = item.Category
	}
	if category == "" {
		category = fallbackCategory
	}
	return name, category
}
