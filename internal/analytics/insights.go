package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tastehub/tastehub-manager/internal/datewindow"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

// ErrProductNotFound reports that a productId resolved to no catalog entry,
// by id or by name. Distinct from store faults so the API can answer 404
// instead of a generic server error.
var ErrProductNotFound = errors.New("product not found")

// stockLookupConcurrency caps the parallel per-row stock re-attachment
// lookups in list mode.
const stockLookupConcurrency = 8

// ListParams are the query parameters of the list mode. Page and Limit fall
// back to sane defaults when unset or out of range.
type ListParams struct {
	Start    string
	End      string
	Category string
	Page     int
	Limit    int
}

// GetProductDetail is the single-product drill-down: a windowed daily series
// of the product's paid sales, totals folded from that series, and
// repeat-buyer stats. The identifier resolves by catalog id when parseable,
// else by exact name; matching against order items tolerates both id- and
// name-shaped historical references.
func (s *Service) GetProductDetail(ctx context.Context, productId, start, end string) (*entity.ProductDetail, error) {
	window := datewindow.Resolve(s.nowFn(), start, end)

	product, err := s.lookupProduct(ctx, productId)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.Analytics().PaidOrdersWithItems(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("paid orders: %w", err)
	}

	type dayBucket struct {
		qty     int
		revenue decimal.Decimal
		orders  int
	}
	byDay := map[string]*dayBucket{}
	buyers := map[int]*entity.BuyerStat{}
	var buyerOrder []int

	for _, order := range orders {
		day := order.Placed.Format(dayFormat)
		for _, item := range order.Items {
			if !itemMatchesProduct(item, product) {
				continue
			}
			b, ok := byDay[day]
			if !ok {
				b = &dayBucket{}
				byDay[day] = b
			}
			b.qty += item.Qty
			b.revenue = b.revenue.Add(item.Revenue())
			b.orders++

			bs, ok := buyers[order.UserID]
			if !ok {
				bs = &entity.BuyerStat{UserID: order.UserID}
				buyers[order.UserID] = bs
				buyerOrder = append(buyerOrder, order.UserID)
			}
			bs.Qty += item.Qty
			bs.Orders++
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	detail := &entity.ProductDetail{
		Product: entity.ProductCard{
			ID:       product.ID,
			Name:     product.Name,
			Category: product.Category,
			Price:    &product.Price,
			Stock:    product.Stock,
		},
		SalesOverTime: make([]entity.ProductDailySales, 0, len(days)),
		Range:         window.Range(),
	}

	// Totals fold over the series itself so they can never drift from it.
	for _, day := range days {
		b := byDay[day]
		detail.SalesOverTime = append(detail.SalesOverTime, entity.ProductDailySales{
			Day:     day,
			Qty:     b.qty,
			Revenue: b.revenue,
			Orders:  b.orders,
		})
		detail.Totals.Qty += b.qty
		detail.Totals.Revenue = detail.Totals.Revenue.Add(b.revenue)
		detail.Totals.Orders += b.orders
	}

	stats := make([]entity.BuyerStat, 0, len(buyerOrder))
	for _, userId := range buyerOrder {
		bs := buyers[userId]
		if bs.Orders > 1 {
			detail.RepeatBuyers++
		}
		stats = append(stats, *bs)
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Qty > stats[j].Qty })
	if len(stats) > topBuyersSample {
		stats = stats[:topBuyersSample]
	}
	detail.TopBuyers = stats

	return detail, nil
}

// ListProductInsights is the catalog-wide list mode: per-product summaries
// over paid orders in the window, optionally filtered by category, ordered by
// revenue descending and paginated.
func (s *Service) ListProductInsights(ctx context.Context, p ListParams) (*entity.InsightsPage, error) {
	window := datewindow.Resolve(s.nowFn(), p.Start, p.End)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultListLimit
	}

	orders, err := s.repo.Analytics().PaidOrdersWithItems(ctx, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("paid orders: %w", err)
	}
	foods, err := s.resolveCatalog(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog: %w", err)
	}

	type productAgg struct {
		summary entity.ProductSummary
		prices  []decimal.Decimal
		buyers  map[int]struct{}
	}
	byKey := map[string]*productAgg{}
	var keyOrder []string

	for _, order := range orders {
		for _, item := range order.Items {
			key, name, category := summaryIdentity(item, foods)
			if p.Category != "" && category != p.Category {
				continue
			}
			agg, ok := byKey[key]
			if !ok {
				agg = &productAgg{
					summary: entity.ProductSummary{Key: key, Name: name, Category: category},
					buyers:  map[int]struct{}{},
				}
				byKey[key] = agg
				keyOrder = append(keyOrder, key)
			}
			agg.summary.Qty += item.Qty
			agg.summary.Revenue = agg.summary.Revenue.Add(item.Revenue())
			agg.summary.Orders++
			agg.prices = append(agg.prices, item.Price)
			agg.buyers[order.UserID] = struct{}{}
		}
	}

	rows := make([]entity.ProductSummary, 0, len(keyOrder))
	for _, key := range keyOrder {
		agg := byKey[key]
		agg.summary.AvgPrice = meanPrice(agg.prices)
		agg.summary.BuyersCount = len(agg.buyers)
		rows = append(rows, agg.summary)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue.GreaterThan(rows[j].Revenue)
	})

	rows = paginate(rows, p.Page, p.Limit)

	if err := s.attachStock(ctx, rows); err != nil {
		return nil, fmt.Errorf("attach stock: %w", err)
	}

	totalProducts, err := s.repo.Catalog().CountFoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("count foods: %w", err)
	}

	return &entity.InsightsPage{
		Products:           rows,
		Pagination:         entity.Pagination{Page: p.Page, Limit: p.Limit},
		TotalProductsCount: totalProducts,
		Range:              window.Range(),
	}, nil
}

// lookupProduct resolves an identifier to a catalog entry: by id when the
// string parses as one, falling back to exact name either way. Both insight
// modes share this policy.
func (s *Service) lookupProduct(ctx context.Context, productId string) (*entity.Food, error) {
	if id, err := strconv.Atoi(productId); err == nil && id > 0 {
		food, err := s.repo.Catalog().FoodById(ctx, id)
		if err == nil {
			return food, nil
		}
		if !s.repo.IsErrNotFound(err) {
			return nil, fmt.Errorf("food by id: %w", err)
		}
	}
	food, err := s.repo.Catalog().FoodByName(ctx, productId)
	if err != nil {
		if s.repo.IsErrNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("food by name: %w", err)
	}
	return food, nil
}

// itemMatchesProduct tolerates inconsistent historical references: a line
// item belongs to the product when its reference parses to the product's id
// or its stored name equals the product's name.
func itemMatchesProduct(item entity.LineItem, product *entity.Food) bool {
	if id, ok := item.CatalogID(); ok && id == product.ID {
		return true
	}
	return item.Name != "" && item.Name == product.Name
}

// summaryIdentity picks the grouping key for list mode: the catalog id when
// the item resolves, else the raw reference, else the item name.
func summaryIdentity(item entity.LineItem, foods map[int]entity.Food) (key, name, category string) {
	if id, ok := item.CatalogID(); ok {
		if food, found := foods[id]; found {
			return strconv.Itoa(food.ID), food.Name, food.Category
		}
	}
	name = item.Name
	if name == "" {
		name = fallbackName
	}
	category = item.Category
	if category == "" {
		category = fallbackCategory
	}
	key = item.FoodID
	if key == "" {
		key = name
	}
	return key, name, category
}

func meanPrice(prices []decimal.Decimal) decimal.Decimal {
	if len(prices) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range prices {
		sum = sum.Add(p)
	}
	return sum.Div(decimal.NewFromInt(int64(len(prices)))).Round(2)
}

func paginate(rows []entity.ProductSummary, page, limit int) []entity.ProductSummary {
	offset := (page - 1) * limit
	if offset >= len(rows) {
		return []entity.ProductSummary{}
	}
	rows = rows[offset:]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// attachStock re-attaches current stock to every page row, best effort. The
// lookups are independent and run concurrently; a failed lookup leaves that
// row's stock null and never fails the page, but all of them settle before
// the page is returned.
func (s *Service) attachStock(ctx context.Context, rows []entity.ProductSummary) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(stockLookupConcurrency)
	for i := range rows {
		i := i
		g.Go(func() error {
			rows[i].Stock = s.currentStock(ctx, rows[i])
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) currentStock(ctx context.Context, row entity.ProductSummary) *int {
	if id, err := strconv.Atoi(row.Key); err == nil && id > 0 {
		if food, err := s.repo.Catalog().FoodById(ctx, id); err == nil {
			return food.Stock
		}
	}
	if food, err := s.repo.Catalog().FoodByName(ctx, row.Name); err == nil {
		return food.Stock
	}
	return nil
}
