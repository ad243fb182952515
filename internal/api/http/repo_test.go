package httpapi

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

var errNotFound = errors.New("not found")

// stubRepo is an in-memory dependency.Repository for handler tests.
type stubRepo struct {
	foods      map[int]entity.Food
	orders     map[int]*entity.Order
	carts      map[int]entity.CartData
	broadcasts []entity.Broadcast
	users      int

	nextOrderId int
	nextFoodId  int
	now         time.Time
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		foods:       map[int]entity.Food{},
		orders:      map[int]*entity.Order{},
		carts:       map[int]entity.CartData{},
		nextOrderId: 1,
		nextFoodId:  1,
		now:         time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (s *stubRepo) Orders() dependency.Orders         { return (*stubOrders)(s) }
func (s *stubRepo) Catalog() dependency.Catalog       { return (*stubCatalog)(s) }
func (s *stubRepo) Users() dependency.Users           { return (*stubUsers)(s) }
func (s *stubRepo) Broadcasts() dependency.Broadcasts { return (*stubBroadcasts)(s) }
func (s *stubRepo) Analytics() dependency.Analytics   { return (*stubAnalytics)(s) }
func (s *stubRepo) Now() time.Time                    { return s.now }
func (s *stubRepo) Close()                            {}
func (s *stubRepo) DB() dependency.DB                 { return nil }

func (s *stubRepo) IsErrNotFound(err error) bool        { return errors.Is(err, errNotFound) }
func (s *stubRepo) IsErrUniqueViolation(err error) bool { return false }

type stubOrders stubRepo

func (s *stubOrders) CreateOrder(ctx context.Context, n *entity.OrderNew) (*entity.Order, error) {
	o := &entity.Order{
		ID:      s.nextOrderId,
		UserID:  n.UserID,
		Items:   n.Items,
		Amount:  n.Amount,
		Address: n.Address,
		Payment: n.Payment,
		Status:  entity.OrderStatusProcessing,
		Placed:  s.now,
	}
	s.orders[o.ID] = o
	s.nextOrderId++
	return o, nil
}

func (s *stubOrders) GetOrderById(ctx context.Context, id int) (*entity.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, errNotFound
	}
	return o, nil
}

func (s *stubOrders) GetOrdersByUser(ctx context.Context, userId int) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range s.orders {
		if o.UserID == userId {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubOrders) ListOrders(ctx context.Context) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubOrders) SetOrderPaid(ctx context.Context, id int) error {
	o, ok := s.orders[id]
	if !ok {
		return errNotFound
	}
	o.Payment = true
	return nil
}

func (s *stubOrders) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	o, ok := s.orders[id]
	if !ok {
		return errNotFound
	}
	o.Status = status
	return nil
}

func (s *stubOrders) DeleteOrder(ctx context.Context, id int) error {
	if _, ok := s.orders[id]; !ok {
		return errNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *stubOrders) StaleUnpaidOrders(ctx context.Context, olderThan time.Time) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range s.orders {
		if !o.Payment && o.Placed.Before(olderThan) {
			out = append(out, *o)
		}
	}
	return out, nil
}

type stubCatalog stubRepo

func (s *stubCatalog) AddFood(ctx context.Context, n *entity.FoodNew) (int, error) {
	id := s.nextFoodId
	s.nextFoodId++
	s.foods[id] = entity.Food{
		ID:       id,
		Name:     n.Name,
		Price:    n.Price,
		Category: n.Category,
		Image:    n.Image,
		Stock:    n.Stock,
	}
	return id, nil
}

func (s *stubCatalog) DeleteFood(ctx context.Context, id int) error {
	if _, ok := s.foods[id]; !ok {
		return errNotFound
	}
	delete(s.foods, id)
	return nil
}

func (s *stubCatalog) ListFoods(ctx context.Context) ([]entity.Food, error) {
	var out []entity.Food
	for _, f := range s.foods {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubCatalog) UpdateFoodPrice(ctx context.Context, id int, price decimal.Decimal) error {
	f, ok := s.foods[id]
	if !ok {
		return errNotFound
	}
	f.Price = price
	s.foods[id] = f
	return nil
}

func (s *stubCatalog) FoodById(ctx context.Context, id int) (*entity.Food, error) {
	f, ok := s.foods[id]
	if !ok {
		return nil, errNotFound
	}
	return &f, nil
}

func (s *stubCatalog) FoodByName(ctx context.Context, name string) (*entity.Food, error) {
	for _, f := range s.foods {
		if f.Name == name {
			return &f, nil
		}
	}
	return nil, errNotFound
}

func (s *stubCatalog) FoodsByIds(ctx context.Context, ids []int) (map[int]entity.Food, error) {
	out := map[int]entity.Food{}
	for _, id := range ids {
		if f, ok := s.foods[id]; ok {
			out[id] = f
		}
	}
	return out, nil
}

func (s *stubCatalog) CountFoods(ctx context.Context) (int, error) { return len(s.foods), nil }

type stubUsers stubRepo

func (s *stubUsers) CountUsers(ctx context.Context) (int, error) { return s.users, nil }

func (s *stubUsers) GetCart(ctx context.Context, userId int) (entity.CartData, error) {
	cart, ok := s.carts[userId]
	if !ok {
		return nil, errNotFound
	}
	return cart, nil
}

func (s *stubUsers) UpdateCart(ctx context.Context, userId int, cart entity.CartData) error {
	if _, ok := s.carts[userId]; !ok {
		return errNotFound
	}
	s.carts[userId] = cart
	return nil
}

type stubBroadcasts stubRepo

func (s *stubBroadcasts) AddBroadcast(ctx context.Context, sellerName, message string) (int, error) {
	b := entity.Broadcast{ID: len(s.broadcasts) + 1, SellerName: sellerName, Message: message, CreatedAt: s.now}
	s.broadcasts = append(s.broadcasts, b)
	return b.ID, nil
}

func (s *stubBroadcasts) ListBroadcasts(ctx context.Context) ([]entity.Broadcast, error) {
	out := make([]entity.Broadcast, len(s.broadcasts))
	copy(out, s.broadcasts)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type stubAnalytics stubRepo

func (s *stubAnalytics) CountOrders(ctx context.Context) (int, error) { return len(s.orders), nil }

func (s *stubAnalytics) TotalPaidSales(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range s.orders {
		if o.Payment {
			total = total.Add(o.Amount)
		}
	}
	return total, nil
}

func (s *stubAnalytics) ActiveUsersCount(ctx context.Context, from, to time.Time) (int, error) {
	seen := map[int]struct{}{}
	for _, o := range s.orders {
		if !o.Placed.Before(from) && !o.Placed.After(to) {
			seen[o.UserID] = struct{}{}
		}
	}
	return len(seen), nil
}

func (s *stubAnalytics) DailyPaidSales(ctx context.Context, from, to time.Time) ([]entity.DailySales, error) {
	return nil, nil
}

func (s *stubAnalytics) PaidOrdersWithItems(ctx context.Context, from, to time.Time) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range s.orders {
		if o.Payment && !o.Placed.Before(from) && !o.Placed.After(to) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
