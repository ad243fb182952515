package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

var errNotFound = errors.New("not found")

// fakeRepo serves canned data through the dependency.Repository surface so
// the aggregators can be exercised without a database.
type fakeRepo struct {
	foods  map[int]entity.Food
	orders []entity.Order
	users  int

	ordersErr error
	now       time.Time
}

func (f *fakeRepo) Orders() dependency.Orders         { panic("not used") }
func (f *fakeRepo) Broadcasts() dependency.Broadcasts { panic("not used") }
func (f *fakeRepo) DB() dependency.DB                 { return nil }
func (f *fakeRepo) Close()                            {}
func (f *fakeRepo) Now() time.Time                    { return f.now }

func (f *fakeRepo) IsErrNotFound(err error) bool        { return errors.Is(err, errNotFound) }
func (f *fakeRepo) IsErrUniqueViolation(err error) bool { return false }

func (f *fakeRepo) Catalog() dependency.Catalog     { return &fakeCatalog{f} }
func (f *fakeRepo) Users() dependency.Users         { return &fakeUsers{f} }
func (f *fakeRepo) Analytics() dependency.Analytics { return &fakeAnalytics{f} }

type fakeCatalog struct{ r *fakeRepo }

func (c *fakeCatalog) AddFood(ctx context.Context, food *entity.FoodNew) (int, error) {
	return 0, errors.New("not used")
}

func (c *fakeCatalog) DeleteFood(ctx context.Context, id int) error { return errors.New("not used") }

func (c *fakeCatalog) ListFoods(ctx context.Context) ([]entity.Food, error) {
	return nil, errors.New("not used")
}

func (c *fakeCatalog) UpdateFoodPrice(ctx context.Context, id int, price decimal.Decimal) error {
	return errors.New("not used")
}

func (c *fakeCatalog) FoodById(ctx context.Context, id int) (*entity.Food, error) {
	if food, ok := c.r.foods[id]; ok {
		return &food, nil
	}
	return nil, errNotFound
}

func (c *fakeCatalog) FoodByName(ctx context.Context, name string) (*entity.Food, error) {
	for _, food := range c.r.foods {
		if food.Name == name {
			return &food, nil
		}
	}
	return nil, errNotFound
}

func (c *fakeCatalog) FoodsByIds(ctx context.Context, ids []int) (map[int]entity.Food, error) {
	out := map[int]entity.Food{}
	for _, id := range ids {
		if food, ok := c.r.foods[id]; ok {
			out[id] = food
		}
	}
	return out, nil
}

func (c *fakeCatalog) CountFoods(ctx context.Context) (int, error) {
	return len(c.r.foods), nil
}

type fakeUsers struct{ r *fakeRepo }

func (u *fakeUsers) CountUsers(ctx context.Context) (int, error) { return u.r.users, nil }

func (u *fakeUsers) GetCart(ctx context.Context, userId int) (entity.CartData, error) {
	return nil, errors.New("not used")
}

func (u *fakeUsers) UpdateCart(ctx context.Context, userId int, cart entity.CartData) error {
	return errors.New("not used")
}

type fakeAnalytics struct{ r *fakeRepo }

func (a *fakeAnalytics) CountOrders(ctx context.Context) (int, error) {
	return len(a.r.orders), nil
}

func (a *fakeAnalytics) TotalPaidSales(ctx context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, o := range a.r.orders {
		if o.Payment {
			total = total.Add(o.Amount)
		}
	}
	return total, nil
}

func (a *fakeAnalytics) ActiveUsersCount(ctx context.Context, from, to time.Time) (int, error) {
	seen := map[int]struct{}{}
	for _, o := range a.r.orders {
		if !o.Placed.Before(from) && !o.Placed.After(to) {
			seen[o.UserID] = struct{}{}
		}
	}
	return len(seen), nil
}

func (a *fakeAnalytics) DailyPaidSales(ctx context.Context, from, to time.Time) ([]entity.DailySales, error) {
	byDay := map[string]*entity.DailySales{}
	var days []string
	for _, o := range a.r.orders {
		if !o.Payment || o.Placed.Before(from) || o.Placed.After(to) {
			continue
		}
		day := o.Placed.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &entity.DailySales{Day: day}
			byDay[day] = d
			days = append(days, day)
		}
		d.Total = d.Total.Add(o.Amount)
		d.Orders++
	}
	out := make([]entity.DailySales, 0, len(days))
	for _, day := range days {
		out = append(out, *byDay[day])
	}
	return out, nil
}

func (a *fakeAnalytics) PaidOrdersWithItems(ctx context.Context, from, to time.Time) ([]entity.Order, error) {
	if a.r.ordersErr != nil {
		return nil, a.r.ordersErr
	}
	var out []entity.Order
	for _, o := range a.r.orders {
		if o.Payment && !o.Placed.Before(from) && !o.Placed.After(to) {
			out = append(out, o)
		}
	}
	return out, nil
}

// test fixture helpers

func intPtr(n int) *int { return &n }

func food(id int, name, category string, price float64, stock *int) entity.Food {
	return entity.Food{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    decimal.NewFromFloat(price),
		Stock:    stock,
	}
}

func paidOrder(userId int, placed time.Time, items ...entity.LineItem) entity.Order {
	amount := decimal.Zero
	for _, it := range items {
		amount = amount.Add(it.Revenue())
	}
	return entity.Order{
		UserID:  userId,
		Items:   items,
		Amount:  amount,
		Payment: true,
		Status:  entity.OrderStatusProcessing,
		Placed:  placed,
	}
}

func item(foodId, name, category string, qty int, price float64) entity.LineItem {
	return entity.LineItem{
		FoodID:   foodId,
		Name:     name,
		Category: category,
		Qty:      qty,
		Price:    decimal.NewFromFloat(price),
	}
}
