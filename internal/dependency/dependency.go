package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

type (
	Orders interface {
		// CreateOrder persists a new order and returns it with its id set.
		CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.Order, error)
		GetOrderById(ctx context.Context, id int) (*entity.Order, error)
		GetOrdersByUser(ctx context.Context, userId int) ([]entity.Order, error)
		ListOrders(ctx context.Context) ([]entity.Order, error)
		// SetOrderPaid flips the payment flag exactly once after verification.
		SetOrderPaid(ctx context.Context, id int) error
		UpdateOrderStatus(ctx context.Context, id int, status string) error
		// DeleteOrder removes the order created for a card flow whose
		// verification failed.
		DeleteOrder(ctx context.Context, id int) error
		// StaleUnpaidOrders lists unpaid orders placed before olderThan, for
		// the abandoned-checkout reaper.
		StaleUnpaidOrders(ctx context.Context, olderThan time.Time) ([]entity.Order, error)
	}

	Catalog interface {
		AddFood(ctx context.Context, food *entity.FoodNew) (int, error)
		DeleteFood(ctx context.Context, id int) error
		ListFoods(ctx context.Context) ([]entity.Food, error)
		UpdateFoodPrice(ctx context.Context, id int, price decimal.Decimal) error
		FoodById(ctx context.Context, id int) (*entity.Food, error)
		FoodByName(ctx context.Context, name string) (*entity.Food, error)
		// FoodsByIds batch-loads catalog entries for line-item resolution.
		// Missing ids are simply absent from the result.
		FoodsByIds(ctx context.Context, ids []int) (map[int]entity.Food, error)
		CountFoods(ctx context.Context) (int, error)
	}

	Users interface {
		CountUsers(ctx context.Context) (int, error)
		GetCart(ctx context.Context, userId int) (entity.CartData, error)
		UpdateCart(ctx context.Context, userId int, cart entity.CartData) error
	}

	Broadcasts interface {
		AddBroadcast(ctx context.Context, sellerName, message string) (int, error)
		ListBroadcasts(ctx context.Context) ([]entity.Broadcast, error)
	}

	// Analytics is the declarative read surface the aggregators are computed
	// over. Faults here are structural: the aggregation pass that hit one
	// aborts its whole request.
	Analytics interface {
		CountOrders(ctx context.Context) (int, error)
		// TotalPaidSales sums amount over paid orders, unwindowed.
		TotalPaidSales(ctx context.Context) (decimal.Decimal, error)
		// ActiveUsersCount counts distinct userIds among orders placed in the
		// window regardless of payment status.
		ActiveUsersCount(ctx context.Context, from, to time.Time) (int, error)
		// DailyPaidSales groups paid orders in the window by calendar day,
		// ascending.
		DailyPaidSales(ctx context.Context, from, to time.Time) ([]entity.DailySales, error)
		// PaidOrdersWithItems returns paid orders in the window with their
		// line items decoded, for item-expansion passes.
		PaidOrdersWithItems(ctx context.Context, from, to time.Time) ([]entity.Order, error)
	}

	Repository interface {
		Orders() Orders
		Catalog() Catalog
		Users() Users
		Broadcasts() Broadcasts
		Analytics() Analytics
		Now() time.Time
		Close()
		IsErrNotFound(err error) bool
		IsErrUniqueViolation(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
		PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
		PreparexContext(ctx context.Context, query string) (*sqlx.Stmt, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	FileStore interface {
		// UploadImage stores a raw image and returns its public URL.
		UploadImage(ctx context.Context, raw []byte, contentType string) (string, error)
		DeleteImage(ctx context.Context, url string) error
	}

	// CheckoutProvider creates a hosted checkout session for a freshly placed
	// order and reports the URL the client is redirected to.
	CheckoutProvider interface {
		CreateSession(ctx context.Context, order *entity.Order) (string, error)
	}

	// SignatureVerifier checks a provider-signed payment confirmation against
	// the shared secret.
	SignatureVerifier interface {
		Verify(orderRef, paymentRef, signature string) bool
	}
)
