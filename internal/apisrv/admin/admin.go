// Package admin implements the seller-facing handlers: the analytics
// dashboard, catalog management, order fulfilment and broadcasts.
package admin

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	v "github.com/asaskevich/govalidator"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"github.com/tastehub/tastehub-manager/internal/analytics"
	"github.com/tastehub/tastehub-manager/internal/apisrv/respond"
	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

// maxImageSize caps multipart food-image uploads.
const maxImageSize = 10 << 20

// Server holds the admin handlers.
type Server struct {
	repo      dependency.Repository
	bucket    dependency.FileStore
	analytics *analytics.Service
}

// New creates a new server with admin handlers.
func New(r dependency.Repository, b dependency.FileStore, an *analytics.Service) *Server {
	return &Server{
		repo:      r,
		bucket:    b,
		analytics: an,
	}
}

// ANALYTICS

// GetOverview serves the dashboard KPI payload over an optional date window.
func (s *Server) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	overview, err := s.analytics.GetOverview(ctx, q.Get("start"), q.Get("end"))
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't compute overview",
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't compute overview")
		return
	}
	respond.Data(w, r, overview)
}

// GetProductInsights serves either a single-product drill-down when
// productId is present, or the paginated per-product list.
func (s *Server) GetProductInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if productId := q.Get("productId"); productId != "" {
		detail, err := s.analytics.GetProductDetail(ctx, productId, q.Get("start"), q.Get("end"))
		if err != nil {
			if errors.Is(err, analytics.ErrProductNotFound) {
				respond.NotFound(w, r, "Product not found")
				return
			}
			slog.Default().ErrorContext(ctx, "can't compute product detail",
				slog.String("productId", productId),
				slog.String("err", err.Error()),
			)
			respond.Internal(w, r, "can't compute product insights")
			return
		}
		respond.Data(w, r, detail)
		return
	}

	page, err := s.analytics.ListProductInsights(ctx, analytics.ListParams{
		Start:    q.Get("start"),
		End:      q.Get("end"),
		Category: q.Get("category"),
		Page:     intQuery(q.Get("page")),
		Limit:    intQuery(q.Get("limit")),
	})
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't compute product insights",
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't compute product insights")
		return
	}
	respond.Data(w, r, page)
}

// intQuery parses a numeric query parameter, 0 when absent or junk. The
// aggregator applies its own defaults for out-of-range values.
func intQuery(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// CATALOG

// AddFood creates a catalog entry from a multipart form with an image part.
func (s *Server) AddFood(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		respond.BadRequest(w, r, "invalid multipart form")
		return
	}

	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		respond.BadRequest(w, r, "invalid price")
		return
	}

	food := &entity.FoodNew{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    r.FormValue("category"),
	}
	if _, err := v.ValidateStruct(food); err != nil {
		respond.BadRequest(w, r, err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respond.BadRequest(w, r, "image is required")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		respond.BadRequest(w, r, "can't read image")
		return
	}

	imageURL, err := s.bucket.UploadImage(ctx, raw, header.Header.Get("Content-Type"))
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't upload food image",
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't upload image")
		return
	}
	food.Image = imageURL

	if _, err := s.repo.Catalog().AddFood(ctx, food); err != nil {
		if s.repo.IsErrUniqueViolation(err) {
			respond.BadRequest(w, r, "food with this name already exists")
			return
		}
		slog.Default().ErrorContext(ctx, "can't add food",
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't add food")
		return
	}
	respond.Message(w, r, "Food Added")
}

type removeFoodRequest struct {
	Id int `json:"id"`
}

func (rr *removeFoodRequest) Bind(r *http.Request) error { return nil }

// RemoveFood deletes a catalog entry and best-effort removes its image.
func (s *Server) RemoveFood(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req removeFoodRequest
	if err := render.Bind(r, &req); err != nil || req.Id == 0 {
		respond.BadRequest(w, r, "id is required")
		return
	}

	food, err := s.repo.Catalog().FoodById(ctx, req.Id)
	if err != nil {
		if s.repo.IsErrNotFound(err) {
			respond.NotFound(w, r, "Food item not found")
			return
		}
		slog.Default().ErrorContext(ctx, "can't get food",
			slog.Int("id", req.Id),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't remove food")
		return
	}

	if err := s.repo.Catalog().DeleteFood(ctx, req.Id); err != nil {
		slog.Default().ErrorContext(ctx, "can't delete food",
			slog.Int("id", req.Id),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't remove food")
		return
	}

	// Orphaned objects are acceptable, a failed delete never fails the call.
	if food.Image != "" {
		if err := s.bucket.DeleteImage(ctx, food.Image); err != nil {
			slog.Default().WarnContext(ctx, "can't delete food image",
				slog.String("image", food.Image),
				slog.String("err", err.Error()),
			)
		}
	}
	respond.Message(w, r, "Food Removed")
}

type updatePriceRequest struct {
	Id    int              `json:"id"`
	Price *decimal.Decimal `json:"price"`
}

func (ur *updatePriceRequest) Bind(r *http.Request) error { return nil }

// UpdateFoodPrice changes the price of a catalog entry. Missing fields are a
// 400, an unknown id is a 404.
func (s *Server) UpdateFoodPrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updatePriceRequest
	if err := render.Bind(r, &req); err != nil {
		respond.BadRequest(w, r, "ID and price are required")
		return
	}
	if req.Id == 0 || req.Price == nil {
		respond.BadRequest(w, r, "ID and price are required")
		return
	}
	if req.Price.IsNegative() {
		respond.BadRequest(w, r, "price must not be negative")
		return
	}

	if err := s.repo.Catalog().UpdateFoodPrice(ctx, req.Id, *req.Price); err != nil {
		if s.repo.IsErrNotFound(err) {
			respond.NotFound(w, r, "Food item not found")
			return
		}
		slog.Default().ErrorContext(ctx, "can't update food price",
			slog.Int("id", req.Id),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't update price")
		return
	}
	respond.Message(w, r, "Price updated")
}

// ORDERS

// ListOrders returns every order for the fulfilment board.
func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := s.repo.Orders().ListOrders(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list orders",
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't list orders")
		return
	}
	respond.Data(w, r, orders)
}

type updateStatusRequest struct {
	OrderId int    `json:"orderId"`
	Status  string `json:"status"`
}

func (ur *updateStatusRequest) Bind(r *http.Request) error { return nil }

// UpdateOrderStatus moves an order along its fulfilment lifecycle.
func (s *Server) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateStatusRequest
	if err := render.Bind(r, &req); err != nil || req.OrderId == 0 || req.Status == "" {
		respond.BadRequest(w, r, "orderId and status are required")
		return
	}

	if err := s.repo.Orders().UpdateOrderStatus(ctx, req.OrderId, req.Status); err != nil {
		if s.repo.IsErrNotFound(err) {
			respond.NotFound(w, r, "Order not found")
			return
		}
		slog.Default().ErrorContext(ctx, "can't update order status",
			slog.Int("orderId", req.OrderId),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't update status")
		return
	}
	respond.Message(w, r, "Status Updated")
}

// BROADCASTS

type addBroadcastRequest struct {
	SellerName string `json:"sellerName"`
	Message    string `json:"message"`
}

func (ar *addBroadcastRequest) Bind(r *http.Request) error { return nil }

// AddBroadcast publishes a seller announcement.
func (s *Server) AddBroadcast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addBroadcastRequest
	if err := render.Bind(r, &req); err != nil || req.SellerName == "" || req.Message == "" {
		respond.BadRequest(w, r, "sellerName and message are required")
		return
	}

	if _, err := s.repo.Broadcasts().AddBroadcast(ctx, req.SellerName, req.Message); err != nil {
		slog.Default().ErrorContext(ctx, "can't add broadcast",
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't add broadcast")
		return
	}
	respond.Message(w, r, "Broadcast added!")
}
