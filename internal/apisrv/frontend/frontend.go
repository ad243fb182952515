// Package frontend implements the storefront handlers: catalog browsing,
// carts, order placement and payment verification.
package frontend

import (
	"fmt"
	"log/slog"
	"net/http"

	v "github.com/asaskevich/govalidator"
	"github.com/go-chi/render"
	"github.com/tastehub/tastehub-manager/internal/apisrv/respond"
	"github.com/tastehub/tastehub-manager/internal/auth/jwt"
	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/entity"
)

// Server holds the frontend handlers.
type Server struct {
	repo     dependency.Repository
	checkout dependency.CheckoutProvider
	verifier dependency.SignatureVerifier
}

// New creates a new server with frontend handlers.
func New(r dependency.Repository, checkout dependency.CheckoutProvider, verifier dependency.SignatureVerifier) *Server {
	return &Server{
		repo:     r,
		checkout: checkout,
		verifier: verifier,
	}
}

// CATALOG

// ListFood returns the whole catalog for the storefront.
func (s *Server) ListFood(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	foods, err := s.repo.Catalog().ListFoods(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list foods",
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't list foods")
		return
	}
	respond.Data(w, r, foods)
}

// CART

type cartRequest struct {
	ItemId string `json:"itemId"`
}

func (cr *cartRequest) Bind(r *http.Request) error { return nil }

// GetCart returns the authenticated user's cart document.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userId, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		respond.Unauthorized(w, r, "Not Authorized Login Again")
		return
	}

	cart, err := s.repo.Users().GetCart(ctx, userId)
	if err != nil {
		if s.repo.IsErrNotFound(err) {
			respond.NotFound(w, r, "User not found")
			return
		}
		slog.Default().ErrorContext(ctx, "can't get cart",
			slog.Int("userId", userId),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't get cart")
		return
	}
	respond.Data(w, r, cart)
}

// AddToCart increments the item's quantity in the user's cart.
func (s *Server) AddToCart(w http.ResponseWriter, r *http.Request) {
	s.mutateCart(w, r, func(cart entity.CartData, itemId string) {
		cart[itemId]++
	})
}

// RemoveFromCart decrements the item's quantity, dropping the key at zero.
func (s *Server) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	s.mutateCart(w, r, func(cart entity.CartData, itemId string) {
		if cart[itemId] > 1 {
			cart[itemId]--
		} else {
			delete(cart, itemId)
		}
	})
}

func (s *Server) mutateCart(w http.ResponseWriter, r *http.Request, mutate func(entity.CartData, string)) {
	ctx := r.Context()

	userId, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		respond.Unauthorized(w, r, "Not Authorized Login Again")
		return
	}

	var req cartRequest
	if err := render.Bind(r, &req); err != nil || req.ItemId == "" {
		respond.BadRequest(w, r, "itemId is required")
		return
	}

	cart, err := s.repo.Users().GetCart(ctx, userId)
	if err != nil {
		if s.repo.IsErrNotFound(err) {
			respond.NotFound(w, r, "User not found")
			return
		}
		slog.Default().ErrorContext(ctx, "can't get cart",
			slog.Int("userId", userId),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't update cart")
		return
	}
	if cart == nil {
		cart = entity.CartData{}
	}
	mutate(cart, req.ItemId)

	if err := s.repo.Users().UpdateCart(ctx, userId, cart); err != nil {
		slog.Default().ErrorContext(ctx, "can't update cart",
			slog.Int("userId", userId),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't update cart")
		return
	}
	respond.Data(w, r, cart)
}

// ORDERS

type placeOrderRequest struct {
	entity.OrderNew
}

func (pr *placeOrderRequest) Bind(r *http.Request) error { return nil }

// PlaceOrder creates an unpaid order, empties the user's cart and answers
// with a hosted checkout session URL. The order stays unpaid until the
// verify callback flips it.
func (s *Server) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, ok := s.createOrder(w, r, false)
	if !ok {
		return
	}

	sessionURL, err := s.checkout.CreateSession(ctx, order)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create checkout session",
			slog.Int("orderId", order.ID),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't create checkout session")
		return
	}
	respond.Data(w, r, map[string]string{"session_url": sessionURL})
}

// PlaceOrderCod creates an order already marked paid, cash on delivery.
func (s *Server) PlaceOrderCod(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.createOrder(w, r, true); !ok {
		return
	}
	respond.Message(w, r, "Order Placed")
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request, paid bool) (*entity.Order, bool) {
	ctx := r.Context()

	userId, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		respond.Unauthorized(w, r, "Not Authorized Login Again")
		return nil, false
	}

	var req placeOrderRequest
	if err := render.Bind(r, &req); err != nil {
		respond.BadRequest(w, r, "invalid order payload")
		return nil, false
	}
	req.UserID = userId
	req.Payment = paid
	if _, err := v.ValidateStruct(&req.OrderNew); err != nil {
		respond.BadRequest(w, r, err.Error())
		return nil, false
	}

	order, err := s.repo.Orders().CreateOrder(ctx, &req.OrderNew)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create order",
			slog.Int("userId", userId),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't place order")
		return nil, false
	}

	// The storefront considers the cart consumed by the order.
	if err := s.repo.Users().UpdateCart(ctx, userId, entity.CartData{}); err != nil {
		slog.Default().WarnContext(ctx, "can't clear cart after order",
			slog.Int("userId", userId),
			slog.String("err", err.Error()),
		)
	}
	return order, true
}

type verifyOrderRequest struct {
	OrderId int    `json:"orderId"`
	Success string `json:"success"`
}

func (vr *verifyOrderRequest) Bind(r *http.Request) error { return nil }

// VerifyOrder is the checkout redirect callback: success marks the order
// paid, anything else removes the abandoned order.
func (s *Server) VerifyOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyOrderRequest
	if err := render.Bind(r, &req); err != nil || req.OrderId == 0 {
		respond.BadRequest(w, r, "orderId is required")
		return
	}

	if req.Success == "true" {
		if err := s.repo.Orders().SetOrderPaid(ctx, req.OrderId); err != nil {
			if s.repo.IsErrNotFound(err) {
				respond.NotFound(w, r, "Order not found")
				return
			}
			slog.Default().ErrorContext(ctx, "can't mark order paid",
				slog.Int("orderId", req.OrderId),
				slog.String("err", err.Error()),
			)
			respond.Internal(w, r, "Not Verified")
			return
		}
		respond.Message(w, r, "Paid")
		return
	}

	if err := s.repo.Orders().DeleteOrder(ctx, req.OrderId); err != nil && !s.repo.IsErrNotFound(err) {
		slog.Default().ErrorContext(ctx, "can't delete unpaid order",
			slog.Int("orderId", req.OrderId),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "Not Verified")
		return
	}
	respond.Error(w, r, http.StatusOK, "Not Paid")
}

type verifyRazorpayRequest struct {
	RazorpayOrderId   string `json:"razorpay_order_id"`
	RazorpayPaymentId string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderId           int    `json:"orderId"`
}

func (vr *verifyRazorpayRequest) Bind(r *http.Request) error { return nil }

// VerifyRazorpayPayment checks the provider signature and marks the order
// paid when it matches.
func (s *Server) VerifyRazorpayPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyRazorpayRequest
	if err := render.Bind(r, &req); err != nil {
		respond.BadRequest(w, r, "Missing required fields")
		return
	}
	if req.RazorpayOrderId == "" || req.RazorpayPaymentId == "" || req.RazorpaySignature == "" {
		respond.BadRequest(w, r, "Missing required fields")
		return
	}

	if !s.verifier.Verify(req.RazorpayOrderId, req.RazorpayPaymentId, req.RazorpaySignature) {
		respond.BadRequest(w, r, "signature mismatch")
		return
	}

	if err := s.repo.Orders().SetOrderPaid(ctx, req.OrderId); err != nil {
		if s.repo.IsErrNotFound(err) {
			respond.NotFound(w, r, "Order not found")
			return
		}
		slog.Default().ErrorContext(ctx, "can't mark order paid",
			slog.Int("orderId", req.OrderId),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "Not Verified")
		return
	}
	respond.Data(w, r, map[string]bool{"verified": true})
}

// UserOrders lists the authenticated user's orders.
func (s *Server) UserOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userId, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		respond.Unauthorized(w, r, "Not Authorized Login Again")
		return
	}

	orders, err := s.repo.Orders().GetOrdersByUser(ctx, userId)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list user orders",
			slog.Int("userId", userId),
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, fmt.Sprintf("can't list orders for user %d", userId))
		return
	}
	respond.Data(w, r, orders)
}

// BROADCASTS

// ListBroadcasts returns seller announcements, newest first.
func (s *Server) ListBroadcasts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	broadcasts, err := s.repo.Broadcasts().ListBroadcasts(ctx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't list broadcasts",
			slog.String("err", err.Error()),
		)
		respond.Internal(w, r, "can't list broadcasts")
		return
	}
	respond.Data(w, r, broadcasts)
}
