// Package httpapi exposes the JSON API over chi.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"

	"github.com/tastehub/tastehub-manager/internal/apisrv/admin"
	"github.com/tastehub/tastehub-manager/internal/apisrv/frontend"
	"github.com/tastehub/tastehub-manager/internal/apisrv/respond"
)

// Config is the configuration for the http server
type Config struct {
	Port           string        `mapstructure:"port"`
	Address        string        `mapstructure:"address"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RateLimit      int           `mapstructure:"rate_limit"`
	RatePeriod     time.Duration `mapstructure:"rate_period"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(c *Config) *Server {
	return &Server{
		c:    c,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(adminSrv *admin.Server, frontendSrv *frontend.Server, jwtAuth *jwtauth.JWTAuth) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "token"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	if s.c.RateLimit > 0 {
		r.Use(httprate.Limit(
			s.c.RateLimit,
			s.c.RatePeriod,
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				respond.Error(w, r, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
			}),
		))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("API Working"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Get("/overview", adminSrv.GetOverview)
			r.Get("/product-insights", adminSrv.GetProductInsights)
		})

		r.Route("/food", func(r chi.Router) {
			r.Get("/list", frontendSrv.ListFood)
			r.Post("/add", adminSrv.AddFood)
			r.Post("/remove", adminSrv.RemoveFood)
			r.Post("/update-price", adminSrv.UpdateFoodPrice)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(verifier(jwtAuth), authenticator)
			r.Post("/get", frontendSrv.GetCart)
			r.Post("/add", frontendSrv.AddToCart)
			r.Post("/remove", frontendSrv.RemoveFromCart)
		})

		r.Route("/order", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(verifier(jwtAuth), authenticator)
				r.Post("/place", frontendSrv.PlaceOrder)
				r.Post("/place-cod", frontendSrv.PlaceOrderCod)
				r.Post("/user", frontendSrv.UserOrders)
			})
			r.Post("/verify", frontendSrv.VerifyOrder)
			r.Post("/razorpay/verify", frontendSrv.VerifyRazorpayPayment)
			r.Get("/list", adminSrv.ListOrders)
			r.Post("/status", adminSrv.UpdateOrderStatus)
		})

		r.Route("/broadcast", func(r chi.Router) {
			r.Post("/add", adminSrv.AddBroadcast)
			r.Get("/all", frontendSrv.ListBroadcasts)
		})
	})

	return r
}

// verifier accepts the token from the Authorization bearer header or the
// bare "token" header legacy storefront clients send.
func verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader, tokenFromLegacyHeader)
}

func tokenFromLegacyHeader(r *http.Request) string {
	return r.Header.Get("token")
}

// authenticator rejects requests whose token failed verification, answering
// with the standard envelope instead of a bare 401.
func authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			respond.Unauthorized(w, r, "Not Authorized Login Again")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start starts the server and returns once it is listening.
func (s *Server) Start(ctx context.Context, adminSrv *admin.Server, frontendSrv *frontend.Server, jwtAuth *jwtauth.JWTAuth) error {
	addr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              addr,
		Handler:           s.router(adminSrv, frontendSrv, jwtAuth),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		defer close(s.done)
		slog.Default().InfoContext(ctx, "http server listening",
			slog.String("addr", addr),
		)
		if err := s.hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Default().ErrorContext(ctx, "http server exited",
				slog.String("err", err.Error()),
			)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.hs.Shutdown(shutdownCtx)
	}()

	return nil
}
