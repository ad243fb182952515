package app

import (
	"context"
	"log/slog"

	"github.com/tastehub/tastehub-manager/config"
	"github.com/tastehub/tastehub-manager/internal/analytics"
	httpapi "github.com/tastehub/tastehub-manager/internal/api/http"
	"github.com/tastehub/tastehub-manager/internal/apisrv/admin"
	"github.com/tastehub/tastehub-manager/internal/apisrv/frontend"
	"github.com/tastehub/tastehub-manager/internal/auth/jwt"
	"github.com/tastehub/tastehub-manager/internal/dependency"
	"github.com/tastehub/tastehub-manager/internal/ordercleanup"
	"github.com/tastehub/tastehub-manager/internal/payment/razorpay"
	"github.com/tastehub/tastehub-manager/internal/payment/stripe"
	"github.com/tastehub/tastehub-manager/internal/store"
)

// App is the main application
type App struct {
	hs      *httpapi.Server
	db      dependency.Repository
	cleanup *ordercleanup.Worker
	c       *config.Config
	done    chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting tastehub manager")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql",
			slog.String("err", err.Error()),
		)
		return err
	}

	jwtAuth, err := jwt.NewAuth(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't create jwt auth",
			slog.String("err", err.Error()),
		)
		return err
	}

	fileStore, err := a.c.Bucket.Init()
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't init bucket",
			slog.String("err", err.Error()),
		)
		return err
	}

	checkout, err := stripe.New(&a.c.StripePayment)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't init stripe processor",
			slog.String("err", err.Error()),
		)
		return err
	}

	verifier, err := razorpay.New(&a.c.Razorpay)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't init razorpay verifier",
			slog.String("err", err.Error()),
		)
		return err
	}

	a.cleanup = ordercleanup.New(&a.c.OrderCleanup, a.db)
	if err := a.cleanup.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "can't start order cleanup worker",
			slog.String("err", err.Error()),
		)
		return err
	}

	adminS := admin.New(a.db, fileStore, analytics.New(a.db))
	frontendS := frontend.New(a.db, checkout, verifier)

	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, adminS, frontendS, jwtAuth); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server",
			slog.String("err", err.Error()),
		)
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.cleanup != nil {
		a.cleanup.Stop()
	}
	a.db.Close()
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
