// Package analytics computes the admin sales read-model over persisted
// orders and catalog records: the dashboard overview and per-product
// insights, both windowed by an optional start/end pair.
package analytics

import (
	"time"

	"github.com/tastehub/tastehub-manager/internal/dependency"
)

const (
	topProductsLimit = 20
	topBuyersSample  = 10
	defaultListLimit = 20
	fallbackProduct  = "Unknown Product"
	fallbackName     = "Unknown"
	fallbackCategory = "Uncategorized"
	dayFormat        = "2006-01-02"
)

// Service computes analytics over the durable stores. Stateless across
// requests; the clock is injectable so windows are reproducible in tests.
type Service struct {
	repo  dependency.Repository
	nowFn func() time.Time
}

func New(repo dependency.Repository) *Service {
	return &Service{repo: repo, nowFn: time.Now}
}

// NewWithClock is used by tests that must pin "now".
func NewWithClock(repo dependency.Repository, nowFn func() time.Time) *Service {
	return &Service{repo: repo, nowFn: nowFn}
}
