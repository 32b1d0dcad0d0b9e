// pkg/inventory/runner.go

// Package inventory drives a smoke run against the inventory-management API:
// it creates a retailer and then exercises the remaining endpoints in a fixed
// order, logging every response or error.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bmcdonald3/inventory-smoke/pkg/config"
)

// Runner executes the smoke workflow. It is not safe for concurrent use;
// a run is strictly sequential.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpClient HTTPDoer
	now        func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

// WithHTTPClient makes sessions use c instead of a fresh *http.Client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(r *Runner) { r.httpClient = c }
}

// WithClock replaces time.Now for usernames and expiry dates.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a runner for the API at cfg.BaseURL.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// stage is one step of the run after retailer creation.
type stage struct {
	title string
	run   func(context.Context, *Session, RetailerID) StepReport
}

func (r *Runner) stages() []stage {
	return []stage{
		{"Adding Inventory", r.AddInventory},
		{"Adding Delivery Agent", r.AddDeliveryAgent},
		{"Adding Distributor", func(ctx context.Context, s *Session, _ RetailerID) StepReport {
			return r.AddDistributors(ctx, s)
		}},
		{"Getting Inventory", r.GetInventory},
		{"Performing Forecast", func(ctx context.Context, s *Session, _ RetailerID) StepReport {
			return r.Forecast(ctx, s)
		}},
		{"Creating Bill", r.CreateBill},
		{"Checking Low Stock", r.CheckLowStock},
		{"Placing Restock Order", r.PlaceRestockOrder},
	}
}

// NewSession opens the session a run uses. The caller must Close it.
func (r *Runner) NewSession() *Session {
	s := NewSession(r.cfg.BaseURL, r.cfg.Timeout)
	if r.httpClient != nil {
		s.HTTPClient = r.httpClient
	}
	return s
}

// Run creates a retailer and, if the API handed back an identifier, runs the
// remaining eight steps in order. Failures of those steps are logged and
// recorded in the report but do not stop the run. If retailer creation
// yields no identifier, nothing else is called and the error wraps
// ErrNoRetailer.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	s := r.NewSession()
	defer s.Close()

	r.logger.InfoContext(ctx, "--- 1. Creating Retailer ---", slog.String("base_url", s.BaseURL))
	id, created := r.CreateRetailer(ctx, s)
	report := &Report{RetailerID: id, Steps: []StepReport{created}}

	if id == "" {
		err := ErrNoRetailer
		if failed := created.Failures(); len(failed) > 0 {
			err = fmt.Errorf("%w: %w", ErrNoRetailer, failed[0].Err)
		}
		r.logger.ErrorContext(ctx, "aborting run: later steps need a retailer identifier")
		return report, err
	}

	for i, st := range r.stages() {
		r.logger.InfoContext(ctx, fmt.Sprintf("--- %d. %s ---", i+2, st.title))
		report.Steps = append(report.Steps, st.run(ctx, s, id))
	}

	r.logger.InfoContext(ctx, "--- API requests simulation completed. ---",
		slog.String("retailer_id", string(id)),
		slog.Int("requests", report.Requests()),
		slog.Int("failed", len(report.Failures())),
	)
	return report, nil
}
