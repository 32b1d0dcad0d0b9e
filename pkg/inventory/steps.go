// pkg/inventory/steps.go

package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// Step names, as they appear in results and log lines.
const (
	StepCreateRetailer   = "create retailer"
	StepAddInventory     = "add inventory"
	StepAddDeliveryAgent = "add delivery agent"
	StepAddDistributors  = "add distributors"
	StepGetInventory     = "get inventory"
	StepForecast         = "forecast"
	StepCreateBill       = "create bill"
	StepCheckLowStock    = "check low stock"
	StepRestockOrder     = "restock order"
)

// Every step below issues one request per payload item and reports each
// outcome. None of them returns an error: failures are logged and kept in
// the StepReport so the run can move on to the next step.

// CreateRetailer registers a retailer with a timestamped username and
// returns the identifier the API assigned to it, or "" if there is none.
func (r *Runner) CreateRetailer(ctx context.Context, s *Session) (RetailerID, StepReport) {
	res := s.Post(ctx, StepCreateRetailer, "/create-db", retailerFixture(r.now()))
	r.report(ctx, res, "retailer created successfully", "error creating retailer")

	step := StepReport{Name: StepCreateRetailer, Results: []Result{res}}
	if !res.OK() {
		return "", step
	}

	id := parseRetailerID(res.Raw)
	if id == "" {
		r.logger.ErrorContext(ctx, "error creating retailer",
			slog.String("step", StepCreateRetailer),
			slog.String("error", "response has no userId"),
		)
	}
	return id, step
}

// AddInventory adds the three fixture items to the retailer.
func (r *Runner) AddInventory(ctx context.Context, s *Session, id RetailerID) StepReport {
	path := "/add-item/" + url.PathEscape(string(id))
	step := StepReport{Name: StepAddInventory}
	for _, item := range inventoryFixture(r.now()) {
		res := s.Post(ctx, StepAddInventory, path, item)
		r.report(ctx, res, "added item successfully", "error adding item", slog.String("item", item.ProductName))
		step.Results = append(step.Results, res)
	}
	return step
}

func (r *Runner) AddDeliveryAgent(ctx context.Context, s *Session, id RetailerID) StepReport {
	res := s.Post(ctx, StepAddDeliveryAgent, "/addDeliveryAgent/"+url.PathEscape(string(id)), deliveryAgentFixture())
	r.report(ctx, res, "delivery agent added successfully", "error adding delivery agent")
	return StepReport{Name: StepAddDeliveryAgent, Results: []Result{res}}
}

// AddDistributors registers one distributor group per city. Distributors are
// global, so no retailer identifier is involved.
func (r *Runner) AddDistributors(ctx context.Context, s *Session) StepReport {
	step := StepReport{Name: StepAddDistributors}
	for _, group := range distributorFixture() {
		res := s.Post(ctx, StepAddDistributors, "/distributors", group)
		r.report(ctx, res, "distributor added successfully", "error adding distributor", slog.String("location", group.Location))
		step.Results = append(step.Results, res)
	}
	return step
}

func (r *Runner) GetInventory(ctx context.Context, s *Session, id RetailerID) StepReport {
	res := s.Get(ctx, StepGetInventory, "/getItems/"+url.PathEscape(string(id)))
	r.report(ctx, res, "inventory retrieved successfully", "error getting inventory")
	return StepReport{Name: StepGetInventory, Results: []Result{res}}
}

func (r *Runner) Forecast(ctx context.Context, s *Session) StepReport {
	res := s.Post(ctx, StepForecast, "/forecast", forecastFixture())
	r.report(ctx, res, "forecast performed successfully", "error performing forecast")
	return StepReport{Name: StepForecast, Results: []Result{res}}
}

func (r *Runner) CreateBill(ctx context.Context, s *Session, id RetailerID) StepReport {
	res := s.Post(ctx, StepCreateBill, "/bill/"+url.PathEscape(string(id)), billFixture())
	r.report(ctx, res, "bill created successfully", "error creating bill")
	return StepReport{Name: StepCreateBill, Results: []Result{res}}
}

// CheckLowStock asks for the retailer's items below the configured threshold.
func (r *Runner) CheckLowStock(ctx context.Context, s *Session, id RetailerID) StepReport {
	path := fmt.Sprintf("/low-stock/%s?threshold=%d", url.PathEscape(string(id)), r.cfg.LowStockThreshold)
	res := s.Get(ctx, StepCheckLowStock, path)
	r.report(ctx, res, "low stock check performed successfully", "error checking low stock")
	return StepReport{Name: StepCheckLowStock, Results: []Result{res}}
}

func (r *Runner) PlaceRestockOrder(ctx context.Context, s *Session, id RetailerID) StepReport {
	res := s.Post(ctx, StepRestockOrder, "/restock-order", restockFixture(id))
	r.report(ctx, res, "restock order placed successfully", "error placing restock order")
	return StepReport{Name: StepRestockOrder, Results: []Result{res}}
}

// report logs the outcome of a single request.
func (r *Runner) report(ctx context.Context, res Result, success, failure string, attrs ...slog.Attr) {
	attrs = append(attrs,
		slog.String("step", res.Step),
		slog.String("method", res.Method),
		slog.String("path", res.Path),
	)
	if res.Status != 0 {
		attrs = append(attrs, slog.Int("status", res.Status))
	}

	if !res.OK() {
		attrs = append(attrs, slog.String("error", res.Err.Error()))
		r.logger.LogAttrs(ctx, slog.LevelError, failure, attrs...)
		return
	}
	if res.Body != nil {
		attrs = append(attrs, slog.Any("response", res.Body))
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, success, attrs...)
}
