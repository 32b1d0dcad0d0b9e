package stub_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmcdonald3/inventory-smoke/pkg/config"
	"github.com/bmcdonald3/inventory-smoke/pkg/inventory"
	"github.com/bmcdonald3/inventory-smoke/pkg/stub"
)

// TestSmokeRunAgainstStub runs the whole workflow against the stub and
// expects every request to succeed.
func TestSmokeRunAgainstStub(t *testing.T) {
	store := stub.NewStore()
	server := httptest.NewServer(stub.NewServer(store, slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer server.Close()

	var logs bytes.Buffer
	cfg := &config.Config{BaseURL: server.URL, LowStockThreshold: config.DefaultLowStockThreshold, Timeout: 5 * time.Second}
	runner := inventory.NewRunner(cfg, slog.New(slog.NewTextHandler(&logs, nil)))

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.RetailerID)
	assert.Empty(t, report.Failures(), logs.String())
	assert.Equal(t, 13, report.Requests())

	items, ok := store.Items(string(report.RetailerID))
	require.True(t, ok)
	assert.Len(t, items, 3)

	low, ok := store.LowStock(string(report.RetailerID), config.DefaultLowStockThreshold)
	require.True(t, ok)
	require.Len(t, low, 1)
	assert.Equal(t, "lotion", low[0].ProductName)

	orders := store.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, string(report.RetailerID), orders[0].UserID)
	assert.Len(t, store.Distributors("stockholm"), 1)

	out := logs.String()
	assert.Contains(t, out, "bill created successfully")
	assert.Contains(t, out, "grand_total:190.48")
	assert.Contains(t, out, "API requests simulation completed")
}

// A second run creates a new retailer because the username carries a timestamp.
func TestSmokeRunTwiceWithDistinctUsernames(t *testing.T) {
	server := httptest.NewServer(stub.NewServer(stub.NewStore(), slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer server.Close()

	cfg := &config.Config{BaseURL: server.URL, LowStockThreshold: config.DefaultLowStockThreshold}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	_, err := inventory.NewRunner(cfg, logger, inventory.WithClock(func() time.Time { return first })).Run(context.Background())
	require.NoError(t, err)

	// Same second, same username: the stub rejects it and nothing else runs.
	report, err := inventory.NewRunner(cfg, logger, inventory.WithClock(func() time.Time { return first })).Run(context.Background())
	assert.ErrorIs(t, err, inventory.ErrNoRetailer)
	assert.Equal(t, 1, report.Requests())

	later := first.Add(time.Second)
	_, err = inventory.NewRunner(cfg, logger, inventory.WithClock(func() time.Time { return later })).Run(context.Background())
	assert.NoError(t, err)
}
