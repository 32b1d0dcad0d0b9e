package stub

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*echo.Echo, *Store) {
	t.Helper()
	store := NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(store, logger), store
}

func do(t *testing.T, e *echo.Echo, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func createRetailer(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec, resp := do(t, e, http.MethodPost, "/create-db", map[string]string{"username": username, "email": "a@b.c", "region": "sweden"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id, ok := resp["userId"].(string)
	require.True(t, ok)
	return id
}

func addItem(t *testing.T, e *echo.Echo, userID, product, country string, qty int, price float64) {
	t.Helper()
	rec, _ := do(t, e, http.MethodPost, "/add-item/"+userID, map[string]any{
		"product_name":  product,
		"quantity":      qty,
		"country":       country,
		"month":         11,
		"current_price": price,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)
	rec, resp := do(t, e, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["ok"])
}

func TestCreateRetailer(t *testing.T) {
	e, store := newTestServer(t)

	t.Run("Created", func(t *testing.T) {
		id := createRetailer(t, e, "nordic_retail_1")
		assert.True(t, store.Exists(id))
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		rec, resp := do(t, e, http.MethodPost, "/create-db", map[string]string{"username": "nordic_retail_1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "User already exists", resp["error"])
	})

	t.Run("Missing Username", func(t *testing.T) {
		rec, resp := do(t, e, http.MethodPost, "/create-db", map[string]string{"email": "a@b.c"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Username is required", resp["error"])
	})
}

func TestAddItem(t *testing.T) {
	e, _ := newTestServer(t)
	id := createRetailer(t, e, "items")

	t.Run("Unknown User", func(t *testing.T) {
		rec, _ := do(t, e, http.MethodPost, "/add-item/nobody", map[string]any{"product_name": "soap", "quantity": 1, "country": "sweden", "month": 1})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		rec, _ := do(t, e, http.MethodPost, "/add-item/"+id, map[string]any{"product_name": "soap", "country": "sweden", "month": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Zero Quantity Is Allowed", func(t *testing.T) {
		rec, resp := do(t, e, http.MethodPost, "/add-item/"+id, map[string]any{"product_name": "soap", "quantity": 0, "country": "sweden", "month": 1})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.NotEmpty(t, resp["itemId"])
	})

	t.Run("Listed", func(t *testing.T) {
		addItem(t, e, id, "shampoo", "sweden", 100, 48.99)
		rec, resp := do(t, e, http.MethodGet, "/getItems/"+id, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		items, ok := resp["items"].([]any)
		require.True(t, ok)
		assert.Len(t, items, 2)
	})
}

func TestAddDeliveryAgent(t *testing.T) {
	e, _ := newTestServer(t)
	id := createRetailer(t, e, "agents")

	rec, resp := do(t, e, http.MethodPost, "/addDeliveryAgent/"+id, map[string]string{"delivery_name": "Speedy", "delivery_number": "1", "location": "stockholm"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Delivery Agent added successfully for stockholm", resp["message"])

	rec, _ = do(t, e, http.MethodPost, "/addDeliveryAgent/"+id, map[string]string{"delivery_name": "Speedy"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddDistributors(t *testing.T) {
	e, store := newTestServer(t)

	body := map[string]any{
		"location":     "Oslo",
		"distributors": []map[string]string{{"name": "Nordic Distributors Inc.", "contact": "555-1234"}},
	}
	rec, resp := do(t, e, http.MethodPost, "/distributors", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), resp["count"])
	assert.Len(t, store.Distributors("oslo"), 1)

	rec, _ = do(t, e, http.MethodPost, "/distributors", map[string]any{"location": "oslo"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForecast(t *testing.T) {
	e, _ := newTestServer(t)

	rec, resp := do(t, e, http.MethodPost, "/forecast", map[string]any{"country": "sweden", "product_name": "shampoo", "month": 12, "stock_level": 100})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(225), resp["forecasted_sales"])
	assert.Equal(t, float64(125), resp["suggested_stock"])

	rec, _ = do(t, e, http.MethodPost, "/forecast", map[string]any{"country": "sweden"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForecastSales(t *testing.T) {
	assert.Equal(t, 225, forecastSales("Shampoo", "SWEDEN", 12))
	assert.Equal(t, 0, forecastSales("widget", "sweden", 12))
	assert.Equal(t, 0, forecastSales("soap", "atlantis", 3))
	assert.Equal(t, 0, forecastSales("soap", "sweden", 0))
	// soap=4, denmark=0, June: seed 4*97+6*11 = 454, base 254, +50
	assert.Equal(t, 304, forecastSales("soap", "denmark", 6))
}

func TestBill(t *testing.T) {
	e, store := newTestServer(t)
	id := createRetailer(t, e, "billing")
	addItem(t, e, id, "shampoo", "sweden", 100, 48.99)
	addItem(t, e, id, "lotion", "denmark", 3, 65)

	rec, resp := do(t, e, http.MethodPost, "/bill/"+id, map[string]any{"items": []map[string]any{
		{"product_name": "shampoo", "country": "sweden", "quantity": 2},
		{"product_name": "lotion", "country": "denmark", "quantity": 5},
		{"product_name": "", "country": "sweden", "quantity": 1},
	}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 97.98+325.0, resp["grand_total"])

	lines, ok := resp["items"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 3)
	assert.Equal(t, float64(98), lines[0].(map[string]any)["remaining_qty"])
	assert.Equal(t, float64(0), lines[1].(map[string]any)["remaining_qty"], "stock never goes negative")
	assert.Equal(t, false, lines[2].(map[string]any)["ok"])

	low, ok := store.LowStock(id, 1)
	require.True(t, ok)
	require.Len(t, low, 1)
	assert.Equal(t, "lotion", low[0].ProductName)

	rec, _ = do(t, e, http.MethodPost, "/bill/"+id, map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = do(t, e, http.MethodPost, "/bill/nobody", map[string]any{"items": []map[string]any{{"product_name": "soap", "country": "sweden", "quantity": 1}}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLowStock(t *testing.T) {
	e, _ := newTestServer(t)
	id := createRetailer(t, e, "lowstock")
	addItem(t, e, id, "soap", "sweden", 200, 18.5)
	addItem(t, e, id, "lotion", "denmark", 15, 65)
	addItem(t, e, id, "conditioner", "norway", 5, 30)

	rec, resp := do(t, e, http.MethodGet, "/low-stock/"+id+"?threshold=20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := resp["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "conditioner", items[0].(map[string]any)["product_name"])
	assert.Equal(t, "lotion", items[1].(map[string]any)["product_name"])

	rec, resp = do(t, e, http.MethodGet, "/low-stock/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(defaultLowStockThreshold), resp["threshold"])

	rec, _ = do(t, e, http.MethodGet, "/low-stock/"+id+"?threshold=lots", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = do(t, e, http.MethodGet, "/low-stock/nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRestockOrder(t *testing.T) {
	e, store := newTestServer(t)
	id := createRetailer(t, e, "restock")

	body := map[string]any{"userId": id, "city": "stockholm", "order_items": []map[string]any{{"product_name": "lotion", "quantity": 50}}}
	rec, resp := do(t, e, http.MethodPost, "/restock-order", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, resp["orderId"])
	require.Len(t, store.Orders(), 1)
	assert.Equal(t, "placed", store.Orders()[0].Status)

	body["userId"] = "nobody"
	rec, _ = do(t, e, http.MethodPost, "/restock-order", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, e, http.MethodPost, "/restock-order", map[string]any{"userId": id, "city": "stockholm"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
