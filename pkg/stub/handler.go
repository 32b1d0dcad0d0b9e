package stub

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const defaultLowStockThreshold = 20

// Handler serves the stub inventory API.
type Handler struct {
	store  *Store
	logger *slog.Logger
}

// NewHandler creates a handler backed by store.
func NewHandler(store *Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the stub routes on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Health)
	e.POST("/create-db", h.CreateRetailer)
	e.POST("/add-item/:userId", h.AddItem)
	e.GET("/getItems/:userId", h.GetItems)
	e.POST("/addDeliveryAgent/:userId", h.AddDeliveryAgent)
	e.POST("/distributors", h.AddDistributors)
	e.POST("/forecast", h.Forecast)
	e.POST("/bill/:userId", h.Bill)
	e.GET("/low-stock/:userId", h.LowStock)
	e.POST("/restock-order", h.RestockOrder)
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// Health reports that the stub is up.
// GET /
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":      true,
		"service": "Nordic Retail Backend (stub)",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

type createRetailerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Region   string `json:"region"`
}

// CreateRetailer registers a retailer.
// POST /create-db
func (h *Handler) CreateRetailer(c echo.Context) error {
	var req createRetailerRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" {
		return errorJSON(c, http.StatusBadRequest, "Username is required")
	}

	id, ok := h.store.CreateRetailer(req.Username, req.Email, req.Region)
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "User already exists")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": fmt.Sprintf("Database '%s' created", req.Username),
		"userId":  id,
	})
}

type addItemRequest struct {
	ProductName  string   `json:"product_name"`
	Quantity     *int     `json:"quantity"`
	ExpiryDate   string   `json:"expiryDate"`
	Country      string   `json:"country"`
	Month        int      `json:"month"`
	CostPrice    *float64 `json:"cost_price"`
	SellingPrice *float64 `json:"selling_price"`
	CurrentPrice *float64 `json:"current_price"`
	Sales        *float64 `json:"sales"`
}

// AddItem adds an inventory row and updates the current stock.
// POST /add-item/:userId
func (h *Handler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ProductName == "" || req.Quantity == nil || req.Country == "" || req.Month == 0 {
		return errorJSON(c, http.StatusBadRequest, "Missing required fields: product_name, quantity, country, month")
	}

	item := Item{
		ProductName:  req.ProductName,
		Quantity:     *req.Quantity,
		Country:      req.Country,
		Month:        req.Month,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
	}
	if req.ExpiryDate != "" {
		item.ExpiryDate = &req.ExpiryDate
	}
	if req.Sales != nil {
		item.Sales = *req.Sales
	}

	id, ok := h.store.AddItem(c.Param("userId"), item, req.CurrentPrice)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Item added successfully",
		"itemId":  id,
	})
}

// GetItems lists a retailer's inventory rows.
// GET /getItems/:userId
func (h *Handler) GetItems(c echo.Context) error {
	items, ok := h.store.Items(c.Param("userId"))
	if !ok {
		return errorJSON(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": items})
}

type addAgentRequest struct {
	Name     string `json:"delivery_name"`
	Number   string `json:"delivery_number"`
	Location string `json:"location"`
}

// AddDeliveryAgent registers a delivery agent for a retailer.
// POST /addDeliveryAgent/:userId
func (h *Handler) AddDeliveryAgent(c echo.Context) error {
	var req addAgentRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Number == "" || req.Location == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing required fields: delivery_name, delivery_number, location")
	}

	id, ok := h.store.AddAgent(c.Param("userId"), Agent{Name: req.Name, Number: req.Number, Location: req.Location})
	if !ok {
		return errorJSON(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": fmt.Sprintf("Delivery Agent added successfully for %s", req.Location),
		"agentId": id,
	})
}

type addDistributorsRequest struct {
	Location     string        `json:"location"`
	Distributors []Distributor `json:"distributors"`
}

// AddDistributors registers distributors for a city.
// POST /distributors
func (h *Handler) AddDistributors(c echo.Context) error {
	var req addDistributorsRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Location == "" || len(req.Distributors) == 0 {
		return errorJSON(c, http.StatusBadRequest, "location and distributors[] required")
	}
	for _, d := range req.Distributors {
		if d.Name == "" {
			return errorJSON(c, http.StatusBadRequest, "every distributor needs a name")
		}
	}

	count := h.store.AddDistributors(req.Location, req.Distributors)
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  fmt.Sprintf("Distributors saved for %s", req.Location),
		"location": req.Location,
		"count":    count,
	})
}

type forecastRequest struct {
	Country       string  `json:"country"`
	ProductName   string  `json:"product_name"`
	Month         int     `json:"month"`
	AvgPrice      float64 `json:"avg_price"`
	Promotion     int     `json:"promotion"`
	PreviousSales float64 `json:"previous_sales"`
	SeasonIndex   float64 `json:"season_index"`
	EconomicIndex float64 `json:"economic_index"`
	StockLevel    *int    `json:"stock_level"`
}

// Forecast returns a deterministic sales estimate.
// POST /forecast
func (h *Handler) Forecast(c echo.Context) error {
	var req forecastRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Country == "" || req.ProductName == "" || req.Month == 0 {
		return errorJSON(c, http.StatusBadRequest, "Missing required fields: country, product_name, month")
	}

	stockLevel := 400
	if req.StockLevel != nil {
		stockLevel = *req.StockLevel
	}
	sales := forecastSales(req.ProductName, req.Country, req.Month)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":          true,
		"source":           "stub",
		"forecasted_sales": sales,
		"suggested_stock":  max(0, sales-stockLevel),
	})
}

type billRequest struct {
	Items []struct {
		ProductName string  `json:"product_name"`
		Country     string  `json:"country"`
		Quantity    float64 `json:"quantity"`
	} `json:"items"`
}

// Bill sells the listed items and prices them at the current stock price.
// POST /bill/:userId
func (h *Handler) Bill(c echo.Context) error {
	var req billRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if len(req.Items) == 0 {
		return errorJSON(c, http.StatusBadRequest, "items[] required")
	}
	userID := c.Param("userId")
	if !h.store.Exists(userID) {
		return errorJSON(c, http.StatusNotFound, "User not found")
	}

	lines := make([]map[string]interface{}, 0, len(req.Items))
	grandTotal := 0.0
	for _, it := range req.Items {
		qty := int(it.Quantity)
		if it.ProductName == "" || it.Country == "" || qty <= 0 {
			lines = append(lines, map[string]interface{}{
				"product_name": it.ProductName,
				"country":      it.Country,
				"ok":           false,
				"error":        "Invalid line",
			})
			continue
		}

		price, remaining, ok := h.store.Sell(userID, it.ProductName, it.Country, qty)
		if !ok {
			return errorJSON(c, http.StatusNotFound, "User not found")
		}
		lineTotal := price * float64(qty)
		grandTotal += lineTotal
		if remaining == 0 {
			h.logger.Warn("stock empty",
				slog.String("user_id", userID),
				slog.String("product_name", it.ProductName),
				slog.String("country", it.Country),
			)
		}
		lines = append(lines, map[string]interface{}{
			"product_name":  it.ProductName,
			"country":       it.Country,
			"sold_qty":      qty,
			"price_each":    price,
			"line_total":    round2(lineTotal),
			"remaining_qty": remaining,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"items":       lines,
		"grand_total": round2(grandTotal),
		"message":     "Billing completed and stock updated.",
	})
}

// LowStock lists stock rows below the threshold query parameter.
// GET /low-stock/:userId?threshold=N
func (h *Handler) LowStock(c echo.Context) error {
	threshold := defaultLowStockThreshold
	if raw := c.QueryParam("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return errorJSON(c, http.StatusBadRequest, "threshold must be a non-negative integer")
		}
		threshold = n
	}

	rows, ok := h.store.LowStock(c.Param("userId"), threshold)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"threshold": threshold,
		"items":     rows,
	})
}

type restockRequest struct {
	UserID     string        `json:"userId"`
	City       string        `json:"city"`
	OrderItems []RestockLine `json:"order_items"`
}

// RestockOrder places a restock order for a retailer.
// POST /restock-order
func (h *Handler) RestockOrder(c echo.Context) error {
	var req restockRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" || strings.TrimSpace(req.City) == "" || len(req.OrderItems) == 0 {
		return errorJSON(c, http.StatusBadRequest, "userId, city and order_items[] required")
	}

	order, ok := h.store.PlaceOrder(req.UserID, req.City, req.OrderItems)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      fmt.Sprintf("Restock order placed for %s", order.City),
		"orderId":      order.ID,
		"city":         order.City,
		"order_items":  order.OrderItems,
		"distributors": h.store.Distributors(order.City),
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
