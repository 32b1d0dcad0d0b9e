package inventory

// RetailerRequest is the body of POST /create-db.
type RetailerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Region   string `json:"region"`
}

// InventoryItem is the body of POST /add-item/{id}.
type InventoryItem struct {
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	ExpiryDate   string  `json:"expiryDate"` // YYYY-MM-DD
	Country      string  `json:"country"`
	Month        int     `json:"month"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	CurrentPrice float64 `json:"current_price"`
	Sales        int     `json:"sales"`
}

// DeliveryAgent is the body of POST /addDeliveryAgent/{id}.
type DeliveryAgent struct {
	Name     string `json:"delivery_name"`
	Number   string `json:"delivery_number"`
	Location string `json:"location"`
}

type Distributor struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

// DistributorGroup is the body of POST /distributors: the distributors serving one city.
type DistributorGroup struct {
	Location     string        `json:"location"`
	Distributors []Distributor `json:"distributors"`
}

// ForecastRequest is the body of POST /forecast.
type ForecastRequest struct {
	Country       string  `json:"country"`
	ProductName   string  `json:"product_name"`
	Month         int     `json:"month"`
	AvgPrice      float64 `json:"avg_price"`
	Promotion     int     `json:"promotion"`
	PreviousSales int     `json:"previous_sales"`
	SeasonIndex   float64 `json:"season_index"`
	EconomicIndex float64 `json:"economic_index"`
	StockLevel    int     `json:"stock_level"`
}

type BillLine struct {
	ProductName string `json:"product_name"`
	Country     string `json:"country"`
	Quantity    int    `json:"quantity"`
}

// BillRequest is the body of POST /bill/{id}.
type BillRequest struct {
	Items []BillLine `json:"items"`
}

type RestockLine struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// RestockOrder is the body of POST /restock-order.
type RestockOrder struct {
	UserID     RetailerID    `json:"userId"`
	City       string        `json:"city"`
	OrderItems []RestockLine `json:"order_items"`
}
