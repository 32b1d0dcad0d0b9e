// pkg/stub/store.go

package stub

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// retailer is everything the stub keeps for one user.
type retailer struct {
	ID        string
	Username  string
	Email     string
	Region    string
	CreatedAt time.Time

	Items  []Item
	Agents []Agent
	// stock is keyed by stockKey(product, country).
	stock map[string]*StockRow
}

// Item is one row of a retailer's inventory history.
type Item struct {
	ID           string   `json:"_id"`
	ProductName  string   `json:"product_name"`
	Quantity     int      `json:"Quantity"`
	ExpiryDate   *string  `json:"Expiry_Date"`
	Country      string   `json:"country"`
	Month        int      `json:"month"`
	CostPrice    *float64 `json:"cost_price"`
	SellingPrice *float64 `json:"selling_price"`
	Sales        float64  `json:"sales"`
	CreatedAt    string   `json:"createdAt"`
}

type Agent struct {
	ID        string `json:"_id"`
	Name      string `json:"delivery_name"`
	Number    string `json:"delivery_number"`
	Location  string `json:"location"`
	CreatedAt string `json:"createdAt"`
}

// StockRow is the current stock of one product in one country.
type StockRow struct {
	ProductName  string  `json:"product_name"`
	Country      string  `json:"country"`
	Quantity     int     `json:"quantity"`
	CurrentPrice float64 `json:"current_price"`
	UpdatedAt    string  `json:"updatedAt"`
}

type Distributor struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

type RestockOrder struct {
	ID         string        `json:"orderId"`
	UserID     string        `json:"userId"`
	City       string        `json:"city"`
	OrderItems []RestockLine `json:"order_items"`
	Status     string        `json:"status"`
	CreatedAt  string        `json:"createdAt"`
}

type RestockLine struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// Store is the stub's in-memory state. Handlers run concurrently, so every
// method takes the lock.
type Store struct {
	mu           sync.Mutex
	now          func() time.Time
	retailers    map[string]*retailer
	usernames    map[string]string
	distributors map[string][]Distributor
	orders       []RestockOrder
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:          time.Now,
		retailers:    make(map[string]*retailer),
		usernames:    make(map[string]string),
		distributors: make(map[string][]Distributor),
	}
}

func stockKey(product, country string) string {
	return strings.ToLower(product) + "\x00" + strings.ToLower(country)
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// CreateRetailer registers username and returns its new ID. ok is false if
// the username is taken.
func (s *Store) CreateRetailer(username, email, region string) (id string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernames[username]; exists {
		return "", false
	}
	id = uuid.NewString()
	s.retailers[id] = &retailer{
		ID:        id,
		Username:  username,
		Email:     email,
		Region:    region,
		CreatedAt: s.now(),
		stock:     make(map[string]*StockRow),
	}
	s.usernames[username] = id
	return id, true
}

// Exists reports whether a retailer with this ID exists.
func (s *Store) Exists(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.retailers[userID]
	return ok
}

// AddItem appends an inventory row and adds its quantity to the current
// stock. currentPrice, when set, becomes the stock's price.
func (s *Store) AddItem(userID string, item Item, currentPrice *float64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.retailers[userID]
	if !ok {
		return "", false
	}
	item.ID = uuid.NewString()
	item.CreatedAt = s.timestamp()
	r.Items = append(r.Items, item)

	key := stockKey(item.ProductName, item.Country)
	row, ok := r.stock[key]
	if !ok {
		row = &StockRow{ProductName: item.ProductName, Country: item.Country}
		r.stock[key] = row
	}
	row.Quantity += item.Quantity
	if currentPrice != nil {
		row.CurrentPrice = *currentPrice
	}
	row.UpdatedAt = s.timestamp()
	return item.ID, true
}

// Items returns a copy of the retailer's inventory rows.
func (s *Store) Items(userID string) ([]Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.retailers[userID]
	if !ok {
		return nil, false
	}
	items := make([]Item, len(r.Items))
	copy(items, r.Items)
	return items, true
}

func (s *Store) AddAgent(userID string, agent Agent) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.retailers[userID]
	if !ok {
		return "", false
	}
	agent.ID = uuid.NewString()
	agent.CreatedAt = s.timestamp()
	r.Agents = append(r.Agents, agent)
	return agent.ID, true
}

// AddDistributors appends distributors to a city and returns how many the city now has.
func (s *Store) AddDistributors(location string, ds []Distributor) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(location)
	s.distributors[key] = append(s.distributors[key], ds...)
	return len(s.distributors[key])
}

// Distributors returns the distributors registered for a city.
func (s *Store) Distributors(location string) []Distributor {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := s.distributors[strings.ToLower(location)]
	out := make([]Distributor, len(ds))
	copy(out, ds)
	return out
}

// Sell takes qty units of a product off the stock, never going below zero,
// and returns the price each and the remaining quantity.
func (s *Store) Sell(userID, product, country string, qty int) (price float64, remaining int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.retailers[userID]
	if !ok {
		return 0, 0, false
	}
	key := stockKey(product, country)
	row, exists := r.stock[key]
	if !exists {
		row = &StockRow{ProductName: product, Country: country}
		r.stock[key] = row
	}
	row.Quantity -= qty
	if row.Quantity < 0 {
		row.Quantity = 0
	}
	row.UpdatedAt = s.timestamp()
	return row.CurrentPrice, row.Quantity, true
}

// LowStock returns the stock rows below threshold, sorted by product then country.
func (s *Store) LowStock(userID string, threshold int) ([]StockRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.retailers[userID]
	if !ok {
		return nil, false
	}
	low := []StockRow{}
	for _, row := range r.stock {
		if row.Quantity < threshold {
			low = append(low, *row)
		}
	}
	sort.Slice(low, func(i, j int) bool {
		if low[i].ProductName != low[j].ProductName {
			return low[i].ProductName < low[j].ProductName
		}
		return low[i].Country < low[j].Country
	})
	return low, true
}

// PlaceOrder records a restock order for an existing retailer.
func (s *Store) PlaceOrder(userID, city string, lines []RestockLine) (RestockOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.retailers[userID]; !ok {
		return RestockOrder{}, false
	}
	order := RestockOrder{
		ID:         uuid.NewString(),
		UserID:     userID,
		City:       city,
		OrderItems: append([]RestockLine(nil), lines...),
		Status:     "placed",
		CreatedAt:  s.timestamp(),
	}
	s.orders = append(s.orders, order)
	return order, true
}

// Orders returns every restock order placed so far.
func (s *Store) Orders() []RestockOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RestockOrder(nil), s.orders...)
}
