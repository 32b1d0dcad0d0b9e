// pkg/inventory/fixtures.go

package inventory

import "time"

// Static test data sent by a smoke run. Only the username and the expiry
// dates depend on the clock.

const (
	retailerEmail    = "mmanishrshetty@gmail.com"
	retailerRegion   = "sweden"
	distributorEmail = "dhanushinsit@gmail.com"
	restockCity      = "stockholm"
)

func retailerFixture(now time.Time) RetailerRequest {
	return RetailerRequest{
		Username: "nordic_retail_" + now.Format("20060102_150405"),
		Email:    retailerEmail,
		Region:   retailerRegion,
	}
}

// inventoryFixture returns the three items added to a new retailer, with
// expiry dates counted in days from today.
func inventoryFixture(now time.Time) []InventoryItem {
	expires := func(days int) string {
		return now.AddDate(0, 0, days).Format(time.DateOnly)
	}
	return []InventoryItem{
		{ProductName: "shampoo", Quantity: 100, ExpiryDate: expires(365), Country: "sweden", Month: 11, CostPrice: 25, SellingPrice: 50, CurrentPrice: 48.99, Sales: 50},
		{ProductName: "soap", Quantity: 200, ExpiryDate: expires(730), Country: "sweden", Month: 11, CostPrice: 10, SellingPrice: 20, CurrentPrice: 18.50, Sales: 150},
		{ProductName: "lotion", Quantity: 15, ExpiryDate: expires(180), Country: "denmark", Month: 11, CostPrice: 40, SellingPrice: 70, CurrentPrice: 65.00, Sales: 10},
	}
}

func deliveryAgentFixture() DeliveryAgent {
	return DeliveryAgent{
		Name:     "Speedy Gonzales",
		Number:   "123-456-7890",
		Location: "stockholm",
	}
}

func distributorFixture() []DistributorGroup {
	group := func(location, name, contact string) DistributorGroup {
		return DistributorGroup{
			Location:     location,
			Distributors: []Distributor{{Name: name, Contact: contact, Email: distributorEmail}},
		}
	}
	return []DistributorGroup{
		group("oslo", "Nordic Distributors Inc.", "555-1234"),
		group("stockholm", "Stockholm Supply Co.", "555-5678"),
		group("copenhagen", "Copenhagen Distribution Ltd.", "555-9012"),
	}
}

func forecastFixture() ForecastRequest {
	return ForecastRequest{
		Country:       "sweden",
		ProductName:   "shampoo",
		Month:         12,
		AvgPrice:      49,
		Promotion:     0,
		PreviousSales: 50,
		SeasonIndex:   1.1,
		EconomicIndex: 1.0,
		StockLevel:    100,
	}
}

func billFixture() BillRequest {
	return BillRequest{Items: []BillLine{
		{ProductName: "shampoo", Country: "sweden", Quantity: 2},
		{ProductName: "soap", Country: "sweden", Quantity: 5},
	}}
}

func restockFixture(id RetailerID) RestockOrder {
	return RestockOrder{
		UserID:     id,
		City:       restockCity,
		OrderItems: []RestockLine{{ProductName: "lotion", Quantity: 50}},
	}
}
