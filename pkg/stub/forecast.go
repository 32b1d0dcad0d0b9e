package stub

import "strings"

var countryCodes = map[string]int{"denmark": 0, "finland": 1, "iceland": 2, "norway": 3, "sweden": 4}

var productCodes = map[string]int{
	"conditioner": 0,
	"detergent":   1,
	"lotion":      2,
	"shampoo":     3,
	"soap":        4,
	"tooth paste": 5,
	"toothpaste":  5,
}

// Monthly adjustment, January first.
var seasonalOffset = [12]int{0, 0, 10, 25, 40, 50, 35, 20, 5, 0, -5, -10}

// forecastSales derives a stable pseudo-forecast from the product, country
// and month. Unknown products or countries forecast zero.
func forecastSales(product, country string, month int) int {
	p, okP := productCodes[strings.ToLower(product)]
	c, okC := countryCodes[strings.ToLower(country)]
	if !okP || !okC || month <= 0 {
		return 0
	}
	seed := p*97 + c*53 + month*11
	base := 200 + seed%200
	return max(0, base+seasonalOffset[(month-1)%12])
}
