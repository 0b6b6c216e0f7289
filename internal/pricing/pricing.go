// Package pricing computes client discounts and discounted line amounts.
package pricing

import (
	"orderdesk/internal/domain"

	"github.com/shopspring/decimal"
)

// VolumeThreshold is the quantity from which a client's volume discount applies.
const VolumeThreshold = 10

var hundred = decimal.NewFromInt(100)

// DiscountPercent returns the percent discount a client gets for a line of quantity units.
// Fixed and volume discounts add up; the result is clamped to [0, 100].
func DiscountPercent(client *domain.Client, quantity int) float64 {
	if client == nil {
		return 0
	}
	pct := client.Terms.Fixed()
	if quantity >= VolumeThreshold {
		pct += client.Terms.Volume()
	}
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// LineSubtotal returns unitPrice × quantity × (1 − percent/100), truncated to the cent.
func LineSubtotal(unitPrice float64, quantity int, percent float64) float64 {
	if quantity <= 0 {
		return 0
	}
	gross := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(hundred))
	v, _ := gross.Mul(factor).Truncate(2).Float64()
	return v
}

// PriceLine builds an order line for quantity units of product bought by client.
func PriceLine(client *domain.Client, product domain.Product, quantity int) domain.OrderLine {
	pct := DiscountPercent(client, quantity)
	return domain.OrderLine{
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		Discount:  pct,
		Subtotal:  LineSubtotal(product.Price, quantity, pct),
	}
}

// Total sums the line subtotals as given and rounds the sum to the cent.
// Subtotals priced by PriceLine are already whole cents, so rounding only
// changes totals of lines posted with sub-cent subtotals.
func Total(lines []domain.OrderLine) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Subtotal))
	}
	v, _ := sum.Round(2).Float64()
	return v
}
