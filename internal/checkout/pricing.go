package checkout

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	FreeShippingThreshold = decimal.NewFromInt(35)
	ShippingFee           = decimal.RequireFromString("4.99")
	TaxRate               = decimal.RequireFromString("0.08")
)

type Line struct {
	Price    float64
	Quantity uint
}

type Totals struct {
	Subtotal              decimal.Decimal `json:"subtotal"`
	Shipping              decimal.Decimal `json:"shipping"`
	Tax                   decimal.Decimal `json:"tax"`
	Total                 decimal.Decimal `json:"total"`
	FreeShipping          bool            `json:"freeShipping"`
	FreeShippingRemaining decimal.Decimal `json:"freeShippingRemaining"`
}

func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func LineTotal(price float64, qty uint) decimal.Decimal {
	return Money(price).Mul(decimal.NewFromInt(int64(qty)))
}

// Compute prices a cart: free shipping from the threshold, tax on the subtotal.
func Compute(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.Price, l.Quantity))
	}

	t := Totals{Subtotal: subtotal, FreeShippingRemaining: decimal.Zero}
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		t.Shipping = decimal.Zero
		t.FreeShipping = true
	} else {
		t.Shipping = ShippingFee
		t.FreeShippingRemaining = FreeShippingThreshold.Sub(subtotal)
	}
	t.Tax = subtotal.Mul(TaxRate).Round(2)
	t.Total = subtotal.Add(t.Shipping).Add(t.Tax)
	return t
}

const OrderPrefix = "BIB-"

// OrderNumber encodes the unix millisecond timestamp in upper-case base 36.
func OrderNumber(now time.Time) string {
	return OrderPrefix + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}
