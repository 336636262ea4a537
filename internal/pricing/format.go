package pricing

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount as dollars with thousands separators, e.g. $1,234.50.
// Rounding happens in decimal before the float conversion.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", rounded.Abs().InexactFloat64())
}

// FormatPercent renders a percentage such as 10 or 2.5 as "10%" or "2.5%".
func FormatPercent(amount decimal.Decimal) string {
	return amount.String() + "%"
}
