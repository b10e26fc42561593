package view

import (
	"html/template"
	"math"

	"github.com/dustin/go-humanize"
)

var funcs = template.FuncMap{
	"price": formatPrice,
	"miles": formatMiles,
}

// formatPrice renders a whole-dollar amount with thousands separators.
func formatPrice(p float64) string {
	return "$" + humanize.Comma(int64(math.Round(p)))
}

func formatMiles(m int) string {
	return humanize.Comma(int64(m))
}
