package usecase

import (
	"math"
	"regexp"

	"github.com/listinglens/dashboard/internal/domain"
)

// categoryPattern captures the category segment of a wholesale category URL,
// e.g. ".../Wholesale-Electronics-c-1091.html" -> "Electronics"
var categoryPattern = regexp.MustCompile(`Wholesale-(.*?)-c-\d+`)

// ExtractMainCategory returns the category segment of a category URL, or
// domain.OtherCategory when the URL does not carry one.
func ExtractMainCategory(categoryURL string) string {
	m := categoryPattern.FindStringSubmatch(categoryURL)
	if m == nil {
		return domain.OtherCategory
	}
	return m[1]
}

// LogPrice is ln(1 + price)
func LogPrice(price float64) float64 {
	return math.Log1p(price)
}

// ValueMetric is rating / ln(1 + price).
// A zero price divides by zero and prices at or below -1 give a NaN or
// infinite logarithm; both propagate instead of failing.
func ValueMetric(rating, price float64) float64 {
	return rating / LogPrice(price)
}

// Derive fills main_category and value_metric for every row in place.
// The number of rows never changes.
func Derive(table *domain.Table) {
	if table == nil {
		return
	}
	for i := range table.Rows {
		row := &table.Rows[i]
		row.MainCategory = ExtractMainCategory(row.CategoryURL)
		row.ValueMetric = ValueMetric(row.Rating, row.PricePKR)
	}
}
