package usecase

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/listinglens/dashboard/internal/domain"
)

// CorrelationColumns are the numeric columns compared by the correlation matrix
var CorrelationColumns = []string{
	domain.ColumnPricePKR,
	domain.ColumnRating,
	domain.ColumnReviews,
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// UniqueCategories returns the distinct main categories in order of first appearance
func UniqueCategories(rows []domain.Listing) []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, row := range rows {
		if seen[row.MainCategory] {
			continue
		}
		seen[row.MainCategory] = true
		categories = append(categories, row.MainCategory)
	}
	return categories
}

// PriceDistribution groups ln(1 + price) by category, categories in order of
// first appearance. Non-finite log prices are counted but not kept.
func PriceDistribution(rows []domain.Listing) []domain.CategoryDistribution {
	index := make(map[string]int)
	dists := make([]domain.CategoryDistribution, 0)
	for _, row := range rows {
		i, ok := index[row.MainCategory]
		if !ok {
			i = len(dists)
			index[row.MainCategory] = i
			dists = append(dists, domain.CategoryDistribution{
				Category:  row.MainCategory,
				LogPrices: []float64{},
			})
		}
		dists[i].Count++
		if lp := LogPrice(row.PricePKR); isFinite(lp) {
			dists[i].LogPrices = append(dists[i].LogPrices, lp)
		}
	}
	for i := range dists {
		dists[i].Summary = summarize(dists[i].LogPrices)
	}
	return dists
}

// summarize computes the five-number summary using empirical quantiles.
// An empty sample yields NaN everywhere.
func summarize(values []float64) domain.BoxSummary {
	if len(values) == 0 {
		nan := math.NaN()
		return domain.BoxSummary{Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return domain.BoxSummary{
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
}

// RatingVsLogPrice pairs each rating with ln(1 + price), skipping rows where
// either coordinate is not finite.
func RatingVsLogPrice(rows []domain.Listing) domain.ScatterData {
	data := domain.ScatterData{Points: make([]domain.Point, 0, len(rows))}
	for _, row := range rows {
		x, y := row.Rating, LogPrice(row.PricePKR)
		if !isFinite(x) || !isFinite(y) {
			data.Excluded++
			continue
		}
		data.Points = append(data.Points, domain.Point{X: x, Y: y})
	}
	return data
}

// TopReviewed returns the n rows with the most reviews, highest first.
// Ties keep input order and missing review counts sort last.
func TopReviewed(rows []domain.Listing, n int) []domain.Listing {
	if n <= 0 {
		return []domain.Listing{}
	}
	sorted := append([]domain.Listing(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return descending(sorted[i].Reviews, sorted[j].Reviews)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = []domain.Listing{}
	}
	return sorted
}

// descending orders a before b when a is larger; NaN sorts after everything
func descending(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

// BestValuePerCategory picks, for each category, the first row holding the
// category's maximum value metric, then orders the picks by value metric
// descending. Categories start in alphabetical order so equal metrics have a
// deterministic order. A category whose metrics are all NaN contributes its
// first row.
func BestValuePerCategory(rows []domain.Listing) []domain.Listing {
	best := make(map[string]int)
	for i, row := range rows {
		j, ok := best[row.MainCategory]
		if !ok {
			best[row.MainCategory] = i
			continue
		}
		current := rows[j].ValueMetric
		if math.IsNaN(row.ValueMetric) {
			continue
		}
		if math.IsNaN(current) || row.ValueMetric > current {
			best[row.MainCategory] = i
		}
	}

	categories := make([]string, 0, len(best))
	for category := range best {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	picks := make([]domain.Listing, 0, len(categories))
	for _, category := range categories {
		picks = append(picks, rows[best[category]])
	}
	sort.SliceStable(picks, func(i, j int) bool {
		return descending(picks[i].ValueMetric, picks[j].ValueMetric)
	})
	return picks
}

// CorrelationMatrix computes pairwise Pearson correlation between price,
// rating and reviews. Each pair uses only rows where both values are finite.
// Pairs with fewer than two observations or a constant column are NaN.
func CorrelationMatrix(rows []domain.Listing) domain.CorrelationMatrix {
	columns := [][]float64{
		make([]float64, len(rows)),
		make([]float64, len(rows)),
		make([]float64, len(rows)),
	}
	for i, row := range rows {
		columns[0][i] = row.PricePKR
		columns[1][i] = row.Rating
		columns[2][i] = row.Reviews
	}

	n := len(columns)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pearson(columns[i], columns[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			values[i][j] = r
			values[j][i] = r
		}
	}

	return domain.CorrelationMatrix{
		Labels: append([]string(nil), CorrelationColumns...),
		Values: values,
	}
}

func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if isFinite(x[i]) && isFinite(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	return math.Max(-1, math.Min(1, r))
}
