package domain

import (
	"encoding/json"
	"time"
)

// ChartKey identifies one of the five dashboard charts
type ChartKey string

// Dashboard charts in render order
const (
	ChartPriceDistribution ChartKey = "price-distribution"
	ChartRatingVsPrice     ChartKey = "rating-vs-price"
	ChartTopReviewed       ChartKey = "top-reviewed"
	ChartBestValue         ChartKey = "best-value"
	ChartCorrelation       ChartKey = "correlation"
)

// ChartOrder is the fixed order charts appear on the page
var ChartOrder = []ChartKey{
	ChartPriceDistribution,
	ChartRatingVsPrice,
	ChartTopReviewed,
	ChartBestValue,
	ChartCorrelation,
}

// ChartTitles maps each chart to its section heading
var ChartTitles = map[ChartKey]string{
	ChartPriceDistribution: "1. Price Distribution per Category",
	ChartRatingVsPrice:     "2. Rating vs Log-Price (Scatter Plot)",
	ChartTopReviewed:       "3. Top 5 Reviewed Products",
	ChartBestValue:         "4. Best Value Metric per Category",
	ChartCorrelation:       "5. Correlation Matrix (Price, Rating, Reviews)",
}

// Report sources
const (
	SourceUpload  = "upload"
	SourceDefault = "default"
)

// Report is the outcome of one render pass over a listing table
type Report struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Source    string    `json:"source"`
	FileName  string    `json:"fileName"`

	RowCount int        `json:"rowCount"`
	Columns  []string   `json:"columns"`
	Preview  [][]string `json:"preview"`

	Categories        []string               `json:"categories"`
	PriceDistribution []CategoryDistribution `json:"priceDistribution"`
	RatingVsLogPrice  ScatterData            `json:"ratingVsLogPrice"`
	TopReviewed       []Listing              `json:"topReviewed"`
	BestValue         []Listing              `json:"bestValue"`
	Correlation       CorrelationMatrix      `json:"correlation"`

	Charts []Chart `json:"charts"`
}

// Chart looks up a rendered chart by key
func (r *Report) Chart(key ChartKey) (*Chart, bool) {
	for i := range r.Charts {
		if r.Charts[i].Key == key {
			return &r.Charts[i], true
		}
	}
	return nil, false
}

// Chart is one rendered visualization
type Chart struct {
	Key         ChartKey `json:"key"`
	Title       string   `json:"title"`
	SVG         []byte   `json:"-"`
	Placeholder bool     `json:"placeholder"` // true when the data was degenerate or rendering failed
}

// BoxSummary is the five-number summary drawn by a box plot
type BoxSummary struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// MarshalJSON implements json.Marshaler
func (b BoxSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]Number{
		"min":    Number(b.Min),
		"q1":     Number(b.Q1),
		"median": Number(b.Median),
		"q3":     Number(b.Q3),
		"max":    Number(b.Max),
	})
}

// CategoryDistribution holds the finite log prices of one category
type CategoryDistribution struct {
	Category  string     `json:"category"`
	Count     int        `json:"count"` // rows in the category, including non-finite prices
	LogPrices []float64  `json:"logPrices"`
	Summary   BoxSummary `json:"summary"`
}

// Point is a finite x/y pair
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScatterData holds the drawable points of a scatter chart
type ScatterData struct {
	Points   []Point `json:"points"`
	Excluded int     `json:"excluded"` // rows skipped because a coordinate was not finite
}

// CorrelationMatrix is a square matrix of pairwise Pearson coefficients
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
}

// At returns the coefficient for the labelled pair
func (m CorrelationMatrix) At(row, col string) (float64, bool) {
	ri, ci := -1, -1
	for i, l := range m.Labels {
		if l == row {
			ri = i
		}
		if l == col {
			ci = i
		}
	}
	if ri < 0 || ci < 0 {
		return 0, false
	}
	return m.Values[ri][ci], true
}

// MarshalJSON implements json.Marshaler
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	values := make([][]Number, len(m.Values))
	for i, row := range m.Values {
		values[i] = numbers(row)
	}
	return json.Marshal(struct {
		Labels []string   `json:"labels"`
		Values [][]Number `json:"values"`
	}{Labels: m.Labels, Values: values})
}
