package charts

import (
	"bytes"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/listinglens/dashboard/internal/domain"
)

// scatterAlpha is 60% opacity
const scatterAlpha = 153

// pointStyle renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// gridStyle draws dashed major gridlines
func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor:     gridColor.WithAlpha(128),
		StrokeWidth:     1,
		StrokeDashArray: []float64{4, 4},
	}
}

// paddedRange spans the values; go-chart refuses a zero-width range, so a
// single distinct value is widened by one on each side.
func paddedRange(values []float64) *chart.ContinuousRange {
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if max-min == 0 {
		min--
		max++
	}
	return &chart.ContinuousRange{Min: min, Max: max}
}

// scatter draws finite rating/log-price points
func (r *Renderer) scatter(title string, points []domain.Point) ([]byte, error) {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, pt := range points {
		xs = append(xs, pt.X)
		ys = append(ys, pt.Y)
	}
	// Pad to at least two values for go-chart
	if len(xs) == 1 {
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "rating",
			Range:          paddedRange(xs),
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "ln(1 + price_pkr)",
			Range:          paddedRange(ys),
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "listings",
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(scatterColor.WithAlpha(scatterAlpha)),
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// valueBars draws the finite best value metrics as vertical bars
func (r *Renderer) valueBars(title string, listings []domain.Listing) ([]byte, error) {
	bars := make([]chart.Value, 0, len(listings))
	values := make([]float64, 0, len(listings)+1)
	values = append(values, 0)
	for i, l := range listings {
		if !isFinite(l.ValueMetric) {
			continue
		}
		col := pick(viridis, i)
		bars = append(bars, chart.Value{
			Label: l.MainCategory,
			Value: l.ValueMetric,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
		values = append(values, l.ValueMetric)
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth(len(bars), r.width),
		Background: chart.Style{Padding: chart.Box{Top: 48, Bottom: 96}},
		XAxis:      chart.Style{TextRotationDegrees: 45, FontSize: 9},
		YAxis: chart.YAxis{
			Name:  "value_metric",
			Range: paddedRange(values),
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// barWidth fits n bars with equal gaps into the plot width
func barWidth(n, width int) int {
	if n == 0 {
		return 40
	}
	w := (width - 120) / (2 * n)
	if w > 40 {
		return 40
	}
	if w < 4 {
		return 4
	}
	return w
}
