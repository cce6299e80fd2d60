package charts

import (
	"bytes"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/listinglens/dashboard/internal/domain"
)

// NoDataText labels placeholder charts
const NoDataText = "no data to display"

// fallbackSVG is served only if even the placeholder plot cannot be drawn
const fallbackSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="320" height="40"><text x="10" y="25">` + NoDataText + `</text></svg>`

// Renderer draws dashboard charts as SVG. Box plots, horizontal bars and
// heatmaps use gonum/plot; scatter and vertical bar charts use go-chart.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer producing charts of the given size
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}
	return &Renderer{width: width, height: height}
}

// PriceDistribution draws one box of ln(1 + price) per category
func (r *Renderer) PriceDistribution(title string, dists []domain.CategoryDistribution) ([]byte, bool, error) {
	empty := true
	for _, d := range dists {
		if len(d.LogPrices) > 0 {
			empty = false
			break
		}
	}
	return r.render(title, empty, func() ([]byte, error) {
		return r.boxPlot(title, dists)
	})
}

// RatingVsLogPrice draws the rating/log-price scatter
func (r *Renderer) RatingVsLogPrice(title string, data domain.ScatterData) ([]byte, bool, error) {
	return r.render(title, len(data.Points) == 0, func() ([]byte, error) {
		return r.scatter(title, data.Points)
	})
}

// TopReviewed draws review counts as horizontal bars, most reviewed on top
func (r *Renderer) TopReviewed(title string, listings []domain.Listing) ([]byte, bool, error) {
	empty := true
	for _, l := range listings {
		if isFinite(l.Reviews) {
			empty = false
			break
		}
	}
	return r.render(title, empty, func() ([]byte, error) {
		return r.horizontalBars(title, listings)
	})
}

// BestValue draws the best value metric of each category as vertical bars
func (r *Renderer) BestValue(title string, listings []domain.Listing) ([]byte, bool, error) {
	empty := true
	for _, l := range listings {
		if isFinite(l.ValueMetric) {
			empty = false
			break
		}
	}
	return r.render(title, empty, func() ([]byte, error) {
		return r.valueBars(title, listings)
	})
}

// Correlation draws the correlation matrix as an annotated heatmap. A matrix
// without a single finite coefficient is a placeholder.
func (r *Renderer) Correlation(title string, matrix domain.CorrelationMatrix) ([]byte, bool, error) {
	empty := true
	for _, row := range matrix.Values {
		for _, v := range row {
			if isFinite(v) {
				empty = false
			}
		}
	}
	return r.render(title, empty, func() ([]byte, error) {
		return r.heatmap(title, matrix)
	})
}

// render runs draw and turns degenerate data, errors and panics into a placeholder
func (r *Renderer) render(title string, empty bool, draw func() ([]byte, error)) (svg []byte, placeholder bool, err error) {
	if empty {
		return r.placeholder(title), true, nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			svg, placeholder = r.placeholder(title), true
			err = fmt.Errorf("render %q: panic: %v", title, rec)
		}
	}()

	svg, err = draw()
	if err != nil {
		return r.placeholder(title), true, fmt.Errorf("render %q: %w", title, err)
	}
	return svg, false, nil
}

// placeholder draws empty axes carrying the chart title
func (r *Renderer) placeholder(title string) []byte {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = NoDataText

	svg, err := r.writePlot(p)
	if err != nil {
		return []byte(fallbackSVG)
	}
	return svg
}

// writePlot encodes a gonum plot as SVG
func (r *Renderer) writePlot(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(vg.Points(float64(r.width)), vg.Points(float64(r.height)), "svg")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// truncate shortens long axis labels
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
