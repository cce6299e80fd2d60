package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/listinglens/dashboard/internal/domain"
)

const productLabelRunes = 40

// boxPlot draws one box per category; categories without finite prices keep
// their axis slot but get no box.
func (r *Renderer) boxPlot(title string, dists []domain.CategoryDistribution) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "main_category"
	p.Y.Label.Text = "ln(1 + price_pkr)"

	names := make([]string, len(dists))
	for i, d := range dists {
		names[i] = d.Category
		if len(d.LogPrices) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(d.LogPrices))
		if err != nil {
			return nil, fmt.Errorf("box for %q: %w", d.Category, err)
		}
		box.FillColor = pick(pastel, i)
		p.Add(box)
	}

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return r.writePlot(p)
}

// horizontalBars draws one bar per listing, the first listing at the top
func (r *Renderer) horizontalBars(title string, listings []domain.Listing) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "reviews"
	p.Y.Label.Text = "product_name"

	var labels []string
	slot := 0
	for i := len(listings) - 1; i >= 0; i-- {
		l := listings[i]
		if !isFinite(l.Reviews) {
			continue
		}
		bar, err := plotter.NewBarChart(plotter.Values{l.Reviews}, vg.Points(18))
		if err != nil {
			return nil, fmt.Errorf("bar for %q: %w", l.ProductName, err)
		}
		bar.Horizontal = true
		bar.XMin = float64(slot)
		bar.Color = pick(magma, i)
		bar.LineStyle.Width = 0
		p.Add(bar)

		labels = append(labels, truncate(l.ProductName, productLabelRunes))
		slot++
	}
	p.NominalY(labels...)

	return r.writePlot(p)
}

// correlationGrid adapts a correlation matrix to plotter.GridXYZ with the
// first label in the top row
type correlationGrid struct {
	m domain.CorrelationMatrix
}

func (g correlationGrid) Dims() (c, r int) {
	n := len(g.m.Labels)
	return n, n
}

func (g correlationGrid) Z(c, r int) float64 {
	n := len(g.m.Labels)
	return g.m.Values[n-1-r][c]
}

func (g correlationGrid) X(c int) float64 { return float64(c) }

func (g correlationGrid) Y(r int) float64 { return float64(r) }

// heatmap draws the correlation matrix with each cell annotated to 2 decimals
func (r *Renderer) heatmap(title string, matrix domain.CorrelationMatrix) ([]byte, error) {
	grid := correlationGrid{m: matrix}
	n := len(matrix.Labels)

	colors := moreland.SmoothBlueRed()
	colors.SetMin(-1)
	colors.SetMax(1)

	hm := plotter.NewHeatMap(grid, colors.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 220}

	p := plot.New()
	p.Title.Text = title
	p.Add(hm)

	xys := make(plotter.XYs, 0, n*n)
	annotations := make([]string, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			xys = append(xys, plotter.XY{X: grid.X(col), Y: grid.Y(row)})
			annotations = append(annotations, fmt.Sprintf("%.2f", grid.Z(col, row)))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: annotations})
	if err != nil {
		return nil, fmt.Errorf("annotations: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(labels)

	rows := make([]string, n)
	for i, label := range matrix.Labels {
		rows[n-1-i] = label
	}
	p.NominalX(matrix.Labels...)
	p.NominalY(rows...)

	return r.writePlot(p)
}
