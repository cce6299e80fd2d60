package charts

import "github.com/wcharczuk/go-chart/v2/drawing"

// Seaborn-like palettes. drawing.Color satisfies color.Color, so the same
// values feed both go-chart and gonum/plot.
var (
	pastel = hexColors(
		"a1c9f4", "ffb482", "8de5a1", "ff9f9b", "d0bbff",
		"debb9b", "fab0e4", "cfcfcf", "fffea3", "b9f2f0",
	)
	magma = hexColors("000004", "3b0f70", "8c2981", "de4968", "fe9f6d", "fcfdbf")
	viridis = hexColors(
		"440154", "482878", "3e4989", "31688e", "26828e",
		"1f9e89", "35b779", "6ece58", "b5de2b", "fde725",
	)

	scatterColor = drawing.ColorFromHex("1f77b4")
	gridColor    = drawing.ColorFromHex("b0b0b0")
)

func hexColors(hex ...string) []drawing.Color {
	colors := make([]drawing.Color, len(hex))
	for i, h := range hex {
		colors[i] = drawing.ColorFromHex(h)
	}
	return colors
}

// pick cycles through a palette
func pick(palette []drawing.Color, i int) drawing.Color {
	return palette[i%len(palette)]
}
