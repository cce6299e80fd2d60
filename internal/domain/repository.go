package domain

import (
	"context"
	"io"
)

// ReportStore keeps rendered reports for the current session
type ReportStore interface {
	Save(ctx context.Context, report *Report) error
	Get(ctx context.Context, id string) (*Report, error)
}

// TableParser turns an uploaded file into a listing table
type TableParser interface {
	Parse(r io.Reader) (*Table, error)
}

// DefaultDataset provides the bundled dataset used when nothing is uploaded
type DefaultDataset interface {
	Open() (name string, r io.Reader, err error)
}

// ChartRenderer draws the dashboard charts as SVG.
// Degenerate data yields a placeholder chart and a nil error. A non-nil error
// means rendering failed; svg is then still a usable placeholder.
type ChartRenderer interface {
	PriceDistribution(title string, dists []CategoryDistribution) (svg []byte, placeholder bool, err error)
	RatingVsLogPrice(title string, data ScatterData) (svg []byte, placeholder bool, err error)
	TopReviewed(title string, listings []Listing) (svg []byte, placeholder bool, err error)
	BestValue(title string, listings []Listing) (svg []byte, placeholder bool, err error)
	Correlation(title string, matrix CorrelationMatrix) (svg []byte, placeholder bool, err error)
}
