package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/listinglens/dashboard/internal/domain"
)

// TopReviewedCount is how many listings the top-reviewed chart shows
const TopReviewedCount = 5

// DashboardServiceConfig holds configuration for the dashboard service
type DashboardServiceConfig struct {
	PreviewRows            int
	UseDefaultWhenNoUpload bool
}

// Upload is a file handed in by the user
type Upload struct {
	Name   string
	Reader io.Reader
}

// DashboardService runs the full analysis pipeline for one uploaded table
type DashboardService struct {
	parser      domain.TableParser
	renderer    domain.ChartRenderer
	store       domain.ReportStore
	defaults    domain.DefaultDataset
	previewRows int
	useDefault  bool
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service with dependencies.
// store and defaults may be nil.
func NewDashboardService(
	parser domain.TableParser,
	renderer domain.ChartRenderer,
	store domain.ReportStore,
	defaults domain.DefaultDataset,
	config DashboardServiceConfig,
) *DashboardService {
	previewRows := config.PreviewRows
	if previewRows <= 0 {
		previewRows = 5
	}

	return &DashboardService{
		parser:      parser,
		renderer:    renderer,
		store:       store,
		defaults:    defaults,
		previewRows: previewRows,
		useDefault:  config.UseDefaultWhenNoUpload,
		now:         time.Now,
	}
}

// Build parses the upload (or the default dataset), derives the computed
// columns and renders all five charts. Every call starts from scratch.
// Flow: resolve input -> parse -> preview -> derive -> analyse -> render -> store
func (s *DashboardService) Build(ctx context.Context, upload *Upload) (*domain.Report, error) {
	name, r, source, err := s.resolveInput(upload)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.parser.Parse(r)
	if err != nil {
		log.Warn().Err(err).Str("file", name).Str("source", source).Msg("failed to parse listing table")
		return nil, err
	}

	report := &domain.Report{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
		Source:    source,
		FileName:  name,
		RowCount:  table.Len(),
		Columns:   table.Columns,
		Preview:   table.Head(s.previewRows),
	}

	Derive(table)
	rows := table.Rows

	report.Categories = UniqueCategories(rows)
	report.PriceDistribution = PriceDistribution(rows)
	report.RatingVsLogPrice = RatingVsLogPrice(rows)
	report.TopReviewed = TopReviewed(rows, TopReviewedCount)
	report.BestValue = BestValuePerCategory(rows)
	report.Correlation = CorrelationMatrix(rows)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report.Charts = s.renderCharts(report)

	if s.store != nil {
		if err := s.store.Save(ctx, report); err != nil {
			// The page still renders; only the chart links stop working
			log.Warn().Err(err).Str("report", report.ID).Msg("failed to store report")
		}
	}

	log.Info().
		Str("report", report.ID).
		Str("file", name).
		Str("source", source).
		Int("rows", report.RowCount).
		Int("categories", len(report.Categories)).
		Msg("dashboard rendered")

	return report, nil
}

// resolveInput applies the upload precedence: an explicit upload always wins,
// the default dataset is only used when configured to stand in for a missing upload.
func (s *DashboardService) resolveInput(upload *Upload) (string, io.Reader, string, error) {
	if upload != nil && upload.Reader != nil {
		return upload.Name, upload.Reader, domain.SourceUpload, nil
	}
	if !s.useDefault || s.defaults == nil {
		return "", nil, "", domain.ErrNoUpload
	}
	name, r, err := s.defaults.Open()
	if err != nil {
		return "", nil, "", err
	}
	return name, r, domain.SourceDefault, nil
}

// renderCharts draws the five charts in page order. A chart that fails to
// render degrades to its placeholder instead of failing the pass.
func (s *DashboardService) renderCharts(report *domain.Report) []domain.Chart {
	charts := make([]domain.Chart, 0, len(domain.ChartOrder))
	for _, key := range domain.ChartOrder {
		title := domain.ChartTitles[key]

		var (
			svg         []byte
			placeholder bool
			err         error
		)
		switch key {
		case domain.ChartPriceDistribution:
			svg, placeholder, err = s.renderer.PriceDistribution(title, report.PriceDistribution)
		case domain.ChartRatingVsPrice:
			svg, placeholder, err = s.renderer.RatingVsLogPrice(title, report.RatingVsLogPrice)
		case domain.ChartTopReviewed:
			svg, placeholder, err = s.renderer.TopReviewed(title, report.TopReviewed)
		case domain.ChartBestValue:
			svg, placeholder, err = s.renderer.BestValue(title, report.BestValue)
		case domain.ChartCorrelation:
			svg, placeholder, err = s.renderer.Correlation(title, report.Correlation)
		}
		if err != nil {
			log.Warn().Err(err).Str("chart", string(key)).Str("report", report.ID).Msg("chart degraded to placeholder")
			placeholder = true
		}

		charts = append(charts, domain.Chart{
			Key:         key,
			Title:       title,
			SVG:         svg,
			Placeholder: placeholder,
		})
	}
	return charts
}

// Report returns a previously rendered report
func (s *DashboardService) Report(ctx context.Context, id string) (*domain.Report, error) {
	if s.store == nil {
		return nil, domain.ErrReportNotFound
	}
	return s.store.Get(ctx, id)
}

// Chart returns one chart of a previously rendered report
func (s *DashboardService) Chart(ctx context.Context, id string, key domain.ChartKey) (*domain.Chart, error) {
	report, err := s.Report(ctx, id)
	if err != nil {
		return nil, err
	}
	chart, ok := report.Chart(key)
	if !ok {
		return nil, domain.ErrChartNotFound
	}
	return chart, nil
}
