package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/listinglens/dashboard/internal/delivery/page"
	"github.com/listinglens/dashboard/internal/domain"
	"github.com/listinglens/dashboard/internal/usecase"
)

// uploadField is the multipart form field carrying the CSV file
const uploadField = "file"

// DefaultMaxUploadBytes applies when no limit is configured
const DefaultMaxUploadBytes = 32 << 20

var errNotConfigured = errors.New("dashboard service not configured")

// DashboardService is the usecase the handlers drive
type DashboardService interface {
	Build(ctx context.Context, upload *usecase.Upload) (*domain.Report, error)
	Report(ctx context.Context, id string) (*domain.Report, error)
	Chart(ctx context.Context, id string, key domain.ChartKey) (*domain.Chart, error)
}

// ReportCounter reports how many reports are currently held
type ReportCounter interface {
	Size() int
}

// DatasetStatus reports whether the default dataset loaded at startup
type DatasetStatus interface {
	Err() error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	dashboard      DashboardService
	maxUploadBytes int64
	reports        ReportCounter
	defaults       DatasetStatus
}

// NewHandler creates a new HTTP handler. A nil service makes every dashboard
// endpoint answer 501.
func NewHandler(dashboard DashboardService, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		dashboard:      dashboard,
		maxUploadBytes: maxUploadBytes,
	}
}

// WithStatus attaches the report store and default dataset to /health
func (h *Handler) WithStatus(reports ReportCounter, defaults DatasetStatus) *Handler {
	h.reports = reports
	h.defaults = defaults
	return h
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"service": "listinglens-dashboard",
		"version": "1.0.0",
	}
	if h.reports != nil {
		body["reports"] = h.reports.Size()
	}
	if h.defaults != nil {
		body["default_dataset"] = "loaded"
		if err := h.defaults.Err(); err != nil {
			body["default_dataset"] = "unavailable"
		}
	}
	c.JSON(http.StatusOK, body)
}

// Index renders the dashboard page without an upload
func (h *Handler) Index(c *gin.Context) {
	h.renderPage(c, nil)
}

// Upload renders the dashboard page for an uploaded CSV
func (h *Handler) Upload(c *gin.Context) {
	upload, closer, err := h.readUpload(c)
	if err != nil {
		c.HTML(statusFor(err), page.TemplateName, page.Failed(err))
		return
	}
	if closer != nil {
		defer closer.Close()
	}
	h.renderPage(c, upload)
}

func (h *Handler) renderPage(c *gin.Context, upload *usecase.Upload) {
	if h.dashboard == nil {
		c.HTML(http.StatusNotImplemented, page.TemplateName, page.Failed(errNotConfigured))
		return
	}

	report, err := h.dashboard.Build(c.Request.Context(), upload)
	switch {
	case err == nil:
		c.HTML(http.StatusOK, page.TemplateName, page.Rendered(report, chartsPath(report.ID)))
	case errors.Is(err, domain.ErrNoUpload):
		c.HTML(http.StatusOK, page.TemplateName, page.AwaitingUpload())
	default:
		c.HTML(statusFor(err), page.TemplateName, page.Failed(err))
	}
}

// chartLink points at one chart of a stored report
type chartLink struct {
	Key         domain.ChartKey `json:"key"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Placeholder bool            `json:"placeholder"`
}

// reportResponse is a report with its charts replaced by links
type reportResponse struct {
	*domain.Report
	Charts []chartLink `json:"charts"`
}

func newReportResponse(report *domain.Report) reportResponse {
	links := make([]chartLink, 0, len(report.Charts))
	for _, chart := range report.Charts {
		links = append(links, chartLink{
			Key:         chart.Key,
			Title:       chart.Title,
			URL:         chartsPath(report.ID) + "/" + string(chart.Key),
			Placeholder: chart.Placeholder,
		})
	}
	return reportResponse{Report: report, Charts: links}
}

// CreateReport runs the pipeline for an uploaded CSV and returns the report as JSON
func (h *Handler) CreateReport(c *gin.Context) {
	if h.dashboard == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": errNotConfigured.Error()})
		return
	}

	upload, closer, err := h.readUpload(c)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	report, err := h.dashboard.Build(c.Request.Context(), upload)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, newReportResponse(report))
}

// GetReport returns a stored report as JSON
func (h *Handler) GetReport(c *gin.Context) {
	if h.dashboard == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": errNotConfigured.Error()})
		return
	}

	report, err := h.dashboard.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newReportResponse(report))
}

// GetChart serves one chart of a stored report as SVG
func (h *Handler) GetChart(c *gin.Context) {
	if h.dashboard == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": errNotConfigured.Error()})
		return
	}

	key := domain.ChartKey(strings.TrimSuffix(c.Param("chart"), ".svg"))
	chart, err := h.dashboard.Chart(c.Request.Context(), c.Param("id"), key)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", chart.SVG)
}

// readUpload extracts the CSV from a multipart request. A request without a
// file (or without a multipart body) is not an error: it yields a nil upload.
func (h *Handler) readUpload(c *gin.Context) (*usecase.Upload, io.Closer, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	file, header, err := c.Request.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
			return nil, nil, fmt.Errorf("%w: limit is %d bytes", domain.ErrUploadTooLarge, h.maxUploadBytes)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return nil, nil, nil
		}
		log.Warn().Err(err).Msg("unreadable upload")
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrMalformedCSV, err)
	}

	return &usecase.Upload{Name: header.Filename, Reader: file}, file, nil
}

func chartsPath(reportID string) string {
	return "/api/v1/reports/" + reportID + "/charts"
}

// statusFor maps pipeline errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case domain.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDefaultDatasetUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrReportNotFound), errors.Is(err, domain.ErrChartNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
