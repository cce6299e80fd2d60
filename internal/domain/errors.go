package domain

import "errors"

var (
	// ErrNoUpload is returned when a render is requested without a file and no fallback dataset applies
	ErrNoUpload = errors.New("no CSV file uploaded")

	// ErrEmptyFile is returned when the uploaded file has no header row
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrMissingColumn is returned when one or more required columns are absent from the header
	ErrMissingColumn = errors.New("missing required column")

	// ErrMalformedCSV is returned when the file cannot be parsed as a listing table
	ErrMalformedCSV = errors.New("malformed CSV")

	// ErrUploadTooLarge is returned when the upload exceeds the configured size limit
	ErrUploadTooLarge = errors.New("upload exceeds size limit")

	// ErrDefaultDatasetUnavailable is returned when the bundled default dataset could not be loaded
	ErrDefaultDatasetUnavailable = errors.New("default dataset unavailable")

	// ErrReportNotFound is returned when a report is unknown or has expired
	ErrReportNotFound = errors.New("report not found")

	// ErrChartNotFound is returned when a chart key is not part of a report
	ErrChartNotFound = errors.New("chart not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)

// IsInputError reports whether err was caused by the uploaded file itself
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoUpload) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrMalformedCSV) ||
		errors.Is(err, ErrUploadTooLarge)
}
