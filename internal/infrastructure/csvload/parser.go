package csvload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cast"

	"github.com/listinglens/dashboard/internal/domain"
)

const utf8BOM = "\ufeff"

// Parser reads CSV listing tables
type Parser struct{}

// NewParser creates a new CSV parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a header row followed by data rows. All required columns must
// be present; extra columns are kept for the preview only. Rows shorter than
// the header are padded with empty cells, longer rows are rejected.
func (p *Parser) Parse(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCSV, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	table := &domain.Table{
		Columns: header,
		Records: make([][]string, 0),
		Rows:    make([]domain.Listing, 0),
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCSV, err)
		}
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d",
				domain.ErrMalformedCSV, line, len(header), len(record))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}

		listing, err := toListing(record, index, len(table.Rows))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedCSV, line, err)
		}
		table.Records = append(table.Records, record)
		table.Rows = append(table.Rows, listing)
	}

	return table, nil
}

// columnIndex maps each required column to its position. Duplicate names
// resolve to the first occurrence.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range domain.RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return index, nil
}

func toListing(record []string, index map[string]int, position int) (domain.Listing, error) {
	price, err := parseNumber(record[index[domain.ColumnPricePKR]], domain.ColumnPricePKR)
	if err != nil {
		return domain.Listing{}, err
	}
	rating, err := parseNumber(record[index[domain.ColumnRating]], domain.ColumnRating)
	if err != nil {
		return domain.Listing{}, err
	}
	reviews, err := parseNumber(record[index[domain.ColumnReviews]], domain.ColumnReviews)
	if err != nil {
		return domain.Listing{}, err
	}

	return domain.Listing{
		Index:       position,
		ProductName: record[index[domain.ColumnProductName]],
		CategoryURL: record[index[domain.ColumnCategoryURL]],
		PricePKR:    price,
		Rating:      rating,
		Reviews:     reviews,
	}, nil
}

// parseNumber reads a numeric cell; an empty cell is a missing value (NaN)
func parseNumber(cell, column string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	v, err := cast.ToFloat64E(cell)
	if err != nil {
		return 0, fmt.Errorf("column %s: %q is not a number", column, cell)
	}
	return v, nil
}
