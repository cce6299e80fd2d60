package csvload

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listinglens/dashboard/internal/domain"
)

const header = "category_url,price_pkr,rating,reviews,product_name\n"

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	t.Run("parses rows in input order", func(t *testing.T) {
		input := header +
			"https://www.banggood.com/Wholesale-Tools-c-2.html,1500,4.5,120,Cordless Drill\n" +
			"\"https://www.banggood.com/Wholesale-Toys-c-3.html\",99.5,3,7,\"Kite, large\"\n"

		table, err := p.Parse(strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, domain.RequiredColumns, table.Columns)
		require.Equal(t, 2, table.Len())
		first := table.Rows[0]
		assert.Equal(t, 0, first.Index)
		assert.Equal(t, "Cordless Drill", first.ProductName)
		assert.Equal(t, 1500.0, first.PricePKR)
		assert.Equal(t, 4.5, first.Rating)
		assert.Equal(t, 120.0, first.Reviews)

		second := table.Rows[1]
		assert.Equal(t, 1, second.Index)
		assert.Equal(t, "Kite, large", second.ProductName)
		assert.Equal(t, 99.5, second.PricePKR)
		assert.Equal(t, "Kite, large", table.Records[1][4])
	})

	t.Run("header only gives an empty table", func(t *testing.T) {
		table, err := p.Parse(strings.NewReader(header))
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
		assert.NotNil(t, table.Rows)
		assert.Empty(t, table.Head(5))
	})

	t.Run("columns may appear in any order with extras", func(t *testing.T) {
		input := "id,product_name,reviews,rating,price_pkr,category_url\n" +
			"7,Lamp,3,4,250,http://example.com/nomatch\n"

		table, err := p.Parse(strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, 1, table.Len())
		assert.Equal(t, "Lamp", table.Rows[0].ProductName)
		assert.Equal(t, 250.0, table.Rows[0].PricePKR)
		assert.Equal(t, "http://example.com/nomatch", table.Rows[0].CategoryURL)
		assert.Equal(t, []string{"7", "Lamp", "3", "4", "250", "http://example.com/nomatch"}, table.Head(1)[0])
	})

	t.Run("empty numeric cells are missing values", func(t *testing.T) {
		input := header + "http://example.com/x,,, ,Mystery\n"

		table, err := p.Parse(strings.NewReader(input))
		require.NoError(t, err)
		row := table.Rows[0]
		assert.True(t, math.IsNaN(row.PricePKR))
		assert.True(t, math.IsNaN(row.Rating))
		assert.True(t, math.IsNaN(row.Reviews))
	})

	t.Run("short rows are padded", func(t *testing.T) {
		input := header + "http://example.com/x,10,4\n"

		table, err := p.Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, table.Records[0], 5)
		assert.True(t, math.IsNaN(table.Rows[0].Reviews))
		assert.Equal(t, "", table.Rows[0].ProductName)
	})

	t.Run("byte order mark is stripped", func(t *testing.T) {
		input := "\ufeff" + header + "http://example.com/x,10,4,1,Mug\n"

		table, err := p.Parse(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, domain.ColumnCategoryURL, table.Columns[0])
	})
}

func TestParser_ParseErrors(t *testing.T) {
	p := NewParser()

	testCases := []struct {
		name     string
		input    string
		wantErr  error
		contains string
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: domain.ErrEmptyFile,
		},
		{
			name:     "missing one column",
			input:    "category_url,price_pkr,rating,product_name\n",
			wantErr:  domain.ErrMissingColumn,
			contains: "reviews",
		},
		{
			name:     "missing several columns",
			input:    "product_name\n",
			wantErr:  domain.ErrMissingColumn,
			contains: "category_url, price_pkr, rating, reviews",
		},
		{
			name:     "non-numeric price",
			input:    header + "http://example.com/x,cheap,4,1,Mug\n",
			wantErr:  domain.ErrMalformedCSV,
			contains: "line 2",
		},
		{
			name:     "too many fields",
			input:    header + "http://example.com/x,1,4,1,Mug,extra\n",
			wantErr:  domain.ErrMalformedCSV,
			contains: "expected 5 fields, saw 6",
		},
		{
			name:    "unterminated quote",
			input:   header + "\"http://example.com/x,1,4,1,Mug\n",
			wantErr: domain.ErrMalformedCSV,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := p.Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
			assert.True(t, domain.IsInputError(err))
		})
	}
}

func TestParseNumber(t *testing.T) {
	testCases := []struct {
		cell    string
		want    float64
		wantNaN bool
		wantErr bool
	}{
		{cell: "42", want: 42},
		{cell: "4.75", want: 4.75},
		{cell: " 10 ", want: 10},
		{cell: "-3", want: -3},
		{cell: "", wantNaN: true},
		{cell: "   ", wantNaN: true},
		{cell: "n/a", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.cell, func(t *testing.T) {
			got, err := parseNumber(tc.cell, domain.ColumnRating)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.wantNaN {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}
