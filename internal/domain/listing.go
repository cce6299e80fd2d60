package domain

// Required input columns of a listing table
const (
	ColumnCategoryURL = "category_url"
	ColumnPricePKR    = "price_pkr"
	ColumnRating      = "rating"
	ColumnReviews     = "reviews"
	ColumnProductName = "product_name"
)

// RequiredColumns lists the header names every uploaded table must carry
var RequiredColumns = []string{
	ColumnCategoryURL,
	ColumnPricePKR,
	ColumnRating,
	ColumnReviews,
	ColumnProductName,
}

// OtherCategory is the main category of listings whose URL carries no category segment
const OtherCategory = "Other"

// Listing represents one product row of an uploaded table.
// Missing numeric cells are NaN.
type Listing struct {
	Index       int     `json:"index"` // zero-based position in the input
	ProductName string  `json:"productName"`
	CategoryURL string  `json:"categoryUrl"`
	PricePKR    float64 `json:"pricePkr"`
	Rating      float64 `json:"rating"`
	Reviews     float64 `json:"reviews"`

	// Derived columns
	MainCategory string  `json:"mainCategory"`
	ValueMetric  float64 `json:"valueMetric"`
}

// Table is an in-memory listing table in input order
type Table struct {
	Columns []string   // header row, original order
	Records [][]string // raw cells, padded to len(Columns)
	Rows    []Listing
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Head returns up to n raw records from the top of the table
func (t *Table) Head(n int) [][]string {
	if t == nil || n <= 0 {
		return nil
	}
	if n > len(t.Records) {
		n = len(t.Records)
	}
	head := make([][]string, n)
	for i := 0; i < n; i++ {
		head[i] = append([]string(nil), t.Records[i]...)
	}
	return head
}
