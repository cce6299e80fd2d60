package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Number is a float64 that survives JSON encoding when it is not finite.
// encoding/json rejects NaN and infinities, so those are written as the
// strings "NaN", "+Inf" and "-Inf".
type Number float64

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// numbers converts a float slice for JSON output
func numbers(values []float64) []Number {
	out := make([]Number, len(values))
	for i, v := range values {
		out[i] = Number(v)
	}
	return out
}

// MarshalJSON encodes a listing with non-finite numbers as strings
func (l Listing) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index        int    `json:"index"`
		ProductName  string `json:"productName"`
		CategoryURL  string `json:"categoryUrl"`
		PricePKR     Number `json:"pricePkr"`
		Rating       Number `json:"rating"`
		Reviews      Number `json:"reviews"`
		MainCategory string `json:"mainCategory"`
		ValueMetric  Number `json:"valueMetric"`
	}{
		Index:        l.Index,
		ProductName:  l.ProductName,
		CategoryURL:  l.CategoryURL,
		PricePKR:     Number(l.PricePKR),
		Rating:       Number(l.Rating),
		Reviews:      Number(l.Reviews),
		MainCategory: l.MainCategory,
		ValueMetric:  Number(l.ValueMetric),
	})
}
