package enums

import "fmt"

// SortKey orders scored combinations for ranking and capping.
type SortKey string

const (
	SortKeyMarginDesc SortKey = "margin_percent_desc"
	SortKeyProfitDesc SortKey = "profit_desc"
	SortKeyCostAsc    SortKey = "cost_total_asc"
)

var validSortKeys = []SortKey{
	SortKeyMarginDesc,
	SortKeyProfitDesc,
	SortKeyCostAsc,
}

// String implements fmt.Stringer.
func (k SortKey) String() string {
	return string(k)
}

// IsValid reports whether the value is a known SortKey.
func (k SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
