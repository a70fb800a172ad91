package domain

import "strings"

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortNearby     SortKey = "nearby"
	SortRating     SortKey = "rating"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
)

var SortKeys = []SortKey{SortPopularity, SortNearby, SortRating, SortPriceLow, SortPriceHigh}

// ParseSortKey falls back to popularity for empty or unknown input.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortKeys {
		if k == known {
			return k
		}
	}
	return SortPopularity
}
