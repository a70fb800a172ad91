package app

import (
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// ApplySort orders records for the given key. No key has a comparator yet:
// the backend exposes neither distance nor rating on hotels, so every key
// keeps fetch order. The zero key means popularity.
// TODO: add price-low/price-high comparators once product confirms how hotels without a price rank.
func ApplySort(in []domain.HotelRecord, key domain.SortKey) []domain.HotelRecord {
	out := make([]domain.HotelRecord, len(in))
	copy(out, in)
	if key != "" && key != domain.SortPopularity {
		log.Debug().Str("sort", string(key)).Msg("sort key has no comparator, keeping fetch order")
	}
	return out
}
