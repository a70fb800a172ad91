package app

import "hotel_booking/internal/domain"

// ToggleFavorite returns a copy of list with the favorite flag of id inverted.
// The input slice is not modified.
func ToggleFavorite(list []domain.HotelViewModel, id string) []domain.HotelViewModel {
	out := make([]domain.HotelViewModel, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].IsFavorite = !out[i].IsFavorite
		}
	}
	return out
}
