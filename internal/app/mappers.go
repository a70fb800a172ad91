package app

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"hotel_booking/internal/domain"
)

const (
	// MaxCities caps the home screen city strip. Cities past the cap are dropped.
	MaxCities = 5

	// CityPlaceholderImage is shown for every city option; hotels carry no city imagery.
	CityPlaceholderImage = "https://images.unsplash.com/photo-1512343879784-a960bf40e7f2?w=200"

	// RoomPlaceholderImage is the room cover when a room has no images.
	RoomPlaceholderImage = "https://via.placeholder.com/400x200?text=No+Image"

	// RoomGallerySize is how many room images the detail gallery shows.
	RoomGallerySize = 5

	// PriceOnRequest labels hotels without a positive nightly price.
	PriceOnRequest = "contact"
)

/********** tiny helpers **********/

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// normalizeCity trims and collapses internal whitespace runs to one space.
func normalizeCity(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// coverImage: main image, else first gallery image, else "".
func coverImage(main *string, gallery []string) string {
	if m := deref(main); m != "" {
		return m
	}
	if len(gallery) > 0 {
		return gallery[0]
	}
	return ""
}

func location(city, country string) string {
	return city + ", " + country
}

/********** hotel view models **********/

// MapHotel flattens one backend record into a list card.
func MapHotel(h domain.HotelRecord) domain.HotelViewModel {
	price := 0.0
	if h.PricePerNight != nil {
		price = *h.PricePerNight
	}
	return domain.HotelViewModel{
		ID:       strconv.FormatInt(h.HotelID, 10),
		Name:     h.HotelName,
		Location: location(h.City, h.Country),
		Price:    price,
		ImageURL: coverImage(h.MainImageURL, h.ImageURLs),
	}
}

// MapHotels is order and length preserving.
func MapHotels(in []domain.HotelRecord) []domain.HotelViewModel {
	out := make([]domain.HotelViewModel, 0, len(in))
	for _, h := range in {
		out = append(out, MapHotel(h))
	}
	return out
}

/********** cities **********/

// ExtractCities returns up to MaxCities distinct non-empty cities in order of first appearance.
func ExtractCities(in []domain.HotelRecord) []domain.CityOption {
	seen := make(map[string]struct{}, MaxCities)
	out := make([]domain.CityOption, 0, MaxCities)
	for _, h := range in {
		if h.City == "" {
			continue
		}
		if _, ok := seen[h.City]; ok {
			continue
		}
		seen[h.City] = struct{}{}
		out = append(out, domain.CityOption{
			ID:       strconv.Itoa(len(out) + 1),
			Name:     h.City,
			ImageURL: CityPlaceholderImage,
		})
		if len(out) == MaxCities {
			break
		}
	}
	return out
}

// LocalityOptions lists every distinct non-empty city, sorted, for the filter screen.
func LocalityOptions(in []domain.HotelRecord) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, h := range in {
		if h.City == "" {
			continue
		}
		if _, ok := seen[h.City]; ok {
			continue
		}
		seen[h.City] = struct{}{}
		out = append(out, h.City)
	}
	sort.Strings(out)
	return out
}

/********** detail models **********/

func mapHotelDetail(h domain.HotelRecord) domain.HotelDetail {
	d := domain.HotelDetail{
		Hotel:          h,
		Location:       location(h.City, h.Country),
		DisplayAddress: h.Address,
		CoverImage:     coverImage(h.MainImageURL, h.ImageURLs),
		PriceLabel:     PriceOnRequest,
	}
	if d.DisplayAddress == "" {
		d.DisplayAddress = d.Location
	}
	if h.PricePerNight != nil && *h.PricePerNight > 0 {
		d.HasPrice = true
		d.PriceLabel = strconv.FormatFloat(*h.PricePerNight, 'f', -1, 64)
	}
	return d
}

func mapRoomDetail(r domain.RoomRecord, reviews []domain.ReviewRecord) domain.RoomDetail {
	if reviews == nil {
		reviews = []domain.ReviewRecord{}
	}
	d := domain.RoomDetail{
		Room:       r,
		Reviews:    reviews,
		CoverImage: RoomPlaceholderImage,
		Gallery:    []string{},
		HotelLabel: r.HotelName,
	}
	if len(r.ImageURLs) > 0 {
		d.CoverImage = r.ImageURLs[0]
		n := min(len(r.ImageURLs), RoomGallerySize)
		d.Gallery = append(d.Gallery, r.ImageURLs[:n]...)
	}
	if r.Rating != nil && *r.Rating > 0 {
		d.FilledStars = int(math.Floor(math.Min(*r.Rating, 5)))
	}
	if d.HotelLabel == "" {
		d.HotelLabel = "unknown hotel"
	}
	return d
}
