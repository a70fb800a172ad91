package domain

// HotelRecord is a hotel as returned by the booking backend.
type HotelRecord struct {
	HotelID       int64    `json:"hotelId"`
	HotelName     string   `json:"hotelName"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Description   string   `json:"description"`
	PricePerNight *float64 `json:"pricePerNight"`
	MainImageURL  *string  `json:"mainImageUrl"`
	ImageURLs     []string `json:"imageUrls"`
	OwnerName     *string  `json:"ownerName"`
}

// HotelViewModel is the flat card shape the list screens render.
// Rating and ReviewCount are not provided by the hotel endpoints and stay 0.
type HotelViewModel struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	ImageURL    string  `json:"imageUrl"`
	IsFavorite  bool    `json:"isFavorite"`
}

type CityOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// HotelDetail is the hotel detail screen model.
type HotelDetail struct {
	Hotel          HotelRecord `json:"hotel"`
	DisplayAddress string      `json:"displayAddress"`
	Location       string      `json:"location"`
	CoverImage     string      `json:"coverImage"`
	PriceLabel     string      `json:"priceLabel"`
	HasPrice       bool        `json:"hasPrice"`
}

// HomeFeed is what the home tab shows after a list-all load.
type HomeFeed struct {
	Best   []HotelViewModel `json:"best"`
	Nearby []HotelViewModel `json:"nearby"`
	Cities []CityOption     `json:"cities"`
}
