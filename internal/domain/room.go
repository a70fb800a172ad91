package domain

type RoomRecord struct {
	RoomID        int64    `json:"roomId"`
	RoomType      string   `json:"roomType"`
	Description   string   `json:"description"`
	Capacity      int      `json:"capacity"`
	PricePerNight float64  `json:"pricePerNight"`
	Rating        *float64 `json:"rating"` // 0..5, null when unrated
	ReviewCount   int      `json:"reviewCount"`
	ImageURLs     []string `json:"imageUrls"`
	HotelName     string   `json:"hotelName"`
}

// RoomDetail is the room detail screen model.
type RoomDetail struct {
	Room        RoomRecord     `json:"room"`
	Reviews     []ReviewRecord `json:"reviews"`
	CoverImage  string         `json:"coverImage"`
	Gallery     []string       `json:"gallery"`
	FilledStars int            `json:"filledStars"`
	HotelLabel  string         `json:"hotelLabel"`
}
