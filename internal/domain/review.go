package domain

import "time"

type ReviewRecord struct {
	ReviewID  int64     `json:"reviewId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	RoomID    int64     `json:"roomId"`
}

// ReviewRequest is the POST /reviews body.
type ReviewRequest struct {
	RoomID  int64  `json:"roomId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
