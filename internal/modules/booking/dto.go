package booking

type CreateBookingRequest struct {
	ArtistID    int64   `json:"artist_id" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time" binding:"required"`
	Duration    float64 `json:"duration" binding:"required"`
	Description string  `json:"description" binding:"max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookedSlot struct {
	BookingID int64   `json:"booking_id"`
	Time      string  `json:"time"`
	Duration  float64 `json:"duration"`
	Status    string  `json:"status"`
}

type SlotsResponse struct {
	ArtistID int64        `json:"artist_id"`
	Date     string       `json:"date"`
	Day      string       `json:"day"`
	Slots    []string     `json:"slots"`
	Booked   []BookedSlot `json:"booked"`
}
