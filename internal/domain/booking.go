package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// transitions lists every allowed status change; anything absent is rejected.
var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID          int64         `json:"id"`
	CustomerID  int64         `json:"customer_id"`
	ArtistID    int64         `json:"artist_id"`
	Date        string        `json:"date"` // YYYY-MM-DD
	Time        string        `json:"time"` // HH:MM
	Duration    float64       `json:"duration"`
	Description string        `json:"description,omitempty"`
	Status      BookingStatus `json:"status"`
	Price       float64       `json:"price"`
	Reviewed    bool          `json:"reviewed"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Participant reports whether the account is the customer or the artist of b.
func (b *Booking) Participant(accountID int64) bool {
	return b.CustomerID == accountID || b.ArtistID == accountID
}
