package notification

import (
	"context"

	"inkbook/internal/domain"
)

const (
	EventBookingCreated       = "booking_created"
	EventBookingStatusChanged = "booking_status_changed"
)

// Event is pushed to websocket clients as JSON.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type BookingPayload struct {
	Booking    *domain.Booking      `json:"booking"`
	FromStatus domain.BookingStatus `json:"from_status,omitempty"`
}

// Notifier turns booking lifecycle changes into hub events.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

// NotifyBookingCreated tells the artist about a new request.
func (n *Notifier) NotifyBookingCreated(_ context.Context, b *domain.Booking) error {
	n.hub.SendToUser(b.ArtistID, &Event{
		Type:    EventBookingCreated,
		Payload: BookingPayload{Booking: b},
	})
	return nil
}

// NotifyBookingStatusChanged tells both parties.
func (n *Notifier) NotifyBookingStatusChanged(_ context.Context, b *domain.Booking, from domain.BookingStatus) error {
	ev := &Event{
		Type:    EventBookingStatusChanged,
		Payload: BookingPayload{Booking: b, FromStatus: from},
	}
	n.hub.SendToUser(b.CustomerID, ev)
	n.hub.SendToUser(b.ArtistID, ev)
	return nil
}
