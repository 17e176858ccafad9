// Package queue defines message payloads exchanged over the message broker.
package queue

// Queues declared by publishers and the audit consumer.  Both are durable.
const (
	BookingEventsQueue      = "booking.events"
	PricesRecalculatedQueue = "prices.recalculated"
)

// Booking event types.
const (
	BookingSoftCreated = "booking.soft_created"
	BookingConfirmed   = "booking.confirmed"
	BookingPaid        = "booking.paid"
	BookingCancelled   = "booking.cancelled"
	BookingExpired     = "booking.expired"
)

// BookingEvent is published on every booking status change.  It carries
// enough for downstream consumers to log or notify without querying the
// primary database.
type BookingEvent struct {
	EventID          string `json:"event_id"`
	Type             string `json:"type"`
	BookingID        uint64 `json:"booking_id"`
	ReservationCode  string `json:"reservation_code"`
	PackageID        uint64 `json:"package_id"`
	HotelID          uint64 `json:"hotel_id"`
	Status           string `json:"status"`
	Adults           int    `json:"adults"`
	Children         int    `json:"children"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	CustomerEmail    string `json:"customer_email"`
	ExpiresAt        string `json:"expires_at,omitempty"`
	OccurredAt       string `json:"occurred_at"`
}

// PricesRecalculatedEvent is published after a package's matrix has been
// replaced.
type PricesRecalculatedEvent struct {
	EventID    string `json:"event_id"`
	PackageID  uint64 `json:"package_id"`
	Rows       int    `json:"rows"`
	Skipped    int    `json:"skipped"`
	Fallback   bool   `json:"fallback"`
	OccurredAt string `json:"occurred_at"`
}
