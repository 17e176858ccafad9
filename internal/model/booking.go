package model

import "time"

// Booking statuses.  A booking starts SOFT and either moves forward to
// CONFIRMED and PAID or ends CANCELLED.
const (
	BookingSoft      = "SOFT"
	BookingConfirmed = "CONFIRMED"
	BookingPaid      = "PAID"
	BookingCancelled = "CANCELLED"
)

// Booking represents a row in the `bookings` table.  While a booking is
// active it holds SeatsHeld seats on both flights and RoomsHeld rooms at
// the hotel.
//
// Fields:
//
//	ReservationCode – public code handed to the customer (TRV-XXXXXXXX).
//	FlightBlockID   – nil when the booking used the default flight pair.
//	ChildAges       – comma separated ages, empty when there are no children.
//	ExpiresAt       – end of the soft hold; only meaningful while SOFT.
type Booking struct {
	ID               uint64    `json:"id"`
	ReservationCode  string    `json:"reservation_code"`
	PackageID        uint64    `json:"package_id"`
	FlightBlockID    *uint64   `json:"flight_block_id,omitempty"`
	OutboundFlightID *uint64   `json:"outbound_flight_id,omitempty"`
	ReturnFlightID   *uint64   `json:"return_flight_id,omitempty"`
	HotelID          uint64    `json:"hotel_id"`
	Adults           int       `json:"adults"`
	Children         int       `json:"children"`
	ChildAges        string    `json:"child_ages"`
	SeatsHeld        int       `json:"seats_held"`
	RoomsHeld        int       `json:"rooms_held"`
	Status           string    `json:"status"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	CustomerName     string    `json:"customer_name"`
	CustomerEmail    string    `json:"customer_email"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Active reports whether the booking still holds inventory.
func (b Booking) Active() bool { return b.Status != BookingCancelled }
