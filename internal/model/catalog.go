package model

import "time"

// Hotel represents a row in the `hotels` table.  RoomsAvailable is the
// allotment that soft bookings decrement and cancellations release; it
// never rises above TotalRooms.
type Hotel struct {
	ID             uint64    // hotels.id
	Name           string    // hotels.name
	City           string    // hotels.city
	Stars          uint8     // hotels.stars
	RoomsAvailable int       // hotels.rooms_available
	TotalRooms     int       // hotels.total_rooms
	CreatedAt      time.Time // hotels.created_at
}

// HotelRate is one seasonal row of a hotel's rate sheet (`hotel_rates`).
// All prices are per night in cents.  ValidFrom and ValidTo are calendar
// dates and both ends are inclusive.
//
// Fields:
//
//	SingleCents   – nightly price of a room with one adult.
//	DoubleCents   – nightly price of a room with two adults.
//	ExtraBedCents – nightly price of an extra bed (third adult or older child).
//	ChildCents    – nightly price of a child inside the paying age range.
//	ChildAgeMin   – lower bound of the paying child age range.
//	ChildAgeMax   – upper bound of the paying child age range.
//	Board         – board type label (BB, HB, AI ...).
type HotelRate struct {
	ID            uint64    `json:"id"`
	HotelID       uint64    `json:"hotel_id"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidTo       time.Time `json:"valid_to"`
	SingleCents   int64     `json:"single_cents"`
	DoubleCents   int64     `json:"double_cents"`
	ExtraBedCents int64     `json:"extra_bed_cents"`
	ChildCents    int64     `json:"child_cents"`
	ChildAgeMin   int       `json:"child_age_min"`
	ChildAgeMax   int       `json:"child_age_max"`
	Board         string    `json:"board"`
}

// Flight mirrors the `flights` table.  PriceCents is the per-seat price of
// this leg.
type Flight struct {
	ID             uint64    `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	PriceCents     int64     `json:"price_cents"`
	AvailableSeats int       `json:"available_seats"`
	TotalSeats     int       `json:"total_seats"`
}

// FlightBlock pairs an outbound and a return flight that are sold together
// as part of a package.  Repositories load it with both flights joined.
type FlightBlock struct {
	ID           uint64 `json:"id"`
	BlockGroupID string `json:"block_group_id"`
	PackageID    uint64 `json:"package_id"`
	Outbound     Flight `json:"outbound"`
	Return       Flight `json:"return"`
	IsActive     bool   `json:"is_active"`
}

// Package is a sellable travel package (`packages` table).
//
// ProfitMargin is a percentage and is nil when the package does not set
// one; an explicit zero means no margin.  DepartureDate and ReturnDate are
// only consulted when the package has neither flight blocks nor a default
// flight pair.
type Package struct {
	ID                      uint64     `json:"id"`
	Slug                    string     `json:"slug"`
	Name                    string     `json:"name"`
	Destination             string     `json:"destination"`
	HotelIDs                []uint64   `json:"hotel_ids"`
	DefaultOutboundFlightID *uint64    `json:"default_outbound_flight_id,omitempty"`
	DefaultReturnFlightID   *uint64    `json:"default_return_flight_id,omitempty"`
	DepartureDate           *time.Time `json:"departure_date,omitempty"`
	ReturnDate              *time.Time `json:"return_date,omitempty"`
	ServiceChargeCents      int64      `json:"service_charge_cents"`
	ProfitMargin            *float64   `json:"profit_margin,omitempty"`
	IncludesTransfer        bool       `json:"includes_transfer"`
	TransferPriceCents      int64      `json:"transfer_price_cents"`
	IsActive                bool       `json:"is_active"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}
