package model

import "time"

// PackagePrice is one pre-computed row of a package's price matrix
// (`package_prices`).  A package's rows are always replaced as a whole.
type PackagePrice struct {
	ID                 uint64    `json:"id"`
	PackageID          uint64    `json:"package_id"`
	Adults             int       `json:"adults"`
	Children           int       `json:"children"`
	ChildAges          string    `json:"child_ages"`
	FlightPriceCents   int64     `json:"flight_price_cents"`
	HotelPriceCents    int64     `json:"hotel_price_cents"`
	TransferPriceCents int64     `json:"transfer_price_cents"`
	ServiceChargeCents int64     `json:"service_charge_cents"`
	ProfitCents        int64     `json:"profit_cents"`
	TotalPriceCents    int64     `json:"total_price_cents"`
	HotelID            uint64    `json:"hotel_id"`
	HotelName          string    `json:"hotel_name"`
	HotelBoard         string    `json:"hotel_board"`
	RoomType           string    `json:"room_type"`
	FlightBlockID      *uint64   `json:"flight_block_id"`
	Nights             int       `json:"nights"`
	CheckIn            time.Time `json:"check_in"`
	CheckOut           time.Time `json:"check_out"`
	CreatedAt          time.Time `json:"created_at"`
}
