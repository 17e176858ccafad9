package pricing

import (
	"math"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// DefaultProfitMargin applies when a package leaves its margin unset.
const DefaultProfitMargin = 20.0

// Params are the business parameters a package adds on top of raw costs.
type Params struct {
	ServiceChargeCents int64
	// ProfitMargin is a percentage; nil selects DefaultProfitMargin.
	ProfitMargin       *float64
	IncludesTransfer   bool
	TransferPriceCents int64
}

func ParamsFromPackage(p model.Package) Params {
	return Params{
		ServiceChargeCents: p.ServiceChargeCents,
		ProfitMargin:       p.ProfitMargin,
		IncludesTransfer:   p.IncludesTransfer,
		TransferPriceCents: p.TransferPriceCents,
	}
}

// Margin resolves the effective profit margin.  An explicit zero is kept.
func (p Params) Margin() float64 {
	if p.ProfitMargin == nil {
		return DefaultProfitMargin
	}
	return *p.ProfitMargin
}

// TransferCost is zero unless the package includes a transfer, which is
// then charged per person.
func (p Params) TransferCost(occ Occupancy) int64 {
	if !p.IncludesTransfer {
		return 0
	}
	return p.TransferPriceCents * int64(occ.People())
}

// ProfitOn rounds subtotal × margin / 100 half away from zero.
func ProfitOn(subtotalCents int64, margin float64) int64 {
	return int64(math.Round(float64(subtotalCents) * margin / 100))
}

type QuoteInput struct {
	Fares     FlightFares
	Rate      model.HotelRate
	Stay      Stay
	Occupancy Occupancy
	Params    Params
}

// Quote is the full price of one (flights, hotel, party) combination.
type Quote struct {
	Occupancy          Occupancy       `json:"occupancy"`
	Stay               Stay            `json:"stay"`
	Flight             FlightBreakdown `json:"flight"`
	Hotel              HotelBreakdown  `json:"hotel"`
	FlightCents        int64           `json:"flight_cents"`
	HotelCents         int64           `json:"hotel_cents"`
	TransferCents      int64           `json:"transfer_cents"`
	ServiceChargeCents int64           `json:"service_charge_cents"`
	SubtotalCents      int64           `json:"subtotal_cents"`
	ProfitMargin       float64         `json:"profit_margin"`
	ProfitCents        int64           `json:"profit_cents"`
	TotalCents         int64           `json:"total_cents"`
}

// Calculate is the single pricing routine behind the price matrix, the
// quote endpoint and soft bookings.
func Calculate(in QuoteInput) (Quote, error) {
	if err := in.Occupancy.Validate(); err != nil {
		return Quote{}, err
	}
	hotel, err := HotelCost(in.Rate, in.Occupancy, in.Stay.Nights)
	if err != nil {
		return Quote{}, err
	}
	flight := FlightCost(in.Fares, in.Occupancy)

	q := Quote{
		Occupancy:          in.Occupancy,
		Stay:               in.Stay,
		Flight:             flight,
		Hotel:              hotel,
		FlightCents:        flight.TotalCents,
		HotelCents:         hotel.TotalCents,
		TransferCents:      in.Params.TransferCost(in.Occupancy),
		ServiceChargeCents: in.Params.ServiceChargeCents,
		ProfitMargin:       in.Params.Margin(),
	}
	q.SubtotalCents = q.FlightCents + q.HotelCents + q.TransferCents + q.ServiceChargeCents
	q.ProfitCents = ProfitOn(q.SubtotalCents, q.ProfitMargin)
	q.TotalCents = q.SubtotalCents + q.ProfitCents
	return q, nil
}
