package pricing

import "github.com/Edonabdullahu1/city-sub003/internal/model"

// FlightFares are the per-seat prices of the two legs of a trip.
type FlightFares struct {
	OutboundCents int64 `json:"outbound_cents"`
	ReturnCents   int64 `json:"return_cents"`
	// Fallback marks fares that did not come from real flights.
	Fallback bool `json:"fallback"`
}

func (f FlightFares) RoundTrip() int64 { return f.OutboundCents + f.ReturnCents }

func FaresFromFlights(outbound, ret model.Flight) FlightFares {
	return FlightFares{OutboundCents: outbound.PriceCents, ReturnCents: ret.PriceCents}
}

// FallbackFares prices every paying passenger at a flat round-trip amount.
// Only packages without any real flights are priced this way.
func FallbackFares(perPersonCents int64) FlightFares {
	return FlightFares{OutboundCents: perPersonCents, Fallback: true}
}

type FlightBreakdown struct {
	FarePerPersonCents int64 `json:"fare_per_person_cents"`
	PayingPassengers   int   `json:"paying_passengers"`
	Infants            int   `json:"infants"`
	SeatsNeeded        int   `json:"seats_needed"`
	TotalCents         int64 `json:"total_cents"`
	Fallback           bool  `json:"fallback"`
}

// FlightCost charges one round-trip fare per adult and per child older than
// InfantMaxAge.  Infants fly free on a lap and take no seat.
func FlightCost(f FlightFares, occ Occupancy) FlightBreakdown {
	paying := occ.Seats()
	return FlightBreakdown{
		FarePerPersonCents: f.RoundTrip(),
		PayingPassengers:   paying,
		Infants:            occ.Infants(),
		SeatsNeeded:        paying,
		TotalCents:         f.RoundTrip() * int64(paying),
		Fallback:           f.Fallback,
	}
}
