package pricing

import (
	"fmt"
	"time"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// FlightOption is one way of flying a package: a flight block, the
// package's default flight pair, or the flat fallback fare.
type FlightOption struct {
	BlockID          *uint64
	OutboundFlightID *uint64
	ReturnFlightID   *uint64
	Fares            FlightFares
	Stay             Stay
}

type FlightPair struct {
	Outbound model.Flight
	Return   model.Flight
}

// FlightSource lists what a package can be flown with.  Blocks take
// precedence over DefaultPair; the fallback fare is used only when both
// are missing, with the stay taken from the package dates.  A package
// whose blocks are all sold out is sold out; it never falls back.
type FlightSource struct {
	Blocks        []model.FlightBlock
	DefaultPair   *FlightPair
	FallbackCents int64
	FallbackFrom  *time.Time
	FallbackTo    *time.Time
}

// SkipSoldOut is the reason given for blocks with no seat left on a leg.
const SkipSoldOut = "sold out"

// Skip records a combination that produced no rows.
type Skip struct {
	FlightBlockID *uint64 `json:"flight_block_id,omitempty"`
	HotelID       uint64  `json:"hotel_id,omitempty"`
	Reason        string  `json:"reason"`
}

// FlightOptions turns a FlightSource into priced options, reporting blocks
// that are sold out or whose dates do not make a valid stay.
func FlightOptions(src FlightSource) ([]FlightOption, []Skip) {
	var (
		opts  []FlightOption
		skips []Skip
	)
	if len(src.Blocks) > 0 {
		for _, b := range src.Blocks {
			id := b.ID
			if b.Outbound.AvailableSeats <= 0 || b.Return.AvailableSeats <= 0 {
				skips = append(skips, Skip{FlightBlockID: &id, Reason: SkipSoldOut})
				continue
			}
			stay, err := StayFromFlights(b.Outbound, b.Return)
			if err != nil {
				skips = append(skips, Skip{FlightBlockID: &id, Reason: err.Error()})
				continue
			}
			out, ret := b.Outbound.ID, b.Return.ID
			opts = append(opts, FlightOption{
				BlockID:          &id,
				OutboundFlightID: &out,
				ReturnFlightID:   &ret,
				Fares:            FaresFromFlights(b.Outbound, b.Return),
				Stay:             stay,
			})
		}
		return opts, skips
	}
	if p := src.DefaultPair; p != nil {
		stay, err := StayFromFlights(p.Outbound, p.Return)
		if err != nil {
			return nil, []Skip{{Reason: "default flights: " + err.Error()}}
		}
		out, ret := p.Outbound.ID, p.Return.ID
		return []FlightOption{{
			OutboundFlightID: &out,
			ReturnFlightID:   &ret,
			Fares:            FaresFromFlights(p.Outbound, p.Return),
			Stay:             stay,
		}}, nil
	}
	if src.FallbackFrom == nil || src.FallbackTo == nil {
		return nil, []Skip{{Reason: "no flights and no package dates"}}
	}
	stay, err := NewStay(*src.FallbackFrom, *src.FallbackTo)
	if err != nil {
		return nil, []Skip{{Reason: "package dates: " + err.Error()}}
	}
	return []FlightOption{{Fares: FallbackFares(src.FallbackCents), Stay: stay}}, nil
}

// SoldOut reports whether skips name block as sold out, or any block when
// block is nil.
func SoldOut(skips []Skip, block *uint64) bool {
	for _, s := range skips {
		if s.Reason != SkipSoldOut || s.FlightBlockID == nil {
			continue
		}
		if block == nil || *s.FlightBlockID == *block {
			return true
		}
	}
	return false
}

type MatrixInput struct {
	Package model.Package
	Flights []FlightOption
	// Hotels in the order the package lists them.
	Hotels []model.Hotel
	Rates  map[uint64][]model.HotelRate
	// Occupancies defaults to StandardOccupancies when empty.
	Occupancies []Occupancy
}

type Matrix struct {
	Rows    []model.PackagePrice
	Skipped []Skip
}

// BuildMatrix prices every flight option × hotel × occupancy combination.
// Rows come out in input order, so the same input always yields the same
// matrix.  Hotels without a rate covering the stay are skipped.
func BuildMatrix(in MatrixInput) Matrix {
	occs := in.Occupancies
	if len(occs) == 0 {
		occs = StandardOccupancies()
	}
	params := ParamsFromPackage(in.Package)

	var m Matrix
	for _, fo := range in.Flights {
		for _, h := range in.Hotels {
			rate, ok := SelectRate(in.Rates[h.ID], h.ID, fo.Stay)
			if !ok {
				m.Skipped = append(m.Skipped, Skip{
					FlightBlockID: fo.BlockID,
					HotelID:       h.ID,
					Reason: fmt.Sprintf("no rate for %s to %s",
						fo.Stay.CheckIn.Format(time.DateOnly), fo.Stay.CheckOut.Format(time.DateOnly)),
				})
				continue
			}
			for _, occ := range occs {
				q, err := Calculate(QuoteInput{Fares: fo.Fares, Rate: rate, Stay: fo.Stay, Occupancy: occ, Params: params})
				if err != nil {
					m.Skipped = append(m.Skipped, Skip{FlightBlockID: fo.BlockID, HotelID: h.ID, Reason: occ.Label() + ": " + err.Error()})
					continue
				}
				m.Rows = append(m.Rows, Row(in.Package.ID, h, rate, fo, q))
			}
		}
	}
	return m
}

// Row flattens a quote into a price matrix row.
func Row(packageID uint64, h model.Hotel, rate model.HotelRate, fo FlightOption, q Quote) model.PackagePrice {
	return model.PackagePrice{
		PackageID:          packageID,
		Adults:             q.Occupancy.Adults,
		Children:           len(q.Occupancy.ChildAges),
		ChildAges:          q.Occupancy.AgesKey(),
		FlightPriceCents:   q.FlightCents,
		HotelPriceCents:    q.HotelCents,
		TransferPriceCents: q.TransferCents,
		ServiceChargeCents: q.ServiceChargeCents,
		ProfitCents:        q.ProfitCents,
		TotalPriceCents:    q.TotalCents,
		HotelID:            h.ID,
		HotelName:          h.Name,
		HotelBoard:         rate.Board,
		RoomType:           q.Hotel.RoomType,
		FlightBlockID:      fo.BlockID,
		Nights:             q.Stay.Nights,
		CheckIn:            q.Stay.CheckIn,
		CheckOut:           q.Stay.CheckOut,
	}
}
