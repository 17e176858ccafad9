package pricing

import (
	"fmt"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// Room types stored on price rows.
const (
	RoomSingle = "single"
	RoomDouble = "double"
	RoomTriple = "triple"
)

// Child charge kinds.
const (
	ChildFree     = "free"
	ChildRate     = "child_rate"
	ChildExtraBed = "extra_bed"
)

type ChildCharge struct {
	Age        int    `json:"age"`
	Kind       string `json:"kind"`
	TotalCents int64  `json:"total_cents"`
}

// HotelBreakdown itemises the hotel cost of a stay.
type HotelBreakdown struct {
	RoomType      string        `json:"room_type"`
	NightlyCents  int64         `json:"nightly_cents"`
	Nights        int           `json:"nights"`
	RoomCents     int64         `json:"room_cents"`
	Children      []ChildCharge `json:"children"`
	ChildrenCents int64         `json:"children_cents"`
	TotalCents    int64         `json:"total_cents"`
}

// HotelCost prices one room for the party over the given number of nights.
//
// The base nightly price depends on the adults only: single for one, double
// for two, double plus an extra bed for three.  Every child is then charged
// on its own against the rate's paying age range: younger children stay
// free, children inside the range pay the child rate and older children
// need an extra bed.
func HotelCost(rate model.HotelRate, occ Occupancy, nights int) (HotelBreakdown, error) {
	if nights < 1 {
		return HotelBreakdown{}, fmt.Errorf("%w: %d nights", ErrInvalidStay, nights)
	}
	var b HotelBreakdown
	switch occ.Adults {
	case 1:
		b.RoomType, b.NightlyCents = RoomSingle, rate.SingleCents
	case 2:
		b.RoomType, b.NightlyCents = RoomDouble, rate.DoubleCents
	case 3:
		b.RoomType, b.NightlyCents = RoomTriple, rate.DoubleCents+rate.ExtraBedCents
	default:
		return HotelBreakdown{}, fmt.Errorf("%w: %d adults", ErrUnsupportedOccupancy, occ.Adults)
	}
	b.Nights = nights
	b.RoomCents = b.NightlyCents * int64(nights)

	b.Children = make([]ChildCharge, 0, len(occ.ChildAges))
	for _, age := range occ.ChildAges {
		ch := ChildCharge{Age: age}
		switch {
		case age < rate.ChildAgeMin:
			ch.Kind = ChildFree
		case age <= rate.ChildAgeMax:
			ch.Kind = ChildRate
			ch.TotalCents = rate.ChildCents * int64(nights)
		default:
			ch.Kind = ChildExtraBed
			ch.TotalCents = rate.ExtraBedCents * int64(nights)
		}
		b.ChildrenCents += ch.TotalCents
		b.Children = append(b.Children, ch)
	}
	b.TotalCents = b.RoomCents + b.ChildrenCents
	return b, nil
}
