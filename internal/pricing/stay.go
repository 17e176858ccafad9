package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

// Stay is the hotel part of a trip.  CheckIn and CheckOut are UTC midnights.
type Stay struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Nights   int       `json:"nights"`
}

// NewStay truncates both instants to their UTC calendar date and counts the
// nights between them.
func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	in, out := DateOf(checkIn), DateOf(checkOut)
	nights := int(math.Ceil(out.Sub(in).Hours() / 24))
	if nights < 1 {
		return Stay{}, fmt.Errorf("%w: %s to %s", ErrInvalidStay, in.Format(time.DateOnly), out.Format(time.DateOnly))
	}
	return Stay{CheckIn: in, CheckOut: out, Nights: nights}, nil
}

// StayFromFlights checks in on the day the outbound flight lands and checks
// out on the day the return flight departs.
func StayFromFlights(outbound, ret model.Flight) (Stay, error) {
	return NewStay(outbound.ArrivalTime, ret.DepartureTime)
}

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
