package pricing

import "github.com/Edonabdullahu1/city-sub003/internal/model"

// SelectRate picks the rate row of hotelID whose validity window covers the
// whole stay.  When several rows qualify the narrowest window wins, then
// the one starting later, then the lowest id, so the result does not depend
// on the order rows were loaded in.
func SelectRate(rates []model.HotelRate, hotelID uint64, stay Stay) (model.HotelRate, bool) {
	var (
		best  model.HotelRate
		found bool
	)
	for _, r := range rates {
		if r.HotelID != hotelID || !covers(r, stay) {
			continue
		}
		if !found || narrower(r, best) {
			best, found = r, true
		}
	}
	return best, found
}

func covers(r model.HotelRate, stay Stay) bool {
	from, to := DateOf(r.ValidFrom), DateOf(r.ValidTo)
	return !from.After(stay.CheckIn) && !to.Before(stay.CheckOut)
}

// narrower reports whether a should be preferred over b.
func narrower(a, b model.HotelRate) bool {
	wa := DateOf(a.ValidTo).Sub(DateOf(a.ValidFrom))
	wb := DateOf(b.ValidTo).Sub(DateOf(b.ValidFrom))
	if wa != wb {
		return wa < wb
	}
	fa, fb := DateOf(a.ValidFrom), DateOf(b.ValidFrom)
	if !fa.Equal(fb) {
		return fa.After(fb)
	}
	return a.ID < b.ID
}
