package pricing

import (
	"time"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func summerRate() model.HotelRate {
	return model.HotelRate{
		ID:            1,
		HotelID:       10,
		ValidFrom:     day("2026-06-01"),
		ValidTo:       day("2026-09-30"),
		SingleCents:   12000,
		DoubleCents:   16000,
		ExtraBedCents: 10000,
		ChildCents:    3000,
		ChildAgeMin:   7,
		ChildAgeMax:   11,
		Board:         "HB",
	}
}

func threeNights() Stay {
	return Stay{CheckIn: day("2026-07-10"), CheckOut: day("2026-07-13"), Nights: 3}
}

func ptr[T any](v T) *T { return &v }
