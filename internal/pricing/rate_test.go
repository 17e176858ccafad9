package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

func TestSelectRate(t *testing.T) {
	stay := threeNights() // 2026-07-10 .. 2026-07-13

	season := model.HotelRate{ID: 1, HotelID: 10, ValidFrom: day("2026-06-01"), ValidTo: day("2026-09-30")}
	july := model.HotelRate{ID: 2, HotelID: 10, ValidFrom: day("2026-07-01"), ValidTo: day("2026-07-31")}
	other := model.HotelRate{ID: 3, HotelID: 11, ValidFrom: day("2026-07-10"), ValidTo: day("2026-07-13")}
	short := model.HotelRate{ID: 4, HotelID: 10, ValidFrom: day("2026-07-11"), ValidTo: day("2026-07-13")}

	t.Run("narrowest window wins regardless of order", func(t *testing.T) {
		r, ok := SelectRate([]model.HotelRate{season, july, other}, 10, stay)
		assert.True(t, ok)
		assert.Equal(t, uint64(2), r.ID)

		r, ok = SelectRate([]model.HotelRate{july, season}, 10, stay)
		assert.True(t, ok)
		assert.Equal(t, uint64(2), r.ID)
	})

	t.Run("must cover the whole stay", func(t *testing.T) {
		_, ok := SelectRate([]model.HotelRate{short}, 10, stay)
		assert.False(t, ok)
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		exact := model.HotelRate{ID: 5, HotelID: 10, ValidFrom: stay.CheckIn, ValidTo: stay.CheckOut}
		r, ok := SelectRate([]model.HotelRate{season, exact}, 10, stay)
		assert.True(t, ok)
		assert.Equal(t, uint64(5), r.ID)
	})

	t.Run("equal width prefers later start then lower id", func(t *testing.T) {
		a := model.HotelRate{ID: 9, HotelID: 10, ValidFrom: day("2026-07-01"), ValidTo: day("2026-07-20")}
		b := model.HotelRate{ID: 8, HotelID: 10, ValidFrom: day("2026-07-05"), ValidTo: day("2026-07-24")}
		r, _ := SelectRate([]model.HotelRate{a, b}, 10, stay)
		assert.Equal(t, uint64(8), r.ID)

		c := b
		c.ID = 7
		r, _ = SelectRate([]model.HotelRate{b, c}, 10, stay)
		assert.Equal(t, uint64(7), r.ID)
	})

	t.Run("no rows", func(t *testing.T) {
		_, ok := SelectRate(nil, 10, stay)
		assert.False(t, ok)
	})
}
