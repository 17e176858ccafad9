package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
)

func TestStayFromFlights(t *testing.T) {
	out := model.Flight{DepartureTime: at("2026-07-10T22:30:00Z"), ArrivalTime: at("2026-07-11T01:15:00Z")}
	ret := model.Flight{DepartureTime: at("2026-07-14T06:00:00Z"), ArrivalTime: at("2026-07-14T08:30:00Z")}

	s, err := StayFromFlights(out, ret)
	require.NoError(t, err)
	assert.Equal(t, day("2026-07-11"), s.CheckIn)
	assert.Equal(t, day("2026-07-14"), s.CheckOut)
	assert.Equal(t, 3, s.Nights)
}

func TestNewStay_UsesCalendarDates(t *testing.T) {
	s, err := NewStay(at("2026-07-10T23:59:00Z"), at("2026-07-11T00:01:00Z"))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Nights)
}

func TestNewStay_SameDayIsInvalid(t *testing.T) {
	_, err := NewStay(at("2026-07-10T08:00:00Z"), at("2026-07-10T20:00:00Z"))
	assert.ErrorIs(t, err, ErrInvalidStay)

	_, err = NewStay(day("2026-07-12"), day("2026-07-10"))
	assert.ErrorIs(t, err, ErrInvalidStay)
}
