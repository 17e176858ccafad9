package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MaxAdultsPerRoom = 3
	MaxChildAge      = 17
	// InfantMaxAge is the oldest age that flies for free.
	InfantMaxAge = 1
)

// Occupancy is the party priced together in one room.
type Occupancy struct {
	Adults    int   `json:"adults"`
	Children  int   `json:"children"`
	ChildAges []int `json:"child_ages"`
}

// NewOccupancy builds an occupancy whose child count matches the ages given.
func NewOccupancy(adults int, childAges ...int) Occupancy {
	ages := append([]int(nil), childAges...)
	return Occupancy{Adults: adults, Children: len(ages), ChildAges: ages}
}

// Validate checks the party against the rules every pricer relies on.
func (o Occupancy) Validate() error {
	ie := NewInputError()
	switch {
	case o.Adults < 1:
		ie.Add("adults", "at least one adult is required")
	case o.Adults > MaxAdultsPerRoom:
		ie.Add("adults", fmt.Sprintf("more than %d adults per room is not supported", MaxAdultsPerRoom))
	}
	if o.Children < 0 {
		ie.Add("children", "must not be negative")
	}
	if len(o.ChildAges) != o.Children {
		ie.Add("child_ages", fmt.Sprintf("expected %d ages, got %d", o.Children, len(o.ChildAges)))
	}
	for i, age := range o.ChildAges {
		if age < 0 || age > MaxChildAge {
			ie.Add("child_ages", fmt.Sprintf("age #%d must be between 0 and %d", i+1, MaxChildAge))
		}
	}
	return ie.Err()
}

// People counts everyone in the party, infants included.
func (o Occupancy) People() int { return o.Adults + len(o.ChildAges) }

// Infants counts children young enough to fly without a seat.
func (o Occupancy) Infants() int {
	n := 0
	for _, age := range o.ChildAges {
		if age <= InfantMaxAge {
			n++
		}
	}
	return n
}

// Seats is the number of aircraft seats the party occupies on each leg.
func (o Occupancy) Seats() int { return o.People() - o.Infants() }

// AgesKey renders the child ages the way they are stored ("5,10").
func (o Occupancy) AgesKey() string {
	return FormatChildAges(o.ChildAges)
}

// Label is a short human description such as "2A+2C(5,10)".
func (o Occupancy) Label() string {
	s := strconv.Itoa(o.Adults) + "A"
	if len(o.ChildAges) > 0 {
		s += fmt.Sprintf("+%dC(%s)", len(o.ChildAges), o.AgesKey())
	}
	return s
}

func FormatChildAges(ages []int) string {
	parts := make([]string, len(ages))
	for i, a := range ages {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}

// ParseChildAges is the inverse of FormatChildAges.  An empty string yields
// no ages.
func ParseChildAges(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ages := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("child age %q: %w", p, err)
		}
		ages = append(ages, n)
	}
	return ages, nil
}

// StandardOccupancies is the fixed set of parties every price matrix covers.
func StandardOccupancies() []Occupancy {
	return []Occupancy{
		NewOccupancy(1),
		NewOccupancy(1, 5),
		NewOccupancy(2),
		NewOccupancy(2, 5),
		NewOccupancy(2, 5, 10),
		NewOccupancy(3),
	}
}
