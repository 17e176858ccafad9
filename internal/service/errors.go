package service

import (
	"errors"
	"fmt"

	"github.com/Edonabdullahu1/city-sub003/internal/repository"
)

var (
	// ErrNoFlightOption means a package has no bookable way to fly: no
	// active block with seats, no default pair and no usable dates.
	ErrNoFlightOption = errors.New("no flight option for package")
	// ErrSoldOut means the package has flight blocks but none with a seat
	// left on both legs.
	ErrSoldOut = fmt.Errorf("%w: package flights sold out", repository.ErrInsufficientInventory)
	// ErrNoRate means no rate row of the hotel covers the whole stay.
	ErrNoRate = errors.New("no hotel rate covers the stay")
	// ErrBookingExpired is returned when confirming a soft booking whose
	// hold already ran out.
	ErrBookingExpired = errors.New("booking expired")
	// ErrInvalidTransition is returned when a booking is not in a status
	// that allows the requested change.
	ErrInvalidTransition = errors.New("invalid booking status transition")
)
