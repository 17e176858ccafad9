// Package repository holds the MySQL data access layer.  The sentinel
// errors below let handlers tell failure scenarios apart without looking
// at SQL errors.
package repository

import "errors"

// ErrConflict is returned when an update cannot be applied because the row
// is no longer in the expected state, such as confirming a booking that was
// already cancelled.  Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInsufficientInventory is returned when a compare-and-decrement on seats
// or rooms matched no row.  Inventory is never clamped.
var ErrInsufficientInventory = errors.New("insufficient inventory")

var (
	ErrPackageNotFound     = errors.New("package not found")
	ErrHotelNotFound       = errors.New("hotel not found")
	ErrRateNotFound        = errors.New("hotel rate not found")
	ErrFlightNotFound      = errors.New("flight not found")
	ErrFlightBlockNotFound = errors.New("flight block not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailExists         = errors.New("email already exists")
)
