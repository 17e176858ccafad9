package pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnsupportedOccupancy is returned for rooms with more than
	// MaxAdultsPerRoom adults.  How such parties are roomed is undecided,
	// so they are never priced.
	ErrUnsupportedOccupancy = errors.New("unsupported occupancy")
	// ErrInvalidStay is returned when check-out is not at least one night
	// after check-in.
	ErrInvalidStay = errors.New("invalid stay")
)

// InputError collects field level validation messages.
type InputError struct {
	fields map[string][]string
}

func NewInputError() *InputError {
	return &InputError{fields: make(map[string][]string)}
}

// AsInputError unwraps err into an *InputError, or returns nil.
func AsInputError(err error) *InputError {
	if err == nil {
		return nil
	}
	var ie *InputError
	if errors.As(err, &ie) {
		return ie
	}
	return nil
}

func (e *InputError) Add(field, msg string) {
	e.fields[field] = append(e.fields[field], msg)
}

func (e *InputError) Merge(other *InputError) {
	if other == nil {
		return
	}
	for f, msgs := range other.fields {
		e.fields[f] = append(e.fields[f], msgs...)
	}
}

func (e *InputError) Fields() map[string][]string { return e.fields }

func (e *InputError) Empty() bool { return len(e.fields) == 0 }

// Err returns e, or nil when no field failed.
func (e *InputError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *InputError) Error() string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.fields[k], "; ")))
	}
	return "invalid input: " + strings.Join(parts, ", ")
}
