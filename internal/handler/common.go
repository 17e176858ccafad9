// Package handler exposes the HTTP API.
package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Edonabdullahu1/city-sub003/internal/pricing"
	"github.com/Edonabdullahu1/city-sub003/internal/repository"
	"github.com/Edonabdullahu1/city-sub003/internal/service"
	"github.com/Edonabdullahu1/city-sub003/pkg/currency"
)

// Validator adapts go-playground/validator to echo.  Field names in
// errors are the JSON names.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error { return cv.v.Struct(i) }

// bind decodes and validates the request body into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		in := pricing.NewInputError()
		in.Add("body", "invalid request body")
		return in
	}
	return c.Validate(req)
}

func validationFields(errs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gtefield":
		return "must not be less than " + fe.Param()
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	}
	return "failed " + fe.Tag()
}

// writeError maps domain errors to HTTP responses.  Anything unknown is
// logged and reported as a generic 500.
func writeError(c echo.Context, log logrus.FieldLogger, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": validationFields(verrs)})
	}
	if in := pricing.AsInputError(err); in != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": in.Fields()})
	}

	switch {
	case errors.Is(err, repository.ErrPackageNotFound),
		errors.Is(err, repository.ErrHotelNotFound),
		errors.Is(err, repository.ErrRateNotFound),
		errors.Is(err, repository.ErrFlightNotFound),
		errors.Is(err, repository.ErrFlightBlockNotFound),
		errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrInsufficientInventory),
		errors.Is(err, repository.ErrConflict),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrBookingExpired):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNoRate),
		errors.Is(err, service.ErrNoFlightOption),
		errors.Is(err, pricing.ErrUnsupportedOccupancy),
		errors.Is(err, pricing.ErrInvalidStay):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}

	log.WithError(err).WithFields(logrus.Fields{
		"method":     c.Request().Method,
		"path":       c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}).Error("request failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		in := pricing.NewInputError()
		in.Add(name, "must be a positive integer")
		return 0, in
	}
	return id, nil
}

// parseDay reads an optional YYYY-MM-DD value, recording a field error
// on in when it does not parse.
func parseDay(in *pricing.InputError, field, s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		in.Add(field, "must be a date (YYYY-MM-DD)")
		return nil
	}
	return &t
}

// partyReq is the occupancy part shared by quote and booking requests.
type partyReq struct {
	Adults    int   `json:"adults" validate:"min=1"`
	Children  int   `json:"children" validate:"min=0"`
	ChildAges []int `json:"child_ages" validate:"omitempty,dive,min=0,max=17"`
}

func (p partyReq) occupancy() pricing.Occupancy {
	return pricing.Occupancy{Adults: p.Adults, Children: p.Children, ChildAges: p.ChildAges}
}

func eur(cents int64) string { return currency.FormatEUR(cents) }
