package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edonabdullahu1/city-sub003/internal/handler"
	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/utils"
)

const secret = "router-test-secret"

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	log, _ := test.NewNullLogger()
	e := echo.New()
	e.Validator = handler.NewValidator()

	RegisterRoutes(e, handler.NewHealthHandler(nil))
	RegisterAdmin(e, AdminHandlers{
		Prices:    handler.NewAdminPriceHandler(nil, log),
		Inventory: handler.NewInventoryHandler(nil, nil, nil, nil, log),
		Bookings:  handler.NewBookingHandler(nil, log),
	}, secret)
	return e
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(secret, 1, role, 5)
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func TestHealthIsPublic(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminGuards(t *testing.T) {
	e := newServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{"no token", http.MethodPost, "/api/admin/packages/7/calculate-prices", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/admin/bookings", "Bearer nope", http.StatusUnauthorized},
		{"customer", http.MethodPost, "/api/admin/flight-blocks", bearer(t, model.RoleCustomer), http.StatusForbidden},
		{"agent recalculating everything", http.MethodPost, "/api/admin/packages/recalculate-all", bearer(t, model.RoleAgent), http.StatusForbidden},
		{"agent with a bad id", http.MethodPost, "/api/admin/packages/x/calculate-prices", bearer(t, model.RoleAgent), http.StatusBadRequest},
		{"admin with a bad id", http.MethodDelete, "/api/admin/rates/0", bearer(t, model.RoleAdmin), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}
