package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Edonabdullahu1/city-sub003/internal/config"
	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/pricing"
	"github.com/Edonabdullahu1/city-sub003/internal/repository"
	"github.com/Edonabdullahu1/city-sub003/internal/service"
	"github.com/Edonabdullahu1/city-sub003/internal/utils"
)

type fakeEngine struct {
	quoteReq   service.QuoteRequest
	quote      *service.QuoteResult
	quoteErr   error
	recalced   []uint64
	recalcErr  error
	sums       []service.RecalcSummary
	allErr     error
	matrix     []model.PackagePrice
	pkg        *model.Package
	slugErr    error
	matrixErr  error
	recalcCall int
}

func (f *fakeEngine) Recalculate(_ context.Context, id uint64) (*service.RecalcSummary, error) {
	f.recalcCall++
	f.recalced = append(f.recalced, id)
	if f.recalcErr != nil {
		return nil, f.recalcErr
	}
	return &service.RecalcSummary{PackageID: id, Rows: 6}, nil
}

func (f *fakeEngine) RecalculateAll(context.Context) ([]service.RecalcSummary, error) {
	return f.sums, f.allErr
}

func (f *fakeEngine) Matrix(context.Context, uint64) ([]model.PackagePrice, error) {
	return f.matrix, f.matrixErr
}

func (f *fakeEngine) PackageBySlug(context.Context, string) (*model.Package, []model.PackagePrice, error) {
	return f.pkg, f.matrix, f.slugErr
}

func (f *fakeEngine) Quote(_ context.Context, req service.QuoteRequest) (*service.QuoteResult, error) {
	f.quoteReq = req
	return f.quote, f.quoteErr
}

type fakeSearcher struct {
	got  repository.PackageSearchQuery
	rows []repository.PackageSearchRow
}

func (f *fakeSearcher) Search(_ context.Context, q repository.PackageSearchQuery) ([]repository.PackageSearchRow, int64, error) {
	f.got = q
	return f.rows, int64(len(f.rows)), nil
}

type fakeFlow struct {
	created   service.CreateBookingInput
	booking   *model.Booking
	quote     *service.QuoteResult
	err       error
	expired   int
	listState string
}

func (f *fakeFlow) CreateSoft(_ context.Context, in service.CreateBookingInput) (*model.Booking, *service.QuoteResult, error) {
	f.created = in
	return f.booking, f.quote, f.err
}
func (f *fakeFlow) Get(context.Context, string) (*model.Booking, error)      { return f.booking, f.err }
func (f *fakeFlow) Confirm(context.Context, string) (*model.Booking, error)  { return f.booking, f.err }
func (f *fakeFlow) MarkPaid(context.Context, string) (*model.Booking, error) { return f.booking, f.err }
func (f *fakeFlow) Cancel(context.Context, string) (*model.Booking, error)   { return f.booking, f.err }
func (f *fakeFlow) List(_ context.Context, status string, _, _ int) ([]model.Booking, int64, error) {
	f.listState = status
	return nil, 0, f.err
}
func (f *fakeFlow) ExpireSoftBookings(context.Context) (int, error) { return f.expired, f.err }

type fakeUsers struct{ u model.User }

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	if email != f.u.Email {
		return model.User{}, repository.ErrUserNotFound
	}
	return f.u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	if id != f.u.ID {
		return model.User{}, repository.ErrUserNotFound
	}
	return f.u, nil
}

type fakeTokens struct {
	stored  map[string]uint64
	revoked []string
}

func (f *fakeTokens) StoreRefresh(_ context.Context, userID uint64, hash string, _ time.Time) error {
	if f.stored == nil {
		f.stored = map[string]uint64{}
	}
	f.stored[hash] = userID
	return nil
}

func (f *fakeTokens) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	uid, ok := f.stored[hash]
	if !ok {
		return 0, errors.New("unknown token")
	}
	return uid, nil
}

func (f *fakeTokens) Rotate(ctx context.Context, oldHash string, userID uint64, newHash string, exp time.Time) error {
	if _, ok := f.stored[oldHash]; !ok {
		return repository.ErrRefreshInvalid
	}
	f.revoked = append(f.revoked, oldHash)
	delete(f.stored, oldHash)
	return f.StoreRefresh(ctx, userID, newHash, exp)
}

func (f *fakeTokens) RevokeByHash(_ context.Context, hash string) error {
	delete(f.stored, hash)
	f.revoked = append(f.revoked, hash)
	return nil
}

func (f *fakeTokens) RevokeAllForUser(context.Context, uint64) error { return nil }

type fakeHotels struct {
	rates   []model.HotelRate
	created *model.HotelRate
}

func (f *fakeHotels) GetByID(_ context.Context, id uint64) (*model.Hotel, error) {
	if id != 10 {
		return nil, repository.ErrHotelNotFound
	}
	return &model.Hotel{ID: 10, Name: "Hotel Adriatic"}, nil
}
func (f *fakeHotels) RatesForHotel(context.Context, uint64) ([]model.HotelRate, error) {
	return f.rates, nil
}
func (f *fakeHotels) CreateRate(_ context.Context, r *model.HotelRate) error {
	r.ID = 99
	f.created = r
	return nil
}
func (f *fakeHotels) DeleteRate(_ context.Context, id uint64) (uint64, error) {
	if id != 99 {
		return 0, repository.ErrRateNotFound
	}
	return 10, nil
}

type fakeFlightAdmin struct {
	flights map[uint64]model.Flight
	block   *model.FlightBlock
}

func (f *fakeFlightAdmin) GetFlight(_ context.Context, id uint64) (*model.Flight, error) {
	fl, ok := f.flights[id]
	if !ok {
		return nil, repository.ErrFlightNotFound
	}
	return &fl, nil
}
func (f *fakeFlightAdmin) CreateBlock(_ context.Context, b *model.FlightBlock) error {
	b.ID = 5
	f.block = b
	return nil
}

type fakePackageLookup struct{}

func (fakePackageLookup) GetByID(_ context.Context, id uint64) (*model.Package, error) {
	if id != 7 {
		return nil, repository.ErrPackageNotFound
	}
	return &model.Package{ID: 7, IsActive: true}, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func fields(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decode(t, rec)
	f, ok := body["fields"].(map[string]any)
	require.True(t, ok, "response has no fields: %s", rec.Body.String())
	return f
}

func sampleQuote() *service.QuoteResult {
	block := uint64(5)
	return &service.QuoteResult{
		Package: &model.Package{ID: 7},
		Hotel:   model.Hotel{ID: 10, Name: "Hotel Adriatic"},
		Rate:    model.HotelRate{ID: 1, Board: "BB"},
		Option:  pricing.FlightOption{BlockID: &block},
		Quote:   pricing.Quote{TotalCents: 115200},
	}
}

func TestQuote(t *testing.T) {
	log, _ := test.NewNullLogger()

	t.Run("ok", func(t *testing.T) {
		eng := &fakeEngine{quote: sampleQuote()}
		e := newEcho()
		e.POST("/api/packages/:id/quote", NewPackageHandler(nil, eng, log).Quote)

		rec := do(e, http.MethodPost, "/api/packages/7/quote",
			`{"adults":2,"children":1,"child_ages":[6],"hotel_id":10,"check_in":"2026-07-10","check_out":"2026-07-13"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode(t, rec)
		assert.Equal(t, "€1,152.00", body["total_eur"])
		assert.Equal(t, "BB", body["board"])
		assert.Equal(t, uint64(7), eng.quoteReq.PackageID)
		assert.Equal(t, []int{6}, eng.quoteReq.Occupancy.ChildAges)
		require.NotNil(t, eng.quoteReq.CheckIn)
		assert.Equal(t, "2026-07-10", eng.quoteReq.CheckIn.Format(time.DateOnly))
	})

	t.Run("missing hotel", func(t *testing.T) {
		e := newEcho()
		e.POST("/api/packages/:id/quote", NewPackageHandler(nil, &fakeEngine{}, log).Quote)
		rec := do(e, http.MethodPost, "/api/packages/7/quote", `{"adults":2}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, fields(t, rec), "hotel_id")
	})

	t.Run("half a date range", func(t *testing.T) {
		e := newEcho()
		e.POST("/api/packages/:id/quote", NewPackageHandler(nil, &fakeEngine{}, log).Quote)
		rec := do(e, http.MethodPost, "/api/packages/7/quote", `{"adults":2,"hotel_id":10,"check_in":"2026-07-10"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, fields(t, rec), "check_out")
	})

	t.Run("bad id", func(t *testing.T) {
		e := newEcho()
		e.POST("/api/packages/:id/quote", NewPackageHandler(nil, &fakeEngine{}, log).Quote)
		rec := do(e, http.MethodPost, "/api/packages/abc/quote", `{"adults":2,"hotel_id":10}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, fields(t, rec), "id")
	})

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown package", repository.ErrPackageNotFound, http.StatusNotFound},
		{"no rate", service.ErrNoRate, http.StatusUnprocessableEntity},
		{"occupancy", pricing.NewOccupancy(4).Validate(), http.StatusBadRequest},
		{"database", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			e.POST("/api/packages/:id/quote", NewPackageHandler(nil, &fakeEngine{quoteErr: tc.err}, log).Quote)
			rec := do(e, http.MethodPost, "/api/packages/7/quote", `{"adults":2,"hotel_id":10}`)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestServerErrorIsLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	e := newEcho()
	e.POST("/api/packages/:id/quote", NewPackageHandler(nil, &fakeEngine{quoteErr: errors.New("boom")}, log).Quote)

	rec := do(e, http.MethodPost, "/api/packages/7/quote", `{"adults":2,"hotel_id":10}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decode(t, rec)["error"])
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "request failed", hook.LastEntry().Message)
}

func TestSearch(t *testing.T) {
	log, _ := test.NewNullLogger()

	t.Run("defaults", func(t *testing.T) {
		s := &fakeSearcher{rows: []repository.PackageSearchRow{{ID: 7, Slug: "split-summer", FromCents: 99900}}}
		e := newEcho()
		e.GET("/api/packages/search", NewPackageHandler(s, nil, log).Search)

		rec := do(e, http.MethodGet, "/api/packages/search?destination=%20Split%20", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, s.got.Adults)
		assert.Equal(t, 0, s.got.Children)
		assert.Equal(t, "Split", s.got.Destination)
		assert.Equal(t, 20, s.got.PageSize)

		data := decode(t, rec)["data"].([]any)
		require.Len(t, data, 1)
		assert.Equal(t, "€999.00", data[0].(map[string]any)["from_eur"])
	})

	t.Run("too many adults", func(t *testing.T) {
		e := newEcho()
		e.GET("/api/packages/search", NewPackageHandler(&fakeSearcher{}, nil, log).Search)
		rec := do(e, http.MethodGet, "/api/packages/search?adults=4", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, fields(t, rec), "adults")
	})

	t.Run("garbage", func(t *testing.T) {
		e := newEcho()
		e.GET("/api/packages/search", NewPackageHandler(&fakeSearcher{}, nil, log).Search)
		rec := do(e, http.MethodGet, "/api/packages/search?adults=two", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetBySlug(t *testing.T) {
	log, _ := test.NewNullLogger()
	eng := &fakeEngine{
		pkg:    &model.Package{ID: 7, Slug: "split-summer"},
		matrix: []model.PackagePrice{{PackageID: 7, TotalPriceCents: 115200}},
	}
	e := newEcho()
	e.GET("/api/public/packages/:slug", NewPackageHandler(nil, eng, log).GetBySlug)

	rec := do(e, http.MethodGet, "/api/public/packages/split-summer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	prices := decode(t, rec)["prices"].([]any)
	require.Len(t, prices, 1)
	assert.Equal(t, "€1,152.00", prices[0].(map[string]any)["total_eur"])

	eng.slugErr = repository.ErrPackageNotFound
	rec = do(e, http.MethodGet, "/api/public/packages/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBooking(t *testing.T) {
	log, _ := test.NewNullLogger()
	body := `{"package_id":7,"hotel_id":10,"adults":2,"customer_name":"Ana Kovač","customer_email":"ana@example.com"}`

	t.Run("created", func(t *testing.T) {
		flow := &fakeFlow{
			booking: &model.Booking{ID: 1, ReservationCode: "TRV-0A1B2C3D", Status: model.BookingSoft, TotalAmountCents: 115200},
			quote:   sampleQuote(),
		}
		e := newEcho()
		e.POST("/api/bookings", NewBookingHandler(flow, log).Create)

		rec := do(e, http.MethodPost, "/api/bookings", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		b := decode(t, rec)["booking"].(map[string]any)
		assert.Equal(t, "TRV-0A1B2C3D", b["reservation_code"])
		assert.Equal(t, "SOFT", b["status"])
		assert.Equal(t, "€1,152.00", b["total_eur"])
		assert.Equal(t, 2, flow.created.Occupancy.Adults)
		assert.Equal(t, "ana@example.com", flow.created.CustomerEmail)
	})

	t.Run("bad email", func(t *testing.T) {
		e := newEcho()
		e.POST("/api/bookings", NewBookingHandler(&fakeFlow{}, log).Create)
		rec := do(e, http.MethodPost, "/api/bookings", strings.Replace(body, "ana@example.com", "not-an-email", 1))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []any{"must be a valid email"}, fields(t, rec)["customer_email"])
	})

	t.Run("sold out", func(t *testing.T) {
		e := newEcho()
		e.POST("/api/bookings", NewBookingHandler(&fakeFlow{err: repository.ErrInsufficientInventory}, log).Create)
		rec := do(e, http.MethodPost, "/api/bookings", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("package flights sold out", func(t *testing.T) {
		e := newEcho()
		e.POST("/api/bookings", NewBookingHandler(&fakeFlow{err: service.ErrSoldOut}, log).Create)
		rec := do(e, http.MethodPost, "/api/bookings", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestBookingTransitions(t *testing.T) {
	log, _ := test.NewNullLogger()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"expired", service.ErrBookingExpired, http.StatusConflict},
		{"wrong state", service.ErrInvalidTransition, http.StatusConflict},
		{"unknown", repository.ErrBookingNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flow := &fakeFlow{booking: &model.Booking{ReservationCode: "TRV-0A1B2C3D", Status: model.BookingConfirmed}, err: tc.err}
			h := NewBookingHandler(flow, log)
			e := newEcho()
			e.POST("/api/bookings/:code/confirm", h.Confirm)
			e.DELETE("/api/bookings/:code", h.Cancel)

			assert.Equal(t, tc.want, do(e, http.MethodPost, "/api/bookings/TRV-0A1B2C3D/confirm", "").Code)
			assert.Equal(t, tc.want, do(e, http.MethodDelete, "/api/bookings/TRV-0A1B2C3D", "").Code)
		})
	}
}

func TestExpireReportsPartialFailure(t *testing.T) {
	log, _ := test.NewNullLogger()
	e := newEcho()
	e.POST("/api/admin/bookings/expire", NewBookingHandler(&fakeFlow{expired: 3, err: errors.New("one failed")}, log).Expire)

	rec := do(e, http.MethodPost, "/api/admin/bookings/expire", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 3, body["expired"])
	assert.Equal(t, true, body["errors"])
}

func TestLogin(t *testing.T) {
	log, _ := test.NewNullLogger()
	hash, err := utils.HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7}
	users := &fakeUsers{u: model.User{ID: 3, Email: "agent@example.com", PasswordHash: hash, Role: model.RoleAgent, IsActive: true}}
	tokens := &fakeTokens{}
	h := NewAuthHandler(cfg, users, tokens, log)
	e := newEcho()
	e.POST("/api/auth/login", h.Login)
	e.POST("/api/auth/refresh", h.Refresh)

	rec := do(e, http.MethodPost, "/api/auth/login", `{"email":"Agent@Example.com","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp authResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	uid, role, err := utils.ParseAccessToken("test-secret", resp.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), uid)
	assert.Equal(t, model.RoleAgent, role)
	assert.Len(t, tokens.stored, 1)

	// the refresh token rotates
	rec = do(e, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"`+resp.Refresh.Token+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, tokens.revoked, 1)
	rec = do(e, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"`+resp.Refresh.Token+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/api/auth/login", `{"email":"agent@example.com","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	users.u.IsActive = false
	rec = do(e, http.MethodPost, "/api/auth/login", `{"email":"agent@example.com","password":"s3cret-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type downDB struct{}

func (downDB) PingContext(context.Context) error { return errors.New("dial tcp: refused") }

func TestHealth(t *testing.T) {
	e := newEcho()
	e.GET("/healthz", NewHealthHandler(downDB{}).Health)
	assert.Equal(t, http.StatusServiceUnavailable, do(e, http.MethodGet, "/healthz", "").Code)

	e = newEcho()
	e.GET("/healthz", NewHealthHandler(nil).Health)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/healthz", "").Code)
}

func TestCreateRate(t *testing.T) {
	log, _ := test.NewNullLogger()
	hotels := &fakeHotels{}
	e := newEcho()
	e.POST("/api/admin/hotels/:id/rates", NewInventoryHandler(hotels, nil, nil, nil, log).CreateRate)

	rec := do(e, http.MethodPost, "/api/admin/hotels/10/rates",
		`{"valid_from":"2026-06-01","valid_to":"2026-09-30","single_cents":9000,"double_cents":12000,"child_age_min":2,"child_age_max":11,"board":" bb "}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, hotels.created)
	assert.Equal(t, "BB", hotels.created.Board)
	assert.Equal(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC), hotels.created.ValidTo)

	rec = do(e, http.MethodPost, "/api/admin/hotels/10/rates",
		`{"valid_from":"2026-06-01","valid_to":"2026-05-30","board":"BB"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, fields(t, rec), "valid_to")

	rec = do(e, http.MethodPost, "/api/admin/hotels/11/rates",
		`{"valid_from":"2026-06-01","valid_to":"2026-06-30","board":"BB"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateFlightBlock(t *testing.T) {
	log, _ := test.NewNullLogger()
	out := model.Flight{ID: 1, ArrivalTime: time.Date(2026, 7, 10, 11, 0, 0, 0, time.UTC)}
	ret := model.Flight{ID: 2, DepartureTime: time.Date(2026, 7, 13, 18, 0, 0, 0, time.UTC)}
	sameDay := model.Flight{ID: 3, DepartureTime: time.Date(2026, 7, 10, 20, 0, 0, 0, time.UTC)}
	flights := &fakeFlightAdmin{flights: map[uint64]model.Flight{1: out, 2: ret, 3: sameDay}}
	eng := &fakeEngine{}

	e := newEcho()
	e.POST("/api/admin/flight-blocks", NewInventoryHandler(nil, flights, fakePackageLookup{}, eng, log).CreateFlightBlock)

	rec := do(e, http.MethodPost, "/api/admin/flight-blocks",
		`{"package_id":7,"block_group_id":"SPU-JUL-1","outbound_flight_id":1,"return_flight_id":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, flights.block)
	assert.True(t, flights.block.IsActive)
	assert.Equal(t, []uint64{7}, eng.recalced)
	assert.Contains(t, decode(t, rec), "recalculation")

	rec = do(e, http.MethodPost, "/api/admin/flight-blocks",
		`{"package_id":7,"block_group_id":"SPU-JUL-2","outbound_flight_id":1,"return_flight_id":3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, fields(t, rec), "return_flight_id")

	rec = do(e, http.MethodPost, "/api/admin/flight-blocks",
		`{"package_id":8,"block_group_id":"X","outbound_flight_id":1,"return_flight_id":2}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, eng.recalcCall)
}

func TestRecalculateAll(t *testing.T) {
	log, _ := test.NewNullLogger()
	eng := &fakeEngine{
		sums:   []service.RecalcSummary{{PackageID: 7, Rows: 6}},
		allErr: errors.New("package 8: boom"),
	}
	e := newEcho()
	e.POST("/api/admin/prices/recalculate", NewAdminPriceHandler(eng, log).RecalculateAll)

	rec := do(e, http.MethodPost, "/api/admin/prices/recalculate", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	eng.sums, eng.allErr = nil, errors.New("db down")
	rec = do(e, http.MethodPost, "/api/admin/prices/recalculate", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
