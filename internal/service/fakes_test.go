package service

import (
	"context"
	"sync"
	"time"

	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/repository"
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

func ptr[T any](v T) *T { return &v }

type fakePackages struct{ byID map[uint64]*model.Package }

func (f *fakePackages) GetByID(_ context.Context, id uint64) (*model.Package, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrPackageNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePackages) GetBySlug(_ context.Context, slug string) (*model.Package, error) {
	for _, p := range f.byID {
		if p.Slug == slug && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrPackageNotFound
}

func (f *fakePackages) ListActiveIDs(context.Context) ([]uint64, error) {
	var ids []uint64
	for id := uint64(1); id <= uint64(len(f.byID))+10; id++ {
		if p, ok := f.byID[id]; ok && p.IsActive {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeFlights struct {
	flights map[uint64]model.Flight
	blocks  map[uint64][]model.FlightBlock
}

func (f *fakeFlights) GetFlight(_ context.Context, id uint64) (*model.Flight, error) {
	fl, ok := f.flights[id]
	if !ok {
		return nil, repository.ErrFlightNotFound
	}
	return &fl, nil
}

func (f *fakeFlights) ListBlocksForPackage(_ context.Context, packageID uint64) ([]model.FlightBlock, error) {
	return f.blocks[packageID], nil
}

type fakeHotels struct {
	hotels map[uint64]model.Hotel
	rates  map[uint64][]model.HotelRate
}

func (f *fakeHotels) GetByID(_ context.Context, id uint64) (*model.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return nil, repository.ErrHotelNotFound
	}
	return &h, nil
}

func (f *fakeHotels) ListByIDs(_ context.Context, ids []uint64) ([]model.Hotel, error) {
	var out []model.Hotel
	for _, id := range ids {
		if h, ok := f.hotels[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHotels) RatesForHotels(_ context.Context, ids []uint64) (map[uint64][]model.HotelRate, error) {
	out := make(map[uint64][]model.HotelRate)
	for _, id := range ids {
		if r, ok := f.rates[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (f *fakeHotels) RatesForHotel(_ context.Context, id uint64) ([]model.HotelRate, error) {
	return f.rates[id], nil
}

type fakePrices struct {
	stored   map[uint64][]model.PackagePrice
	replaces int
	lists    int
	// afterList runs once, after ListByPackage has read its rows and
	// before it returns them.
	afterList func()
}

func (f *fakePrices) ReplaceForPackage(_ context.Context, packageID uint64, rows []model.PackagePrice) error {
	if f.stored == nil {
		f.stored = make(map[uint64][]model.PackagePrice)
	}
	f.replaces++
	f.stored[packageID] = append([]model.PackagePrice(nil), rows...)
	return nil
}

func (f *fakePrices) ListByPackage(_ context.Context, packageID uint64) ([]model.PackagePrice, error) {
	f.lists++
	rows := f.stored[packageID]
	if hook := f.afterList; hook != nil {
		f.afterList = nil
		hook()
	}
	return rows, nil
}

type published struct {
	queue string
	event any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, queue string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{queue: queue, event: event})
	return nil
}

func (p *recordingPublisher) all() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.events...)
}

// world is a package with one block, one priced hotel and one hotel
// without rates.
func world() (*fakePackages, *fakeFlights, *fakeHotels) {
	out := model.Flight{ID: 1, FlightNumber: "OS101", Origin: "PRN", Destination: "IST",
		DepartureTime: at("2026-07-10T08:00:00Z"), ArrivalTime: at("2026-07-10T10:00:00Z"),
		PriceCents: 12000, AvailableSeats: 40, TotalSeats: 40}
	ret := model.Flight{ID: 2, FlightNumber: "OS102", Origin: "IST", Destination: "PRN",
		DepartureTime: at("2026-07-13T18:00:00Z"), ArrivalTime: at("2026-07-13T20:00:00Z"),
		PriceCents: 12000, AvailableSeats: 40, TotalSeats: 40}

	packages := &fakePackages{byID: map[uint64]*model.Package{
		7: {ID: 7, Slug: "istanbul-summer", Name: "Istanbul Summer", Destination: "Istanbul",
			HotelIDs: []uint64{10, 11}, IsActive: true},
	}}
	flights := &fakeFlights{
		flights: map[uint64]model.Flight{1: out, 2: ret},
		blocks: map[uint64][]model.FlightBlock{
			7: {{ID: 5, BlockGroupID: "IST-JUL", PackageID: 7, Outbound: out, Return: ret, IsActive: true}},
		},
	}
	hotels := &fakeHotels{
		hotels: map[uint64]model.Hotel{
			10: {ID: 10, Name: "Sea View", City: "Istanbul", Stars: 4, RoomsAvailable: 20, TotalRooms: 20},
			11: {ID: 11, Name: "Old Town", City: "Istanbul", Stars: 3, RoomsAvailable: 5, TotalRooms: 5},
		},
		rates: map[uint64][]model.HotelRate{
			10: {{ID: 1, HotelID: 10, ValidFrom: day("2026-06-01"), ValidTo: day("2026-09-30"),
				SingleCents: 12000, DoubleCents: 16000, ExtraBedCents: 10000, ChildCents: 3000,
				ChildAgeMin: 7, ChildAgeMax: 11, Board: "HB"}},
		},
	}
	return packages, flights, hotels
}
