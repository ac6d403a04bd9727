package shared

import (
	"context"

	"github.com/shopspring/decimal"

	"court-grid/internal/domain/event"
	"court-grid/internal/domain/slot"
)

type PageInfo struct {
	Page       int
	TotalPages int
}

func (p PageInfo) HasNext() bool {
	return p.Page < p.TotalPages
}

type Facility struct {
	ID   int64
	Name string
}

type Court struct {
	ID         int64
	FacilityID int64
	Name       string
	CategoryID int64
}

// BookingSlice is one resource/interval cell covered by a booking.
type BookingSlice struct {
	ResourceID int64
	Interval   string
	Price      decimal.Decimal
}

// BookingRecord is a booking as listed by the backend; one record may span
// several cells.
type BookingRecord struct {
	ID            int64
	FacilityID    int64
	Date          string
	Status        string
	CustomerID    *int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Price         decimal.Decimal
	Slices        []BookingSlice
}

type BookingPage struct {
	Records []BookingRecord
	PageInfo
}

type MarkSlotRequest struct {
	FacilityID int64
	ResourceID int64
	Date       slot.Date
	Interval   string
	CategoryID int64
}

type MarkSlotResult struct {
	BookingID  int64
	ResourceID int64
	Interval   string
	Price      decimal.Decimal
	Status     string
}

type CreateBookingRequest struct {
	FacilityID int64
	Date       slot.Date
	CategoryID int64
	Slots      []BookingSlice
}

type CreateBookingResult struct {
	BookingID int64
	Price     decimal.Decimal
	Status    string
	Slices    []BookingSlice
	// Consistent is set when the backend guarantees the booking is already
	// visible to list reads.
	Consistent bool
}

type CompleteBookingResult struct {
	BookingID int64
	Status    string
}

type CustomerDetails struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	AvatarURL string
}

type CatalogGateway interface {
	ListFacilities(ctx context.Context, page int) ([]Facility, PageInfo, error)
	ListCourts(ctx context.Context, facilityID int64) ([]Court, error)
	ListIntervals(ctx context.Context) ([]slot.IntervalDef, error)
}

type BookingGateway interface {
	ListBookings(ctx context.Context, facilityID int64, date slot.Date, page int) (*BookingPage, error)
	MarkSlot(ctx context.Context, req MarkSlotRequest) (*MarkSlotResult, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*CreateBookingResult, error)
	CompleteBooking(ctx context.Context, bookingID int64) (*CompleteBookingResult, error)
}

type AccountGateway interface {
	LookupCustomer(ctx context.Context, customerID int64) (*CustomerDetails, error)
}

// EventFeed is the push channel. Delivery is at-least-once and ordered only
// per publishing client.
type EventFeed interface {
	Join(ctx context.Context, facilityID int64) error
	Leave(ctx context.Context, facilityID int64) error
	Publish(ctx context.Context, env event.Envelope) error
	Events() <-chan event.Envelope
	// Lost fires after envelopes were dropped on a full buffer. Signals
	// coalesce; the receiver is expected to resync from the backend.
	Lost() <-chan struct{}
	Close() error
}
