package event

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"court-grid/internal/domain/slot"
)

var (
	ErrUnknownKind   = errors.New("unknown event kind")
	ErrMissingFields = errors.New("event is missing slot fields")
)

type Kind string

const (
	KindBookingCreated   Kind = "BookingCreated"
	KindBookingUpdated   Kind = "BookingUpdated"
	KindBookingCompleted Kind = "BookingCompleted"
	KindBookingCancelled Kind = "BookingCancelled"
)

func (k Kind) String() string { return string(k) }

// IsTerminal reports whether events of this kind settle a booking for good.
func (k Kind) IsTerminal() bool {
	return k == KindBookingCompleted || k == KindBookingCancelled
}

func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.TrimSpace(raw)) {
	case KindBookingCreated:
		return KindBookingCreated, nil
	case KindBookingUpdated:
		return KindBookingUpdated, nil
	case KindBookingCompleted:
		return KindBookingCompleted, nil
	case KindBookingCancelled:
		return KindBookingCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

// Payload carries the slot fields shared by every event kind.
type Payload struct {
	FacilityID int64
	BookingID  *int64
	ResourceID int64
	RawDate    string
	Interval   string
	RawStatus  string
	CustomerID *int64
	Customer   slot.Customer
	Price      decimal.Decimal
	Source     string
}

// Event is the closed set of push notifications.
type Event interface {
	Kind() Kind
	Data() Payload
	sealed()
}

type BookingCreated struct{ Payload }

type BookingUpdated struct{ Payload }

type BookingCompleted struct{ Payload }

type BookingCancelled struct{ Payload }

func (BookingCreated) Kind() Kind   { return KindBookingCreated }
func (BookingUpdated) Kind() Kind   { return KindBookingUpdated }
func (BookingCompleted) Kind() Kind { return KindBookingCompleted }
func (BookingCancelled) Kind() Kind { return KindBookingCancelled }

func (e BookingCreated) Data() Payload   { return e.Payload }
func (e BookingUpdated) Data() Payload   { return e.Payload }
func (e BookingCompleted) Data() Payload { return e.Payload }
func (e BookingCancelled) Data() Payload { return e.Payload }

func (BookingCreated) sealed()   {}
func (BookingUpdated) sealed()   {}
func (BookingCompleted) sealed() {}
func (BookingCancelled) sealed() {}

// Decode turns a wire envelope into its typed variant. Unknown kinds are an
// error; unknown statuses are not, they are mapped later.
func Decode(env Envelope) (Event, error) {
	kind, err := ParseKind(env.Kind)
	if err != nil {
		return nil, err
	}
	if env.ResourceID <= 0 || strings.TrimSpace(env.Date) == "" || strings.TrimSpace(env.Interval) == "" {
		return nil, fmt.Errorf("%w: kind=%s", ErrMissingFields, kind)
	}

	p := Payload{
		FacilityID: env.FacilityID,
		BookingID:  env.BookingID,
		ResourceID: env.ResourceID,
		RawDate:    env.Date,
		Interval:   env.Interval,
		RawStatus:  env.Status,
		CustomerID: env.CustomerID,
		Customer: slot.Customer{
			Name:  env.CustomerName,
			Phone: env.CustomerPhone,
			Email: env.CustomerEmail,
		},
		Price:  env.Price,
		Source: env.Source,
	}
	if p.Price.IsNegative() {
		p.Price = decimal.Zero
	}

	switch kind {
	case KindBookingCreated:
		return BookingCreated{p}, nil
	case KindBookingUpdated:
		return BookingUpdated{p}, nil
	case KindBookingCompleted:
		return BookingCompleted{p}, nil
	case KindBookingCancelled:
		return BookingCancelled{p}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Kind)
	}
}
