//go:build unit || e2e

package builder

import (
	"time"

	"court-grid/internal/domain/event"

	"github.com/shopspring/decimal"
)

type EnvelopeBuilder struct {
	Kind          event.Kind
	FacilityID    int64
	BookingID     *int64
	ResourceID    int64
	Date          string
	Interval      string
	Status        string
	CustomerID    *int64
	CustomerName  string
	CustomerPhone string
	Price         decimal.Decimal
	Source        string
	SentAt        time.Time
}

func NewEnvelopeBuilder() *EnvelopeBuilder {
	id := int64(42)
	return &EnvelopeBuilder{
		Kind:       event.KindBookingCreated,
		FacilityID: 1,
		BookingID:  &id,
		ResourceID: 5,
		Date:       "2025-08-01",
		Interval:   "08:00–09:00",
		Status:     "paid",
		Price:      decimal.NewFromInt(40),
		Source:     "other-client",
		SentAt:     time.Date(2025, 8, 1, 7, 0, 0, 0, time.UTC),
	}
}

func (b *EnvelopeBuilder) With(mutate func(*EnvelopeBuilder)) *EnvelopeBuilder {
	mutate(b)
	return b
}

func (b *EnvelopeBuilder) Build() event.Envelope {
	env := event.Envelope{
		Kind:          b.Kind.String(),
		FacilityID:    b.FacilityID,
		ResourceID:    b.ResourceID,
		Date:          b.Date,
		Interval:      b.Interval,
		Status:        b.Status,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Price:         b.Price,
		Source:        b.Source,
		SentAt:        b.SentAt,
	}
	if b.BookingID != nil {
		id := *b.BookingID
		env.BookingID = &id
	}
	if b.CustomerID != nil {
		id := *b.CustomerID
		env.CustomerID = &id
	}
	return env
}

// Fluent builder methods
func (b *EnvelopeBuilder) WithKind(kind event.Kind) *EnvelopeBuilder {
	b.Kind = kind
	return b
}

func (b *EnvelopeBuilder) WithBookingID(id int64) *EnvelopeBuilder {
	b.BookingID = &id
	return b
}

func (b *EnvelopeBuilder) WithFacilityID(id int64) *EnvelopeBuilder {
	b.FacilityID = id
	return b
}

func (b *EnvelopeBuilder) WithResourceID(id int64) *EnvelopeBuilder {
	b.ResourceID = id
	return b
}

func (b *EnvelopeBuilder) WithDate(date string) *EnvelopeBuilder {
	b.Date = date
	return b
}

func (b *EnvelopeBuilder) WithInterval(interval string) *EnvelopeBuilder {
	b.Interval = interval
	return b
}

func (b *EnvelopeBuilder) WithStatus(status string) *EnvelopeBuilder {
	b.Status = status
	return b
}

func (b *EnvelopeBuilder) WithCustomer(id int64, name, phone string) *EnvelopeBuilder {
	b.CustomerID = &id
	b.CustomerName = name
	b.CustomerPhone = phone
	return b
}

func (b *EnvelopeBuilder) WithPrice(price int64) *EnvelopeBuilder {
	b.Price = decimal.NewFromInt(price)
	return b
}

func (b *EnvelopeBuilder) AsCompleted() *EnvelopeBuilder {
	b.Kind = event.KindBookingCompleted
	b.Status = "completed"
	return b
}

func (b *EnvelopeBuilder) AsCancelled() *EnvelopeBuilder {
	b.Kind = event.KindBookingCancelled
	b.Status = "cancelled"
	return b
}
