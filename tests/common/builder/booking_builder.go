//go:build unit || e2e

package builder

import (
	"court-grid/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type BookingRecordBuilder struct {
	ID            int64
	FacilityID    int64
	Date          string
	Status        string
	CustomerID    *int64
	CustomerName  string
	CustomerPhone string
	Price         decimal.Decimal
	Slices        []shared.BookingSlice
}

func NewBookingRecordBuilder() *BookingRecordBuilder {
	return &BookingRecordBuilder{
		ID:         42,
		FacilityID: 1,
		Date:       "2025-08-01",
		Status:     "paid",
		Price:      decimal.NewFromInt(40),
		Slices: []shared.BookingSlice{
			{ResourceID: 5, Interval: "08:00–09:00"},
		},
	}
}

func (b *BookingRecordBuilder) With(mutate func(*BookingRecordBuilder)) *BookingRecordBuilder {
	mutate(b)
	return b
}

func (b *BookingRecordBuilder) Build() shared.BookingRecord {
	slices := make([]shared.BookingSlice, len(b.Slices))
	copy(slices, b.Slices)
	rec := shared.BookingRecord{
		ID:            b.ID,
		FacilityID:    b.FacilityID,
		Date:          b.Date,
		Status:        b.Status,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Price:         b.Price,
		Slices:        slices,
	}
	if b.CustomerID != nil {
		id := *b.CustomerID
		rec.CustomerID = &id
	}
	return rec
}

// Fluent builder methods
func (b *BookingRecordBuilder) WithID(id int64) *BookingRecordBuilder {
	b.ID = id
	return b
}

func (b *BookingRecordBuilder) WithDate(date string) *BookingRecordBuilder {
	b.Date = date
	return b
}

func (b *BookingRecordBuilder) WithStatus(status string) *BookingRecordBuilder {
	b.Status = status
	return b
}

func (b *BookingRecordBuilder) WithCustomerID(id int64) *BookingRecordBuilder {
	b.CustomerID = &id
	return b
}

func (b *BookingRecordBuilder) WithCustomer(id int64, name, phone string) *BookingRecordBuilder {
	b.CustomerID = &id
	b.CustomerName = name
	b.CustomerPhone = phone
	return b
}

func (b *BookingRecordBuilder) WithSlices(slices ...shared.BookingSlice) *BookingRecordBuilder {
	b.Slices = slices
	return b
}

func (b *BookingRecordBuilder) WithSlice(resourceID int64, interval string) *BookingRecordBuilder {
	b.Slices = []shared.BookingSlice{{ResourceID: resourceID, Interval: interval}}
	return b
}
