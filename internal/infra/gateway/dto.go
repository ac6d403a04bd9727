package gateway

import (
	"github.com/shopspring/decimal"
)

type listEnvelope[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

type itemEnvelope[T any] struct {
	Data T `json:"data"`
	// Consistent is set by backends that acknowledge read-your-writes.
	Consistent bool `json:"consistent"`
}

type facilityDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type courtDTO struct {
	ID         int64  `json:"id"`
	FacilityID int64  `json:"facilityId"`
	Name       string `json:"name"`
	CategoryID int64  `json:"categoryId"`
}

type intervalDTO struct {
	ID    int64  `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type customerDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type sliceDTO struct {
	CourtID  int64            `json:"courtId"`
	Interval string           `json:"interval"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

type bookingDTO struct {
	ID         int64            `json:"id"`
	FacilityID int64            `json:"facilityId"`
	Date       string           `json:"date"`
	Status     string           `json:"status"`
	CustomerID *int64           `json:"customerId"`
	Customer   *customerDTO     `json:"customer"`
	Price      *decimal.Decimal `json:"price"`
	Slots      []sliceDTO       `json:"slots"`
}

type markSlotBody struct {
	FacilityID int64  `json:"facilityId"`
	CourtID    int64  `json:"courtId"`
	Date       string `json:"date"`
	Interval   string `json:"interval"`
	CategoryID int64  `json:"categoryId"`
}

type createBookingBody struct {
	FacilityID int64      `json:"facilityId"`
	Date       string     `json:"date"`
	CategoryID int64      `json:"categoryId"`
	Slots      []sliceDTO `json:"slots"`
}

type customerDetailsDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

func priceOrZero(p *decimal.Decimal) decimal.Decimal {
	if p == nil || p.IsNegative() {
		return decimal.Zero
	}
	return *p
}
