package event

import (
	"time"

	"github.com/shopspring/decimal"

	"court-grid/internal/domain/slot"
)

// Envelope is the JSON shape exchanged over the push channel.
type Envelope struct {
	Kind          string          `json:"kind"`
	FacilityID    int64           `json:"facilityId"`
	BookingID     *int64          `json:"bookingId,omitempty"`
	ResourceID    int64           `json:"resourceId"`
	Date          string          `json:"date"`
	Interval      string          `json:"interval"`
	Status        string          `json:"status"`
	CustomerID    *int64          `json:"customerId,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	CustomerEmail string          `json:"customerEmail,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Source        string          `json:"source,omitempty"`
	SentAt        time.Time       `json:"sentAt"`
}

// NewEnvelope describes a snapshot written locally so other clients can
// reconcile it.
func NewEnvelope(kind Kind, facilityID int64, key slot.Key, s slot.Snapshot, source string, sentAt time.Time) Envelope {
	env := Envelope{
		Kind:       kind.String(),
		FacilityID: facilityID,
		ResourceID: key.ResourceID,
		Date:       key.Date.String(),
		Interval:   key.Interval,
		Status:     s.OriginalStatus,
		Price:      s.Price,
		Source:     source,
		SentAt:     sentAt.UTC(),
	}
	if env.Status == "" {
		env.Status = s.Status.RawLabel()
	}
	if s.BookingID != nil {
		id := *s.BookingID
		env.BookingID = &id
	}
	if s.CustomerID != nil {
		id := *s.CustomerID
		env.CustomerID = &id
	}
	if !s.Customer.Loading {
		env.CustomerName = s.Customer.Name
		env.CustomerPhone = s.Customer.Phone
		env.CustomerEmail = s.Customer.Email
	}
	return env
}
