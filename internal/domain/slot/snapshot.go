package slot

import (
	"github.com/shopspring/decimal"
)

// Origin records which source last wrote a snapshot.
type Origin string

const (
	OriginNone   Origin = ""
	OriginLoad   Origin = "load"
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

type Customer struct {
	Name    string
	Phone   string
	Email   string
	Loading bool
}

// LoadingCustomer is the placeholder shown until customer details arrive.
func LoadingCustomer() Customer {
	return Customer{Loading: true}
}

func (c Customer) IsEmpty() bool {
	return c.Name == "" && c.Phone == "" && c.Email == "" && !c.Loading
}

// Snapshot is the engine's current belief about one cell.
type Snapshot struct {
	BookingID      *int64
	Status         Status
	CustomerID     *int64
	Customer       Customer
	Price          decimal.Decimal
	OriginalStatus string
	Revision       uint64
	Origin         Origin
}

// Available is the implicit snapshot of every key absent from the store.
func Available() Snapshot {
	return Snapshot{Status: StatusAvailable, Price: decimal.Zero}
}

func NewBookingSnapshot(bookingID int64, status Status, price decimal.Decimal) Snapshot {
	id := bookingID
	if price.IsNegative() {
		price = decimal.Zero
	}
	return Snapshot{
		BookingID: &id,
		Status:    status,
		Price:     price,
	}
}

func (s Snapshot) IsAvailable() bool {
	return s.BookingID == nil && s.Status == StatusAvailable
}

func (s Snapshot) IsBookable() bool {
	return s.Status.IsBookable()
}

func (s Snapshot) HasBooking(id int64) bool {
	return s.BookingID != nil && *s.BookingID == id
}

func (s Snapshot) WithRevision(rev uint64, origin Origin) Snapshot {
	s.Revision = rev
	s.Origin = origin
	return s
}

func (s Snapshot) WithCustomer(id *int64, c Customer) Snapshot {
	if id != nil {
		v := *id
		s.CustomerID = &v
	} else {
		s.CustomerID = nil
	}
	s.Customer = c
	return s
}

// SameState compares the observable booking state, ignoring revision and
// origin bookkeeping.
func (s Snapshot) SameState(other Snapshot) bool {
	return equalID(s.BookingID, other.BookingID) &&
		s.Status == other.Status &&
		equalID(s.CustomerID, other.CustomerID) &&
		s.Customer == other.Customer &&
		s.Price.Equal(other.Price) &&
		s.OriginalStatus == other.OriginalStatus
}

func equalID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
