package response

import (
	"court-grid/internal/domain/slot"
	"court-grid/internal/pkg/errs"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type CustomerResponse struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Loading bool   `json:"loading"`
}

type KeyResponse struct {
	ResourceID int64  `json:"resourceId"`
	Date       string `json:"date"`
	Interval   string `json:"interval"`
}

type SnapshotResponse struct {
	KeyResponse
	BookingID      *int64           `json:"bookingId,omitempty"`
	Status         string           `json:"status"`
	CustomerID     *int64           `json:"customerId,omitempty"`
	Customer       CustomerResponse `json:"customer"`
	Price          decimal.Decimal  `json:"price"`
	OriginalStatus string           `json:"originalStatus,omitempty"`
	Revision       uint64           `json:"revision"`
	Origin         string           `json:"origin,omitempty"`
}

func FromKey(key slot.Key) KeyResponse {
	return KeyResponse{
		ResourceID: key.ResourceID,
		Date:       key.Date.String(),
		Interval:   key.Interval,
	}
}

func FromKeys(keys []slot.Key) []KeyResponse {
	out := make([]KeyResponse, len(keys))
	for i, k := range keys {
		out[i] = FromKey(k)
	}
	return out
}

func FromSnapshot(key slot.Key, snap slot.Snapshot) (SnapshotResponse, error) {
	var resp SnapshotResponse
	if err := copier.Copy(&resp, &snap); err != nil {
		return SnapshotResponse{}, errs.Wrapf(err, "copy snapshot %s", key)
	}
	resp.KeyResponse = FromKey(key)
	return resp, nil
}

type StatusResponse struct {
	KeyResponse
	Status string `json:"status"`
}
