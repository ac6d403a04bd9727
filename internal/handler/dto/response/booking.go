package response

import (
	"court-grid/internal/pkg/errs"
	"court-grid/internal/usecase/commands"
	"court-grid/internal/usecase/shared"

	"github.com/jinzhu/copier"
)

type CreateBookingResponse struct {
	BookingID int64         `json:"bookingId"`
	Status    string        `json:"status"`
	Slots     []KeyResponse `json:"slots"`
	Reloaded  bool          `json:"reloaded"`
}

func FromCreateBookingOutcome(o *commands.CreateBookingOutcome) CreateBookingResponse {
	return CreateBookingResponse{
		BookingID: o.BookingID,
		Status:    string(o.Status),
		Slots:     FromKeys(o.Keys),
		Reloaded:  o.Reloaded,
	}
}

type CustomerDetailsResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func FromCustomerDetails(d *shared.CustomerDetails) (CustomerDetailsResponse, error) {
	var resp CustomerDetailsResponse
	if err := copier.Copy(&resp, d); err != nil {
		return CustomerDetailsResponse{}, errs.Wrap(err, "copy customer details")
	}
	return resp, nil
}

type DetailResponse struct {
	Open     bool              `json:"open"`
	Snapshot *SnapshotResponse `json:"snapshot,omitempty"`
}
