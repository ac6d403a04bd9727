package request

import (
	"court-grid/internal/usecase/commands"
)

// CategoryID is left to the engine so a missing category gets its own error.
type MarkSlotRequest struct {
	ResourceID int64  `json:"resourceId" binding:"required,gt=0"`
	Interval   string `json:"interval" binding:"required"`
	CategoryID int64  `json:"categoryId" binding:"gte=0"`
}

type CreateBookingRequest struct {
	Slots      []CellRequest `json:"slots" binding:"dive"`
	CategoryID int64         `json:"categoryId" binding:"gte=0"`
}

func (r CreateBookingRequest) SlotRefs() []commands.SlotRef {
	refs := make([]commands.SlotRef, len(r.Slots))
	for i, s := range r.Slots {
		refs[i] = commands.SlotRef{ResourceID: s.ResourceID, Interval: s.Interval}
	}
	return refs
}

type ChooseRequest struct {
	Action     string `json:"action" binding:"required"`
	CategoryID int64  `json:"categoryId" binding:"gte=0"`
}
