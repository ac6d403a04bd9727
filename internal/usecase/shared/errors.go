package shared

import (
	"court-grid/internal/domain/menu"
	"court-grid/internal/domain/slot"
	"court-grid/internal/infra"
	"court-grid/internal/pkg/errs"
)

var (
	// ErrValidation classifies every error raised before a network call.
	ErrValidation = errs.New("validation failed")

	ErrCategoryRequired = errs.New("a category must be selected")
	ErrNoIntervals      = errs.New("no intervals selected")
	ErrNoFacility       = errs.New("no facility selected")
	ErrInvalidInterval  = errs.New("invalid interval")
	ErrSlotNotAvailable = errs.New("slot is not available")
	ErrNotDeposited     = errs.New("booking is not deposited")
	ErrBookingNotFound  = errs.New("booking not found in grid")

	// ErrRequestFailed means the backend rejected the request; local state is
	// left as it was.
	ErrRequestFailed = errs.New("request failed")
	// ErrUnknownOutcome means the request may or may not have been applied;
	// it is resolved by a full reload.
	ErrUnknownOutcome = errs.New("request outcome unknown")

	ErrLoadFailed     = errs.New("failed to load bookings")
	ErrStaleSelection = errs.New("selection changed while request was in flight")
	ErrBusy           = errs.New("action already in progress")

	ErrMenuHidden     = menu.ErrMenuHidden
	ErrActionDisabled = menu.ErrActionDisabled
	ErrUnknownAction  = menu.ErrUnknownAction
)

// Invalid tags a leaf sentinel with the validation class. errs.Is matches
// both the leaf and ErrValidation afterwards.
func Invalid(err error) error {
	return errs.Mark(err, ErrValidation)
}

// ClassifyGatewayError maps a gateway failure onto the request-failure or
// unknown-outcome class.
func ClassifyGatewayError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case infra.IsKind(err, infra.KindRejected), infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrRequestFailed)
	default:
		return errs.Mark(err, ErrUnknownOutcome)
	}
}

// ValidateInterval normalizes an interval label or reports a validation error.
func ValidateInterval(raw string) (string, error) {
	label, err := slot.NormalizeInterval(raw)
	if err != nil {
		return "", Invalid(ErrInvalidInterval)
	}
	return label, nil
}
