package httperr

import (
	"net/http"

	"court-grid/internal/domain/menu"
	"court-grid/internal/pkg/errs"
	"court-grid/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	target error
	status int
	msg    string
}

// Ordered from the most specific class to the broadest.
var mappings = []mapping{
	{shared.ErrNoFacility, http.StatusBadRequest, "No facility selected"},
	{shared.ErrInvalidInterval, http.StatusBadRequest, "Invalid interval"},
	{shared.ErrCategoryRequired, http.StatusBadRequest, "Category is required"},
	{shared.ErrNoIntervals, http.StatusBadRequest, "At least one slot is required"},
	{menu.ErrUnknownAction, http.StatusBadRequest, "Unknown menu action"},
	{shared.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{shared.ErrSlotNotAvailable, http.StatusConflict, "Slot is not available"},
	{shared.ErrNotDeposited, http.StatusConflict, "Booking is not deposited"},
	{menu.ErrMenuHidden, http.StatusConflict, "Menu is not open"},
	{shared.ErrBusy, http.StatusConflict, "Another request is in progress"},
	{shared.ErrStaleSelection, http.StatusConflict, "Selection changed"},
	{menu.ErrActionDisabled, http.StatusUnprocessableEntity, "Menu action is disabled"},
	{shared.ErrValidation, http.StatusUnprocessableEntity, "Validation failed"},
	{shared.ErrRequestFailed, http.StatusBadGateway, "Booking backend rejected the request"},
	{shared.ErrUnknownOutcome, http.StatusGatewayTimeout, "Booking backend did not answer; grid reloaded"},
	{shared.ErrLoadFailed, http.StatusServiceUnavailable, "Failed to load bookings"},
}

// Classify maps an engine error onto an HTTP status and public message.
func Classify(err error) (int, string) {
	for _, m := range mappings {
		if errs.Is(err, m.target) {
			return m.status, m.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// AbortWithEngineError aborts with the status Classify picks for err.
func AbortWithEngineError(c *gin.Context, err error) {
	status, msg := Classify(err)
	AbortWithError(c, status, err, msg, nil)
}
