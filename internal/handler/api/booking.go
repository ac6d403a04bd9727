package api

import (
	"fmt"
	"net/http"
	"strconv"

	reqdto "court-grid/internal/handler/dto/request"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/handler/httperr"
	"court-grid/internal/usecase"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	engine usecase.Engine
}

func NewBookingHandler(engine usecase.Engine) *BookingHandler {
	return &BookingHandler{engine: engine}
}

// @Summary Create booking
// @Description Book one or more cells of the selected date as a single booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Slots and category"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	outcome, err := h.engine.CreateBooking(c.Request.Context(), req.SlotRefs(), req.CategoryID)
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/bookings/%d", outcome.BookingID))
	c.JSON(http.StatusCreated, resdto.FromCreateBookingOutcome(outcome))
}

// @Summary Complete booking
// @Description Settle a deposited booking
// @Tags bookings
// @Param id path int true "Booking ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, fmt.Errorf("invalid booking id %q", c.Param("id")), "Invalid id", nil)
		return
	}
	if err := h.engine.CompleteBooking(c.Request.Context(), id); err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
