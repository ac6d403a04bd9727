package api

import (
	"net/http"

	"court-grid/internal/domain/slot"
	reqdto "court-grid/internal/handler/dto/request"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/handler/httperr"
	"court-grid/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	engine usecase.Engine
}

func NewSessionHandler(engine usecase.Engine) *SessionHandler {
	return &SessionHandler{engine: engine}
}

// @Summary List facilities
// @Description List every facility the owner can select
// @Tags session
// @Produce json
// @Success 200 {array} resdto.FacilityResponse
// @Failure 503 {object} httperr.Response
// @Router /facilities [get]
func (h *SessionHandler) Facilities(c *gin.Context) {
	facilities, err := h.engine.Facilities(c.Request.Context())
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFacilities(facilities))
}

// @Summary Get selection
// @Description Get the facility and date the grid is showing
// @Tags session
// @Produce json
// @Success 200 {object} resdto.SelectionResponse
// @Router /session/selection [get]
func (h *SessionHandler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromSelection(h.engine.Selection()))
}

// @Summary Select facility and date
// @Description Switch the grid to a facility and date and wait for the bookings to load
// @Tags session
// @Accept json
// @Produce json
// @Param request body reqdto.SelectRequest true "Selection"
// @Success 200 {object} resdto.SelectionResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /session/selection [put]
func (h *SessionHandler) Select(c *gin.Context) {
	var req reqdto.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	date, err := slot.ParseDate(req.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}
	if err := h.engine.Select(c.Request.Context(), req.FacilityID, date); err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSelection(h.engine.Selection()))
}

// @Summary Reload grid
// @Description Replace the grid with a fresh load of the current selection
// @Tags session
// @Produce json
// @Success 200 {object} resdto.SelectionResponse
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /session/reload [post]
func (h *SessionHandler) Reload(c *gin.Context) {
	if !h.engine.Selection().IsSet() {
		httperr.AbortWithEngineError(c, noFacility())
		return
	}
	if err := h.engine.Reload(c.Request.Context()); err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSelection(h.engine.Selection()))
}

// @Summary Loading flags
// @Description List the operations currently in flight
// @Tags session
// @Produce json
// @Success 200 {object} resdto.LoadingResponse
// @Router /loading [get]
func (h *SessionHandler) Loading(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromLoading(h.engine.Loading()))
}
