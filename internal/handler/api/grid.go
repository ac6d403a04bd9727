package api

import (
	"net/http"

	reqdto "court-grid/internal/handler/dto/request"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/handler/httperr"
	"court-grid/internal/usecase"

	"github.com/gin-gonic/gin"
)

type GridHandler struct {
	engine usecase.Engine
}

func NewGridHandler(engine usecase.Engine) *GridHandler {
	return &GridHandler{engine: engine}
}

// @Summary Get grid
// @Description Get the court × interval matrix of the current selection
// @Tags grid
// @Produce json
// @Success 200 {object} resdto.GridResponse
// @Failure 400 {object} httperr.Response
// @Router /grid [get]
func (h *GridHandler) Grid(c *gin.Context) {
	g, err := h.engine.Grid()
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	resp, err := resdto.FromGrid(g)
	if err != nil {
		abortWithEncodeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cell status
// @Description Get the display status of one cell
// @Tags grid
// @Produce json
// @Param resourceId query int true "Court ID"
// @Param interval query string true "Interval label, e.g. 08:00–09:00"
// @Success 200 {object} resdto.StatusResponse
// @Failure 400 {object} httperr.Response
// @Router /grid/status [get]
func (h *GridHandler) Status(c *gin.Context) {
	var q reqdto.CellQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	key, snap, err := h.engine.Snapshot(q.ResourceID, q.Interval)
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.StatusResponse{KeyResponse: resdto.FromKey(key), Status: string(snap.Status)})
}

// @Summary Cell snapshot
// @Description Get the full snapshot of one cell
// @Tags grid
// @Produce json
// @Param resourceId query int true "Court ID"
// @Param interval query string true "Interval label"
// @Success 200 {object} resdto.SnapshotResponse
// @Failure 400 {object} httperr.Response
// @Router /grid/snapshot [get]
func (h *GridHandler) Snapshot(c *gin.Context) {
	var q reqdto.CellQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	key, snap, err := h.engine.Snapshot(q.ResourceID, q.Interval)
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	resp, err := resdto.FromSnapshot(key, snap)
	if err != nil {
		abortWithEncodeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Mark slot
// @Description Mark a free cell as paid for a walk-in customer
// @Tags grid
// @Accept json
// @Produce json
// @Param request body reqdto.MarkSlotRequest true "Cell and category"
// @Success 201 {object} resdto.SnapshotResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /grid/mark [post]
func (h *GridHandler) MarkSlot(c *gin.Context) {
	var req reqdto.MarkSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	key, snap, err := h.engine.MarkSlot(c.Request.Context(), req.ResourceID, req.Interval, req.CategoryID)
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	resp, err := resdto.FromSnapshot(key, snap)
	if err != nil {
		abortWithEncodeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
