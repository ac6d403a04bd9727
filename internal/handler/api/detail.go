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

type DetailHandler struct {
	engine usecase.Engine
}

func NewDetailHandler(engine usecase.Engine) *DetailHandler {
	return &DetailHandler{engine: engine}
}

// @Summary Get detail view
// @Description Get the booking detail panel, refreshed by every write to its cell
// @Tags detail
// @Produce json
// @Success 200 {object} resdto.DetailResponse
// @Router /detail [get]
func (h *DetailHandler) Get(c *gin.Context) {
	key, snap, open := h.engine.Detail()
	resp := resdto.DetailResponse{Open: open}
	if open {
		s, err := resdto.FromSnapshot(key, snap)
		if err != nil {
			abortWithEncodeError(c, err)
			return
		}
		resp.Snapshot = &s
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Open detail view
// @Description Open the booking detail panel over a cell
// @Tags detail
// @Accept json
// @Produce json
// @Param request body reqdto.CellRequest true "Cell"
// @Success 200 {object} resdto.DetailResponse
// @Failure 400 {object} httperr.Response
// @Router /detail [put]
func (h *DetailHandler) Open(c *gin.Context) {
	var req reqdto.CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	key, snap, err := h.engine.OpenDetail(req.ResourceID, req.Interval)
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	s, err := resdto.FromSnapshot(key, snap)
	if err != nil {
		abortWithEncodeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.DetailResponse{Open: true, Snapshot: &s})
}

// @Summary Close detail view
// @Tags detail
// @Success 204
// @Router /detail [delete]
func (h *DetailHandler) Close(c *gin.Context) {
	h.engine.CloseDetail()
	c.Status(http.StatusNoContent)
}

// @Summary Get customer
// @Description Resolve customer details and fill cells still showing the loading placeholder
// @Tags detail
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} resdto.CustomerDetailsResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /customers/{id} [get]
func (h *DetailHandler) Customer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, fmt.Errorf("invalid customer id %q", c.Param("id")), "Invalid id", nil)
		return
	}
	details, err := h.engine.LookupCustomer(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	resp, err := resdto.FromCustomerDetails(details)
	if err != nil {
		abortWithEncodeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
