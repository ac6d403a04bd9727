package api

import (
	"net/http"

	"court-grid/internal/domain/menu"
	reqdto "court-grid/internal/handler/dto/request"
	resdto "court-grid/internal/handler/dto/response"
	"court-grid/internal/handler/httperr"
	"court-grid/internal/usecase"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	engine usecase.Engine
}

func NewMenuHandler(engine usecase.Engine) *MenuHandler {
	return &MenuHandler{engine: engine}
}

// @Summary Get context menu
// @Tags menu
// @Produce json
// @Success 200 {object} resdto.MenuResponse
// @Router /menu [get]
func (h *MenuHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromMenuView(h.engine.Menu()))
}

// @Summary Open context menu
// @Description Open the context menu over a bookable cell, closing any open menu
// @Tags menu
// @Accept json
// @Produce json
// @Param request body reqdto.CellRequest true "Cell"
// @Success 200 {object} resdto.MenuResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /menu/open [post]
func (h *MenuHandler) Open(c *gin.Context) {
	var req reqdto.CellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.engine.OpenMenu(req.ResourceID, req.Interval)
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuView(view))
}

// @Summary Close context menu
// @Tags menu
// @Produce json
// @Success 200 {object} resdto.MenuResponse
// @Router /menu/close [post]
func (h *MenuHandler) Close(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromMenuView(h.engine.CloseMenu()))
}

// @Summary Choose menu action
// @Description Run a menu action against the cell the menu was opened over
// @Tags menu
// @Accept json
// @Produce json
// @Param request body reqdto.ChooseRequest true "Action"
// @Success 200 {object} resdto.ChooseResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /menu/choose [post]
func (h *MenuHandler) Choose(c *gin.Context) {
	var req reqdto.ChooseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.engine.ChooseMenu(c.Request.Context(), menu.Action(req.Action), req.CategoryID)
	if err != nil {
		httperr.AbortWithEngineError(c, err)
		return
	}
	resp, err := resdto.FromChooseResult(result)
	if err != nil {
		abortWithEncodeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
