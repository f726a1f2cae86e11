package handler

import (
	"net/http"

	"github.com/mnk3936/Highway-metals/internal/dto"
	"github.com/mnk3936/Highway-metals/internal/service"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	svc service.HistoryService
}

func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// List godoc
// @Summary  List the price-change audit trail, newest first
// @Tags     price-history
// @Produce  json
// @Param    material_id query string false "filter by raw material"
// @Param    page        query int    false "page, starts at 1"
// @Param    limit       query int    false "page size, max 200"
// @Success  200 {object} dto.PriceHistoryListResponse
// @Router   /api/price-history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	var filter dto.HistoryFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
