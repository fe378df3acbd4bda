package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sincet/noticeboard-api/internal/service"
	appErrors "github.com/sincet/noticeboard-api/pkg/errors"
	"github.com/sincet/noticeboard-api/pkg/response"
)

// DashboardHandler exposes the staff dashboard aggregate.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview godoc
// @Summary Recent content, totals and per-year attendance
// @Tags Dashboard
// @Produce json
// @Param dept query string false "Department code, principal only"
// @Success 200 {object} response.Envelope
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	auth := authFromContext(c)
	if auth == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, ""))
		return
	}
	view, err := h.dashboard.Overview(c.Request.Context(), *auth, c.Query("dept"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
