package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucappointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type DashboardHandler struct {
	dashboard *ucappointment.Dashboard
}

func NewDashboardHandler(dashboard *ucappointment.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err, "dashboard_failed", "Erro ao carregar o painel.")
		return
	}
	httpresp.OK(c, summary)
}
