package handler

import (
	"net/http"
	"path/filepath"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TreasurySummary breaks the month's bar revenue down by payment method.
// ?month=YYYY-MM, default current month.
func (h *DashboardHandler) TreasurySummary(c *gin.Context) {
	resp, err := h.svc.TreasurySummary(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TreasuryReport generates the month's PDF report, mails it to the treasury
// address when one is configured, and serves it as a download.
func (h *DashboardHandler) TreasuryReport(c *gin.Context) {
	path, err := h.svc.TreasuryReport(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
