package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/dto"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/service"
)

type PortfolioHandler struct {
	svc *service.PortfolioService
}

func NewPortfolioHandler(svc *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

// Portfolio godoc
// @Summary      Cross-client portfolio with blockers
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  dto.PortfolioResponse
// @Failure      500  {object}  map[string]string
// @Router       /portfolio [get]
func (h *PortfolioHandler) Portfolio(c *gin.Context) {
	rows, err := h.svc.Portfolio(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]dto.PortfolioEntry, 0, len(rows))
	for _, r := range rows {
		blockers := r.Blockers
		if blockers == nil {
			blockers = []string{}
		}
		items = append(items, dto.PortfolioEntry{
			ID:              r.ID,
			Name:            r.Name,
			Tier:            string(r.Tier),
			PhaseStatus:     string(r.PhaseStatus),
			CurrentStage:    r.CurrentStage,
			HealthScore:     r.HealthScore,
			GoLiveDate:      r.GoLiveDate,
			Escalated:       r.Escalated,
			CompletedSteps:  r.CompletedSteps,
			TotalSteps:      r.TotalSteps,
			ProgressPercent: r.ProgressPercent,
			Blockers:        blockers,
		})
	}
	c.JSON(http.StatusOK, dto.PortfolioResponse{Items: items})
}

// Stats godoc
// @Summary      Dashboard aggregate counts
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Failure      500  {object}  map[string]string
// @Router       /stats [get]
func (h *PortfolioHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalClients:    stats.TotalClients,
		LiveClients:     stats.LiveClients,
		EscalatedCount:  stats.EscalatedCount,
		TotalSteps:      stats.TotalSteps,
		CompletedSteps:  stats.CompletedSteps,
		PendingSteps:    stats.PendingSteps,
		ProgressPercent: stats.ProgressPercent,
		OpenTasks:       stats.OpenTasks,
		OverdueTasks:    stats.OverdueTasks,
	})
}
