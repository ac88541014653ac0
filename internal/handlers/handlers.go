// Package handlers maps HTTP requests onto the service layer: binding and
// thin validation in, JSON out, errors mapped through apperror.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/apperror"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/dto"
)

const actorHeader = "X-Actor"

func actorFrom(c *gin.Context) string {
	if actor := c.GetHeader(actorHeader); actor != "" {
		return actor
	}
	return "system"
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func parseOrder(c *gin.Context) (int, bool) {
	order, err := strconv.Atoi(c.Param("order"))
	if err != nil || order <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step order"})
		return 0, false
	}
	return order, true
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
}

func clientToResponse(cl domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:                   cl.ID,
		Name:                 cl.Name,
		Tier:                 string(cl.Tier),
		BusinessContact:      cl.BusinessContact,
		ContractDate:         cl.ContractDate,
		GoLiveDate:           cl.GoLiveDate,
		PhaseStatus:          string(cl.PhaseStatus),
		HealthScore:          cl.HealthScore,
		CurrentStage:         cl.CurrentStage,
		ContractStatus:       cl.ContractStatus,
		DPIARequired:         cl.DPIARequired,
		DPIAStatus:           cl.DPIAStatus,
		Escalated:            cl.Escalated,
		EscalationReason:     cl.EscalationReason,
		ReadinessSignedOffBy: cl.ReadinessSignedOffBy,
		ReadinessSignedOffAt: cl.ReadinessSignedOffAt,
		ReadinessNotes:       cl.ReadinessNotes,
		CreatedAt:            cl.CreatedAt,
		UpdatedAt:            cl.UpdatedAt,
	}
}

func stepToResponse(s domain.Step) dto.StepResponse {
	return dto.StepResponse{
		ID:          s.ID,
		ClientID:    s.ClientID,
		StepOrder:   s.StepOrder,
		Title:       s.Title,
		Description: s.Description,
		Owner:       s.Owner,
		Category:    s.Category,
		Status:      string(s.Status),
		Notes:       s.Notes,
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func stepsToResponses(steps []domain.Step) []dto.StepResponse {
	out := make([]dto.StepResponse, len(steps))
	for i := range steps {
		out[i] = stepToResponse(steps[i])
	}
	return out
}

func taskToResponse(t domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:             t.ID,
		ClientID:       t.ClientID,
		Title:          t.Title,
		Owner:          t.Owner,
		DueDate:        t.DueDate,
		CompletionDate: t.CompletionDate,
		Status:         string(t.Status),
		Phase:          string(t.Phase),
		Severity:       t.Severity,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
