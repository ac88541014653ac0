package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/dto"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/service"
)

type StepHandler struct {
	svc *service.StepService
}

func NewStepHandler(svc *service.StepService) *StepHandler {
	return &StepHandler{svc: svc}
}

// Update godoc
// @Summary      Update a step's status, owner or notes
// @Tags         steps
// @Accept       json
// @Produce      json
// @Param        id     path      int  true  "Client ID"
// @Param        order  path      int  true  "Step order"
// @Param        body   body      dto.UpdateStepRequest  true  "Partial update"
// @Success      200    {object}  dto.StepResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /clients/{id}/steps/{order} [put]
func (h *StepHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, ok := parseOrder(c)
	if !ok {
		return
	}
	var req dto.UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	step, err := h.svc.Update(c.Request.Context(), id, order, req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stepToResponse(step))
}

// Toggle godoc
// @Summary      Flip a step between completed and pending
// @Tags         steps
// @Produce      json
// @Param        id     path      int  true  "Client ID"
// @Param        order  path      int  true  "Step order"
// @Success      200    {object}  dto.StepResponse
// @Failure      404    {object}  map[string]string
// @Router       /clients/{id}/steps/{order}/toggle [patch]
func (h *StepHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, ok := parseOrder(c)
	if !ok {
		return
	}
	step, err := h.svc.Toggle(c.Request.Context(), id, order, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stepToResponse(step))
}
