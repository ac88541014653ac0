package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/apperror"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/dto"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/service"
)

type ClientHandler struct {
	svc *service.ClientService
}

func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// List godoc
// @Summary      List clients with progress summary
// @Tags         clients
// @Produce      json
// @Success      200  {object}  dto.ListClientsResponse
// @Failure      500  {object}  map[string]string
// @Router       /clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]dto.ClientSummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.ClientSummaryResponse{
			ClientResponse:  clientToResponse(s.Client),
			CompletedSteps:  s.CompletedSteps,
			TotalSteps:      s.TotalSteps,
			ProgressPercent: s.ProgressPercent,
		})
	}
	c.JSON(http.StatusOK, dto.ListClientsResponse{Items: items})
}

// Create godoc
// @Summary      Create a client and instantiate its onboarding steps
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateClientRequest  true  "Client body"
// @Success      201   {object}  dto.ClientDetailResponse
// @Failure      400   {object}  map[string]string
// @Router       /clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, steps, err := h.svc.Create(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ClientDetailResponse{
		ClientResponse: clientToResponse(client),
		Steps:          stepsToResponses(steps),
	})
}

// Get godoc
// @Summary      Get a client with its ordered steps
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  dto.ClientDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	client, steps, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClientDetailResponse{
		ClientResponse: clientToResponse(client),
		Steps:          stepsToResponses(steps),
	})
}

// Update godoc
// @Summary      Update client fields
// @Description  A go_live_date in the body is appended to the date ledger.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Client ID"
// @Param        body  body      dto.UpdateClientRequest  true  "Partial update"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.svc.Update(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientToResponse(client))
}

// Delete godoc
// @Summary      Delete a client and everything attached to it
// @Tags         clients
// @Param        id   path  int  true  "Client ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actorFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Alerts godoc
// @Summary      Computed alerts for a client
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {array}   dto.AlertResponse
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id}/alerts [get]
func (h *ClientHandler) Alerts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	alerts, err := h.svc.Alerts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.AlertResponse{Type: a.Type, Severity: a.Severity, Message: a.Message})
	}
	c.JSON(http.StatusOK, out)
}

// GetRequirements godoc
// @Summary      Read the requirements document
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  dto.RequirementsResponse
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id}/requirements [get]
func (h *ClientHandler) GetRequirements(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	req, err := h.svc.Requirements(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RequirementsResponse{
		ClientID:         id,
		ScanningSetup:    req.ScanningSetup,
		CaseVolumes:      req.CaseVolumes,
		IntegrationNotes: req.IntegrationNotes,
		ConsultPathways:  req.ConsultPathways,
		Notes:            req.Notes,
		UpdatedAt:        req.UpdatedAt,
	})
}

// PutRequirements godoc
// @Summary      Upsert the requirements document
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Client ID"
// @Param        body  body      dto.RequirementsRequest  true  "Requirements"
// @Success      200   {object}  dto.RequirementsResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id}/requirements [put]
func (h *ClientHandler) PutRequirements(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RequirementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.svc.UpsertRequirements(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RequirementsResponse{
		ClientID:         saved.ClientID,
		ScanningSetup:    saved.ScanningSetup,
		CaseVolumes:      saved.CaseVolumes,
		IntegrationNotes: saved.IntegrationNotes,
		ConsultPathways:  saved.ConsultPathways,
		Notes:            saved.Notes,
		UpdatedAt:        saved.UpdatedAt,
	})
}

// GoLiveHistory godoc
// @Summary      Go-live date ledger, newest first
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {array}   dto.GoLiveHistoryResponse
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id}/go-live-history [get]
func (h *ClientHandler) GoLiveHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	history, err := h.svc.GoLiveHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.GoLiveHistoryResponse, 0, len(history))
	for _, hst := range history {
		out = append(out, dto.GoLiveHistoryResponse{
			ID:         hst.ID,
			ClientID:   hst.ClientID,
			GoLiveDate: hst.GoLiveDate,
			EntryType:  hst.EntryType,
			Reason:     hst.Reason,
			Approver:   hst.Approver,
			DelayCause: hst.DelayCause,
			CreatedAt:  hst.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// RecordGoLiveDate godoc
// @Summary      Append a go-live date to the ledger
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Client ID"
// @Param        body  body      dto.GoLiveDateRequest  true  "Date entry"
// @Success      201   {object}  dto.GoLiveHistoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id}/go-live-date [post]
func (h *ClientHandler) RecordGoLiveDate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.GoLiveDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date := req.GoLiveDate.Ptr()
	if date == nil {
		respondError(c, apperror.Invalid("go_live_date is required"))
		return
	}
	entry, err := h.svc.RecordGoLiveDate(c.Request.Context(), id, req, *date, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GoLiveHistoryResponse{
		ID:         entry.ID,
		ClientID:   entry.ClientID,
		GoLiveDate: entry.GoLiveDate,
		EntryType:  entry.EntryType,
		Reason:     entry.Reason,
		Approver:   entry.Approver,
		DelayCause: entry.DelayCause,
		CreatedAt:  entry.CreatedAt,
	})
}

// RecordReadiness godoc
// @Summary      Record go-live readiness sign-off
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Client ID"
// @Param        body  body      dto.ReadinessRequest  true  "Sign-off"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id}/go-live-readiness [post]
func (h *ClientHandler) RecordReadiness(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ReadinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.svc.RecordReadiness(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientToResponse(client))
}

// SetEscalation godoc
// @Summary      Set or clear the escalation flag
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Client ID"
// @Param        body  body      dto.EscalationRequest  true  "Escalation"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id}/escalation [put]
func (h *ClientHandler) SetEscalation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.EscalationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.svc.SetEscalation(c.Request.Context(), id, *req.Escalated, req.Reason, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clientToResponse(client))
}

// Activity godoc
// @Summary      Audit trail for a client, newest first
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {array}   dto.ActivityResponse
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id}/activity [get]
func (h *ClientHandler) Activity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entries, err := h.svc.Activity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.ActivityResponse, 0, len(entries))
	for _, a := range entries {
		out = append(out, dto.ActivityResponse{
			ID:        a.ID,
			ClientID:  a.ClientID,
			Action:    a.Action,
			Detail:    a.Detail,
			Actor:     a.Actor,
			CreatedAt: a.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
