package dto

import "time"

type CreateClientRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=200"`
	Tier            string   `json:"tier" binding:"omitempty,tier"`
	BusinessContact string   `json:"business_contact" binding:"max=200"`
	PhaseStatus     string   `json:"phase_status" binding:"omitempty,oneof=planning discovery in_build ready_to_go_live live"`
	ContractDate    FlexDate `json:"contract_date"`
	GoLiveDate      FlexDate `json:"go_live_date"`
	ContractStatus  string   `json:"contract_status" binding:"omitempty,oneof=yes no pending"`
	DPIARequired    bool     `json:"dpia_required"`
	DPIAStatus      string   `json:"dpia_status" binding:"omitempty,oneof=yes no pending waived"`
}

// UpdateClientRequest carries a partial update: nil means "leave as is".
// A go_live_date value is routed through the date-history ledger.
type UpdateClientRequest struct {
	Name            *string   `json:"name" binding:"omitempty,min=1,max=200"`
	Tier            *string   `json:"tier" binding:"omitempty,tier"`
	BusinessContact *string   `json:"business_contact" binding:"omitempty,max=200"`
	PhaseStatus     *string   `json:"phase_status" binding:"omitempty,oneof=planning discovery in_build ready_to_go_live live"`
	HealthScore     *int      `json:"health_score" binding:"omitempty,gte=0,lte=100"`
	ContractDate    *FlexDate `json:"contract_date"`
	GoLiveDate      *FlexDate `json:"go_live_date"`
	GoLiveReason    string    `json:"go_live_reason" binding:"max=500"`
	GoLiveApprover  string    `json:"go_live_approver" binding:"max=200"`
	ContractStatus  *string   `json:"contract_status" binding:"omitempty,oneof=yes no pending"`
	DPIARequired    *bool     `json:"dpia_required"`
	DPIAStatus      *string   `json:"dpia_status" binding:"omitempty,oneof=yes no pending waived"`
}

type EscalationRequest struct {
	Escalated *bool  `json:"escalated" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
}

type ReadinessRequest struct {
	SignedOffBy string `json:"signed_off_by" binding:"required,min=1,max=200"`
	Notes       string `json:"notes" binding:"max=2000"`
}

type ClientResponse struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	Tier                 string     `json:"tier"`
	BusinessContact      string     `json:"business_contact"`
	ContractDate         *time.Time `json:"contract_date"`
	GoLiveDate           *time.Time `json:"go_live_date"`
	PhaseStatus          string     `json:"phase_status"`
	HealthScore          int        `json:"health_score"`
	CurrentStage         int        `json:"current_stage"`
	ContractStatus       string     `json:"contract_status"`
	DPIARequired         bool       `json:"dpia_required"`
	DPIAStatus           string     `json:"dpia_status"`
	Escalated            bool       `json:"escalated"`
	EscalationReason     string     `json:"escalation_reason"`
	ReadinessSignedOffBy string     `json:"readiness_signed_off_by"`
	ReadinessSignedOffAt *time.Time `json:"readiness_signed_off_at"`
	ReadinessNotes       string     `json:"readiness_notes"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ClientSummaryResponse is the list-view shape: client plus progress.
type ClientSummaryResponse struct {
	ClientResponse
	CompletedSteps  int `json:"completed_steps"`
	TotalSteps      int `json:"total_steps"`
	ProgressPercent int `json:"progress_percent"`
}

type ClientDetailResponse struct {
	ClientResponse
	Steps []StepResponse `json:"steps"`
}

type ListClientsResponse struct {
	Items []ClientSummaryResponse `json:"items"`
}
