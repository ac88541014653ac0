package dto

import "time"

// UpdateStepRequest edits an instantiated step. Only the copied content
// and status can change; order and cardinality are fixed at creation.
type UpdateStepRequest struct {
	Status      *string `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	Title       *string `json:"title" binding:"omitempty,min=1,max=300"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Owner       *string `json:"owner" binding:"omitempty,max=200"`
	Notes       *string `json:"notes" binding:"omitempty,max=5000"`
}

type StepResponse struct {
	ID          int64      `json:"id"`
	ClientID    int64      `json:"client_id"`
	StepOrder   int        `json:"step_order"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Owner       string     `json:"owner"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
