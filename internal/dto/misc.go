package dto

import "time"

type RequirementsRequest struct {
	ScanningSetup    string `json:"scanning_setup" binding:"max=5000"`
	CaseVolumes      string `json:"case_volumes" binding:"max=5000"`
	IntegrationNotes string `json:"integration_notes" binding:"max=5000"`
	ConsultPathways  string `json:"consult_pathways" binding:"max=5000"`
	Notes            string `json:"notes" binding:"max=5000"`
}

type RequirementsResponse struct {
	ClientID         int64     `json:"client_id"`
	ScanningSetup    string    `json:"scanning_setup"`
	CaseVolumes      string    `json:"case_volumes"`
	IntegrationNotes string    `json:"integration_notes"`
	ConsultPathways  string    `json:"consult_pathways"`
	Notes            string    `json:"notes"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type GoLiveDateRequest struct {
	GoLiveDate FlexDate `json:"go_live_date" binding:"required"`
	Reason     string   `json:"reason" binding:"max=500"`
	Approver   string   `json:"approver" binding:"max=200"`
	DelayCause string   `json:"delay_cause" binding:"max=500"`
}

type GoLiveHistoryResponse struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	GoLiveDate time.Time `json:"go_live_date"`
	EntryType  string    `json:"entry_type"`
	Reason     string    `json:"reason"`
	Approver   string    `json:"approver"`
	DelayCause string    `json:"delay_cause"`
	CreatedAt  time.Time `json:"created_at"`
}

type AlertResponse struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type ActivityResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// PortfolioEntry is one row of the cross-client portfolio view.
type PortfolioEntry struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Tier            string     `json:"tier"`
	PhaseStatus     string     `json:"phase_status"`
	CurrentStage    int        `json:"current_stage"`
	HealthScore     int        `json:"health_score"`
	GoLiveDate      *time.Time `json:"go_live_date"`
	Escalated       bool       `json:"escalated"`
	CompletedSteps  int        `json:"completed_steps"`
	TotalSteps      int        `json:"total_steps"`
	ProgressPercent int        `json:"progress_percent"`
	Blockers        []string   `json:"blockers"`
}

type PortfolioResponse struct {
	Items []PortfolioEntry `json:"items"`
}

// StatsResponse is the dashboard aggregate.
type StatsResponse struct {
	TotalClients    int `json:"total_clients"`
	LiveClients     int `json:"live_clients"`
	EscalatedCount  int `json:"escalated_count"`
	TotalSteps      int `json:"total_steps"`
	CompletedSteps  int `json:"completed_steps"`
	PendingSteps    int `json:"pending_steps"`
	ProgressPercent int `json:"progress_percent"`
	OpenTasks       int `json:"open_tasks"`
	OverdueTasks    int `json:"overdue_tasks"`
}
