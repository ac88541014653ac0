package domain

import "time"

// ClientSummary is a client plus its step progress, for list views.
type ClientSummary struct {
	Client          Client
	CompletedSteps  int
	TotalSteps      int
	ProgressPercent int
}

// PortfolioRow is one client in the cross-portfolio view. Blockers are
// the high-severity alert messages currently open for the client.
type PortfolioRow struct {
	ID              int64
	Name            string
	Tier            Tier
	PhaseStatus     PhaseStatus
	CurrentStage    int
	HealthScore     int
	GoLiveDate      *time.Time
	Escalated       bool
	CompletedSteps  int
	TotalSteps      int
	ProgressPercent int
	Blockers        []string
}

// Stats is the dashboard aggregate across all clients.
type Stats struct {
	TotalClients    int
	LiveClients     int
	EscalatedCount  int
	TotalSteps      int
	CompletedSteps  int
	PendingSteps    int
	ProgressPercent int
	OpenTasks       int
	OverdueTasks    int
}
