package domain

import "time"

// StepStatus is the per-step progression state.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in_progress"
	StepCompleted  StepStatus = "completed"
)

func (s StepStatus) Valid() bool {
	switch s {
	case StepPending, StepInProgress, StepCompleted:
		return true
	}
	return false
}

// Step is one instantiated entry of the onboarding framework for a client.
// Steps are copied from the master template at client creation and keep
// their order for the client's lifetime.
type Step struct {
	ID          int64
	ClientID    int64
	StepOrder   int
	Title       string
	Description string
	Owner       string
	Category    string
	Status      StepStatus
	Notes       string
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
