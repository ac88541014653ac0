package domain

import "time"

// TaskStatus is the per-task state, independent of step progression.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// TaskPhase tags a task to the rough half of the onboarding it belongs to.
type TaskPhase string

const (
	TaskPhase1 TaskPhase = "phase_1"
	TaskPhase2 TaskPhase = "phase_2"
)

// Task is a free-form work item attached to a client. Tasks are not tied
// to steps and have their own lifecycle.
type Task struct {
	ID             int64
	ClientID       int64
	Title          string
	Owner          string
	DueDate        *time.Time
	CompletionDate *time.Time
	Status         TaskStatus
	Phase          TaskPhase
	Severity       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
