package dto

import "time"

type CreateTaskRequest struct {
	Title    string   `json:"title" binding:"required,min=1,max=300"`
	Owner    string   `json:"owner" binding:"max=200"`
	DueDate  FlexDate `json:"due_date"`
	Status   string   `json:"status" binding:"omitempty,oneof=not_started in_progress done"`
	Phase    string   `json:"phase" binding:"omitempty,oneof=phase_1 phase_2"`
	Severity string   `json:"severity" binding:"omitempty,oneof=low medium high"`
}

type UpdateTaskRequest struct {
	Title          *string   `json:"title" binding:"omitempty,min=1,max=300"`
	Owner          *string   `json:"owner" binding:"omitempty,max=200"`
	DueDate        *FlexDate `json:"due_date"`
	CompletionDate *FlexDate `json:"completion_date"`
	Status         *string   `json:"status" binding:"omitempty,oneof=not_started in_progress done"`
	Phase          *string   `json:"phase" binding:"omitempty,oneof=phase_1 phase_2"`
	Severity       *string   `json:"severity" binding:"omitempty,oneof=low medium high"`
}

type TaskResponse struct {
	ID             int64      `json:"id"`
	ClientID       int64      `json:"client_id"`
	Title          string     `json:"title"`
	Owner          string     `json:"owner"`
	DueDate        *time.Time `json:"due_date"`
	CompletionDate *time.Time `json:"completion_date"`
	Status         string     `json:"status"`
	Phase          string     `json:"phase"`
	Severity       string     `json:"severity"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}
