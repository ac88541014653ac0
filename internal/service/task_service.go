package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/apperror"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/cache"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/dto"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/repo"
)

// TaskService runs task CRUD. Tasks live independently of steps.
type TaskService struct {
	clients repo.ClientRepo
	tasks   repo.TaskRepo
	cache   *cache.SummaryCache
	logger  *zap.Logger
}

func NewTaskService(clients repo.ClientRepo, tasks repo.TaskRepo, c *cache.SummaryCache, logger *zap.Logger) *TaskService {
	return &TaskService{clients: clients, tasks: tasks, cache: c, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, clientID int64, req dto.CreateTaskRequest, actor string) (domain.Task, error) {
	if err := s.clientExists(ctx, clientID); err != nil {
		return domain.Task{}, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Task{}, apperror.Invalid("task title is required")
	}

	t := domain.Task{
		ClientID: clientID,
		Title:    title,
		Owner:    strings.TrimSpace(req.Owner),
		DueDate:  req.DueDate.Ptr(),
		Status:   domain.TaskStatus(defaultStr(req.Status, string(domain.TaskNotStarted))),
		Phase:    domain.TaskPhase(defaultStr(req.Phase, string(domain.TaskPhase1))),
		Severity: defaultStr(req.Severity, domain.SeverityMedium),
	}

	created, err := s.tasks.Create(ctx, t, domain.Activity{
		ClientID: clientID,
		Action:   "task_created",
		Detail:   fmt.Sprintf("task %q created", title),
		Actor:    actor,
	})
	if err != nil {
		return domain.Task{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *TaskService) List(ctx context.Context, clientID int64) ([]domain.Task, error) {
	if err := s.clientExists(ctx, clientID); err != nil {
		return nil, err
	}
	return s.tasks.ListByClient(ctx, clientID)
}

func (s *TaskService) Update(ctx context.Context, clientID, taskID int64, req dto.UpdateTaskRequest, actor string) (domain.Task, error) {
	existing, err := s.tasks.GetByID(ctx, clientID, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, apperror.NotFound("task")
		}
		return domain.Task{}, err
	}

	merged := existing
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Task{}, apperror.Invalid("task title is required")
		}
		merged.Title = title
	}
	if req.Owner != nil {
		merged.Owner = strings.TrimSpace(*req.Owner)
	}
	if req.DueDate != nil {
		merged.DueDate = req.DueDate.Ptr()
	}
	if req.CompletionDate != nil {
		merged.CompletionDate = req.CompletionDate.Ptr()
	}
	if req.Status != nil {
		merged.Status = domain.TaskStatus(*req.Status)
	}
	if req.Phase != nil {
		merged.Phase = domain.TaskPhase(*req.Phase)
	}
	if req.Severity != nil {
		merged.Severity = *req.Severity
	}

	updated, err := s.tasks.Update(ctx, merged, domain.Activity{
		ClientID: clientID,
		Action:   "task_updated",
		Detail:   fmt.Sprintf("task %q updated", merged.Title),
		Actor:    actor,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, apperror.NotFound("task")
		}
		return domain.Task{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, clientID, taskID int64, actor string) error {
	err := s.tasks.Delete(ctx, clientID, taskID, domain.Activity{
		ClientID: clientID,
		Action:   "task_deleted",
		Detail:   fmt.Sprintf("task %d deleted", taskID),
		Actor:    actor,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("task")
		}
		return err
	}
	s.logger.Debug("task deleted", zap.Int64("client_id", clientID), zap.Int64("task_id", taskID))
	s.invalidate(ctx)
	return nil
}

func (s *TaskService) clientExists(ctx context.Context, clientID int64) error {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("client")
		}
		return err
	}
	return nil
}

func (s *TaskService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
