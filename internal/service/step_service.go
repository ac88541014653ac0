package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/apperror"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/cache"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/dto"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/progression"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/repo"
)

// StepService applies the progression rules to instantiated steps and
// keeps the client's stage marker in sync.
type StepService struct {
	clients repo.ClientRepo
	steps   repo.StepRepo
	cache   *cache.SummaryCache
	logger  *zap.Logger
}

func NewStepService(clients repo.ClientRepo, steps repo.StepRepo, c *cache.SummaryCache, logger *zap.Logger) *StepService {
	return &StepService{clients: clients, steps: steps, cache: c, logger: logger}
}

// Update edits a step's content and, if a status is supplied, runs the
// transition rules and stage advancement. Everything lands in one
// repository transaction.
func (s *StepService) Update(ctx context.Context, clientID int64, order int, req dto.UpdateStepRequest, actor string) (domain.Step, error) {
	client, step, err := s.load(ctx, clientID, order)
	if err != nil {
		return domain.Step{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Step{}, apperror.Invalid("step title is required")
		}
		step.Title = title
	}
	if req.Description != nil {
		step.Description = *req.Description
	}
	if req.Owner != nil {
		step.Owner = strings.TrimSpace(*req.Owner)
	}
	if req.Notes != nil {
		step.Notes = *req.Notes
	}

	now := time.Now().UTC()
	newStage := client.CurrentStage
	detail := fmt.Sprintf("step %d updated", order)
	if req.Status != nil {
		target := domain.StepStatus(*req.Status)
		if err := progression.ApplyStatus(&step, target, now); err != nil {
			return domain.Step{}, apperror.Invalid("%v", err)
		}
		newStage = progression.AdvanceStage(client.CurrentStage, order, target)
		detail = fmt.Sprintf("step %d set to %s", order, target)
	}

	return s.save(ctx, step, newStage, detail, actor)
}

// Toggle flips a step between completed and pending.
func (s *StepService) Toggle(ctx context.Context, clientID int64, order int, actor string) (domain.Step, error) {
	client, step, err := s.load(ctx, clientID, order)
	if err != nil {
		return domain.Step{}, err
	}

	target := progression.Toggle(&step, time.Now().UTC())
	newStage := progression.AdvanceStage(client.CurrentStage, order, target)

	return s.save(ctx, step, newStage, fmt.Sprintf("step %d toggled to %s", order, target), actor)
}

func (s *StepService) load(ctx context.Context, clientID int64, order int) (domain.Client, domain.Step, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, domain.Step{}, apperror.NotFound("client")
		}
		return domain.Client{}, domain.Step{}, err
	}
	step, err := s.steps.GetByOrder(ctx, clientID, order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, domain.Step{}, apperror.NotFound("step")
		}
		return domain.Client{}, domain.Step{}, err
	}
	return client, step, nil
}

func (s *StepService) save(ctx context.Context, step domain.Step, newStage int, detail, actor string) (domain.Step, error) {
	saved, err := s.steps.Save(ctx, step, newStage, domain.Activity{
		ClientID: step.ClientID,
		Action:   "step_updated",
		Detail:   detail,
		Actor:    actor,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Step{}, apperror.NotFound("step")
		}
		return domain.Step{}, err
	}
	s.logger.Debug("step mutation applied",
		zap.Int64("client_id", step.ClientID),
		zap.Int("step_order", step.StepOrder),
		zap.Int("stage", newStage))
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
	return saved, nil
}
