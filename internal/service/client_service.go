package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/apperror"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/cache"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/dto"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/progression"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/repo"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/seed"
)

// ClientService orchestrates client lifecycle: intake with template
// instantiation, partial updates with the go-live ledger side effect,
// gating state, alerts and the audit trail.
type ClientService struct {
	clients  repo.ClientRepo
	steps    repo.StepRepo
	tasks    repo.TaskRepo
	history  repo.HistoryRepo
	reqs     repo.RequirementsRepo
	activity repo.ActivityRepo
	cache    *cache.SummaryCache
	template []seed.TemplateStep
	logger   *zap.Logger
	sf       singleflight.Group
}

// NewClientService creates a ClientService. If c is nil, caching is
// disabled. The template is copied once at construction; per-client
// divergence is not supported.
func NewClientService(
	clients repo.ClientRepo,
	steps repo.StepRepo,
	tasks repo.TaskRepo,
	history repo.HistoryRepo,
	reqs repo.RequirementsRepo,
	activity repo.ActivityRepo,
	c *cache.SummaryCache,
	template []seed.TemplateStep,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clients:  clients,
		steps:    steps,
		tasks:    tasks,
		history:  history,
		reqs:     reqs,
		activity: activity,
		cache:    c,
		template: template,
		logger:   logger,
	}
}

func (s *ClientService) Create(ctx context.Context, req dto.CreateClientRequest, actor string) (domain.Client, []domain.Step, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, nil, apperror.Invalid("client name is required")
	}

	c := domain.Client{
		Name:            name,
		Tier:            domain.Tier(defaultStr(req.Tier, string(domain.TierStandard))),
		BusinessContact: strings.TrimSpace(req.BusinessContact),
		PhaseStatus:     domain.PhaseStatus(defaultStr(req.PhaseStatus, string(domain.PhasePlanning))),
		ContractDate:    req.ContractDate.Ptr(),
		GoLiveDate:      req.GoLiveDate.Ptr(),
		ContractStatus:  defaultStr(req.ContractStatus, "pending"),
		DPIARequired:    req.DPIARequired,
		DPIAStatus:      defaultStr(req.DPIAStatus, "pending"),
	}

	created, err := s.clients.Create(ctx, c, seed.Instantiate(0, s.template), domain.Activity{
		Action: "client_created",
		Detail: fmt.Sprintf("client %q created with %d steps", name, len(s.template)),
		Actor:  actor,
	})
	if err != nil {
		return domain.Client{}, nil, err
	}

	steps, err := s.steps.ListByClient(ctx, created.ID)
	if err != nil {
		return domain.Client{}, nil, err
	}
	s.invalidate(ctx)
	return created, steps, nil
}

// List returns all clients with their progress summary, served from the
// Redis cache when warm.
func (s *ClientService) List(ctx context.Context) ([]domain.ClientSummary, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("clients", func() (interface{}, error) {
			if list, err := s.cache.GetClients(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.listSummaries(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetClients(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]domain.ClientSummary), nil
	}
	return s.listSummaries(ctx)
}

func (s *ClientService) listSummaries(ctx context.Context) ([]domain.ClientSummary, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.steps.CountsByClient(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]domain.ClientSummary, 0, len(clients))
	for _, c := range clients {
		sc := counts[c.ID]
		percent := 0
		if sc.Total > 0 {
			percent = int(float64(sc.Completed)/float64(sc.Total)*100 + 0.5)
		}
		list = append(list, domain.ClientSummary{
			Client:          c,
			CompletedSteps:  sc.Completed,
			TotalSteps:      sc.Total,
			ProgressPercent: percent,
		})
	}
	return list, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (domain.Client, []domain.Step, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, nil, apperror.NotFound("client")
		}
		return domain.Client{}, nil, err
	}
	steps, err := s.steps.ListByClient(ctx, id)
	if err != nil {
		return domain.Client{}, nil, err
	}
	return c, steps, nil
}

// Update applies a partial edit. A go_live_date in the request is not
// written directly: it goes through the ledger append, which moves the
// client's date and tags the row original or revised.
func (s *ClientService) Update(ctx context.Context, id int64, req dto.UpdateClientRequest, actor string) (domain.Client, error) {
	existing, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, apperror.NotFound("client")
		}
		return domain.Client{}, err
	}

	merged := existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Client{}, apperror.Invalid("client name is required")
		}
		merged.Name = name
	}
	if req.Tier != nil {
		merged.Tier = domain.Tier(*req.Tier)
	}
	if req.BusinessContact != nil {
		merged.BusinessContact = strings.TrimSpace(*req.BusinessContact)
	}
	if req.PhaseStatus != nil {
		merged.PhaseStatus = domain.PhaseStatus(*req.PhaseStatus)
	}
	if req.HealthScore != nil {
		merged.HealthScore = *req.HealthScore
	}
	if req.ContractDate != nil {
		merged.ContractDate = req.ContractDate.Ptr()
	}
	if req.ContractStatus != nil {
		merged.ContractStatus = *req.ContractStatus
	}
	if req.DPIARequired != nil {
		merged.DPIARequired = *req.DPIARequired
	}
	if req.DPIAStatus != nil {
		merged.DPIAStatus = *req.DPIAStatus
	}
	// go_live_date stays as is here; the ledger owns it
	merged.GoLiveDate = existing.GoLiveDate

	updated, err := s.clients.Update(ctx, merged, domain.Activity{
		ClientID: id,
		Action:   "client_updated",
		Detail:   fmt.Sprintf("client %q updated", merged.Name),
		Actor:    actor,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, apperror.NotFound("client")
		}
		return domain.Client{}, err
	}

	if req.GoLiveDate != nil {
		if newDate := req.GoLiveDate.Ptr(); newDate != nil {
			entry, err := s.RecordGoLiveDate(ctx, id, dto.GoLiveDateRequest{
				Reason:   defaultStr(req.GoLiveReason, "updated via client edit"),
				Approver: req.GoLiveApprover,
			}, *newDate, actor)
			if err != nil {
				return domain.Client{}, err
			}
			updated.GoLiveDate = &entry.GoLiveDate
		}
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id int64, actor string) error {
	err := s.clients.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("client")
		}
		return err
	}
	s.logger.Info("client removed", zap.Int64("client_id", id), zap.String("actor", actor))
	s.invalidate(ctx)
	return nil
}

// RecordGoLiveDate appends to the go-live ledger. The first entry for a
// client is original, every later one revised, identical dates included.
func (s *ClientService) RecordGoLiveDate(ctx context.Context, id int64, req dto.GoLiveDateRequest, date time.Time, actor string) (domain.GoLiveHistory, error) {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.GoLiveHistory{}, apperror.NotFound("client")
		}
		return domain.GoLiveHistory{}, err
	}

	entry, err := s.history.Append(ctx, domain.GoLiveHistory{
		ClientID:   id,
		GoLiveDate: date,
		Reason:     strings.TrimSpace(req.Reason),
		Approver:   strings.TrimSpace(req.Approver),
		DelayCause: strings.TrimSpace(req.DelayCause),
	}, domain.Activity{
		ClientID: id,
		Action:   "go_live_date_recorded",
		Detail:   fmt.Sprintf("go-live date set to %s", date.Format("2006-01-02")),
		Actor:    actor,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.GoLiveHistory{}, apperror.NotFound("client")
		}
		return domain.GoLiveHistory{}, err
	}
	s.invalidate(ctx)
	return entry, nil
}

func (s *ClientService) GoLiveHistory(ctx context.Context, id int64) ([]domain.GoLiveHistory, error) {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("client")
		}
		return nil, err
	}
	return s.history.ListByClient(ctx, id)
}

// RecordReadiness stores the go-live readiness sign-off on the client.
func (s *ClientService) RecordReadiness(ctx context.Context, id int64, req dto.ReadinessRequest, actor string) (domain.Client, error) {
	existing, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, apperror.NotFound("client")
		}
		return domain.Client{}, err
	}

	now := time.Now().UTC()
	existing.ReadinessSignedOffBy = strings.TrimSpace(req.SignedOffBy)
	existing.ReadinessSignedOffAt = &now
	existing.ReadinessNotes = strings.TrimSpace(req.Notes)

	updated, err := s.clients.Update(ctx, existing, domain.Activity{
		ClientID: id,
		Action:   "go_live_readiness_signed_off",
		Detail:   fmt.Sprintf("readiness signed off by %s", existing.ReadinessSignedOffBy),
		Actor:    actor,
	})
	if err != nil {
		return domain.Client{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// SetEscalation flips the escalation flag and reason.
func (s *ClientService) SetEscalation(ctx context.Context, id int64, escalated bool, reason, actor string) (domain.Client, error) {
	existing, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, apperror.NotFound("client")
		}
		return domain.Client{}, err
	}

	existing.Escalated = escalated
	existing.EscalationReason = strings.TrimSpace(reason)
	if !escalated {
		existing.EscalationReason = ""
	}

	action := "client_escalated"
	if !escalated {
		action = "client_deescalated"
	}
	updated, err := s.clients.Update(ctx, existing, domain.Activity{
		ClientID: id,
		Action:   action,
		Detail:   existing.EscalationReason,
		Actor:    actor,
	})
	if err != nil {
		return domain.Client{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Alerts recomputes the alert list from current state; nothing is stored.
func (s *ClientService) Alerts(ctx context.Context, id int64) ([]domain.Alert, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("client")
		}
		return nil, err
	}
	tasks, err := s.tasks.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	return progression.ComputeAlerts(c, tasks, time.Now().UTC()), nil
}

func (s *ClientService) Requirements(ctx context.Context, id int64) (domain.Requirements, error) {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Requirements{}, apperror.NotFound("client")
		}
		return domain.Requirements{}, err
	}
	req, err := s.reqs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No document yet: an empty one, not an error.
			return domain.Requirements{ClientID: id}, nil
		}
		return domain.Requirements{}, err
	}
	return req, nil
}

func (s *ClientService) UpsertRequirements(ctx context.Context, id int64, req dto.RequirementsRequest, actor string) (domain.Requirements, error) {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Requirements{}, apperror.NotFound("client")
		}
		return domain.Requirements{}, err
	}

	saved, err := s.reqs.Upsert(ctx, domain.Requirements{
		ClientID:         id,
		ScanningSetup:    req.ScanningSetup,
		CaseVolumes:      req.CaseVolumes,
		IntegrationNotes: req.IntegrationNotes,
		ConsultPathways:  req.ConsultPathways,
		Notes:            req.Notes,
	}, domain.Activity{
		ClientID: id,
		Action:   "requirements_updated",
		Actor:    actor,
	})
	if err != nil {
		return domain.Requirements{}, err
	}
	s.invalidate(ctx)
	return saved, nil
}

func (s *ClientService) Activity(ctx context.Context, id int64) ([]domain.Activity, error) {
	if _, err := s.clients.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("client")
		}
		return nil, err
	}
	return s.activity.ListByClient(ctx, id)
}

func (s *ClientService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}

func defaultStr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
