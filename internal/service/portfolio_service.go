package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/cache"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/progression"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/repo"
)

// PortfolioService builds the cross-client views: the portfolio with
// blockers and the dashboard stats. Both are cached; blockers come from
// the same alert rules the per-client endpoint uses.
type PortfolioService struct {
	clients repo.ClientRepo
	steps   repo.StepRepo
	tasks   repo.TaskRepo
	cache   *cache.SummaryCache
	logger  *zap.Logger
	sf      singleflight.Group
}

func NewPortfolioService(clients repo.ClientRepo, steps repo.StepRepo, tasks repo.TaskRepo, c *cache.SummaryCache, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{clients: clients, steps: steps, tasks: tasks, cache: c, logger: logger}
}

func (s *PortfolioService) Portfolio(ctx context.Context) ([]domain.PortfolioRow, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("portfolio", func() (interface{}, error) {
			if rows, err := s.cache.GetPortfolio(ctx); err == nil && rows != nil {
				return rows, nil
			}
			rows, err := s.buildPortfolio(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetPortfolio(ctx, rows)
			return rows, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]domain.PortfolioRow), nil
	}
	return s.buildPortfolio(ctx)
}

func (s *PortfolioService) buildPortfolio(ctx context.Context) ([]domain.PortfolioRow, error) {
	clients, counts, tasksByClient, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows := make([]domain.PortfolioRow, 0, len(clients))
	for _, c := range clients {
		sc := counts[c.ID]
		percent := 0
		if sc.Total > 0 {
			percent = int(float64(sc.Completed)/float64(sc.Total)*100 + 0.5)
		}

		var blockers []string
		for _, a := range progression.ComputeAlerts(c, tasksByClient[c.ID], now) {
			if a.Severity == domain.SeverityHigh {
				blockers = append(blockers, a.Message)
			}
		}

		rows = append(rows, domain.PortfolioRow{
			ID:              c.ID,
			Name:            c.Name,
			Tier:            c.Tier,
			PhaseStatus:     c.PhaseStatus,
			CurrentStage:    c.CurrentStage,
			HealthScore:     c.HealthScore,
			GoLiveDate:      c.GoLiveDate,
			Escalated:       c.Escalated,
			CompletedSteps:  sc.Completed,
			TotalSteps:      sc.Total,
			ProgressPercent: percent,
			Blockers:        blockers,
		})
	}
	return rows, nil
}

func (s *PortfolioService) Stats(ctx context.Context) (domain.Stats, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("stats", func() (interface{}, error) {
			if stats, ok, err := s.cache.GetStats(ctx); err == nil && ok {
				return stats, nil
			}
			stats, err := s.buildStats(ctx)
			if err != nil {
				return domain.Stats{}, err
			}
			_ = s.cache.SetStats(ctx, stats)
			return stats, nil
		})
		if err != nil {
			return domain.Stats{}, err
		}
		return v.(domain.Stats), nil
	}
	return s.buildStats(ctx)
}

func (s *PortfolioService) buildStats(ctx context.Context) (domain.Stats, error) {
	clients, counts, tasksByClient, err := s.loadAll(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	now := time.Now().UTC()
	var stats domain.Stats
	stats.TotalClients = len(clients)
	for _, c := range clients {
		if c.PhaseStatus == domain.PhaseLive {
			stats.LiveClients++
		}
		if c.Escalated {
			stats.EscalatedCount++
		}
		sc := counts[c.ID]
		stats.TotalSteps += sc.Total
		stats.CompletedSteps += sc.Completed
		for _, t := range tasksByClient[c.ID] {
			if t.Status == domain.TaskDone {
				continue
			}
			stats.OpenTasks++
			if t.DueDate != nil && t.DueDate.Before(now) {
				stats.OverdueTasks++
			}
		}
	}
	stats.PendingSteps = stats.TotalSteps - stats.CompletedSteps
	if stats.TotalSteps > 0 {
		stats.ProgressPercent = int(float64(stats.CompletedSteps)/float64(stats.TotalSteps)*100 + 0.5)
	}
	return stats, nil
}

func (s *PortfolioService) loadAll(ctx context.Context) ([]domain.Client, map[int64]repo.StepCounts, map[int64][]domain.Task, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	counts, err := s.steps.CountsByClient(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	byClient := make(map[int64][]domain.Task)
	for _, t := range tasks {
		byClient[t.ClientID] = append(byClient[t.ClientID], t)
	}
	return clients, counts, byClient, nil
}
