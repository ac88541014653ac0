package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
)

// StepCounts aggregates step completion per client for summaries.
type StepCounts struct {
	Total     int
	Completed int
}

type StepRepo interface {
	GetByOrder(ctx context.Context, clientID int64, order int) (domain.Step, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Step, error)
	CountsByClient(ctx context.Context) (map[int64]StepCounts, error)
	// Save persists a mutated step, advances the client's stage marker and
	// appends the audit row in a single transaction.
	Save(ctx context.Context, step domain.Step, newStage int, act domain.Activity) (domain.Step, error)
}

type PGStepRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPGStepRepo(db *pgxpool.Pool, logger *zap.Logger) *PGStepRepo {
	return &PGStepRepo{db: db, logger: logger}
}

const stepColumns = `id, client_id, step_order, title, description, owner, category,
	status, notes, started_at, completed_at, created_at, updated_at`

func scanStep(row pgx.Row) (domain.Step, error) {
	var s domain.Step
	err := row.Scan(
		&s.ID, &s.ClientID, &s.StepOrder, &s.Title, &s.Description, &s.Owner,
		&s.Category, &s.Status, &s.Notes, &s.StartedAt, &s.CompletedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *PGStepRepo) GetByOrder(ctx context.Context, clientID int64, order int) (domain.Step, error) {
	return scanStep(r.db.QueryRow(ctx,
		`SELECT `+stepColumns+` FROM steps WHERE client_id = $1 AND step_order = $2`,
		clientID, order))
}

func (r *PGStepRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.Step, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+stepColumns+` FROM steps WHERE client_id = $1 ORDER BY step_order ASC`,
		clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Step
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *PGStepRepo) CountsByClient(ctx context.Context) (map[int64]StepCounts, error) {
	rows, err := r.db.Query(ctx, `
		SELECT client_id, COUNT(*), COUNT(*) FILTER (WHERE status = 'completed')
		FROM steps GROUP BY client_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[int64]StepCounts)
	for rows.Next() {
		var clientID int64
		var c StepCounts
		if err := rows.Scan(&clientID, &c.Total, &c.Completed); err != nil {
			return nil, err
		}
		counts[clientID] = c
	}
	return counts, rows.Err()
}

func (r *PGStepRepo) Save(ctx context.Context, step domain.Step, newStage int, act domain.Activity) (domain.Step, error) {
	var out domain.Step
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE steps SET title = $2, description = $3, owner = $4, status = $5,
				notes = $6, started_at = $7, completed_at = $8, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + stepColumns
		saved, err := scanStep(tx.QueryRow(ctx, query,
			step.ID, step.Title, step.Description, step.Owner, step.Status,
			step.Notes, step.StartedAt, step.CompletedAt))
		if err != nil {
			return err
		}
		// GREATEST keeps the marker monotonic even if callers race.
		_, err = tx.Exec(ctx,
			`UPDATE clients SET current_stage = GREATEST(current_stage, $2), updated_at = NOW() WHERE id = $1`,
			step.ClientID, newStage)
		if err != nil {
			return err
		}
		if err := appendActivity(ctx, tx, act); err != nil {
			return err
		}
		out = saved
		return nil
	})
	if err != nil {
		r.logger.Error("save step", zap.Error(err),
			zap.Int64("client_id", step.ClientID), zap.Int("step_order", step.StepOrder))
		return domain.Step{}, err
	}
	r.logger.Debug("step saved",
		zap.Int64("client_id", step.ClientID),
		zap.Int("step_order", step.StepOrder),
		zap.String("status", string(out.Status)))
	return out, nil
}
