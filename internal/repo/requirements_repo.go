package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
)

type RequirementsRepo interface {
	Get(ctx context.Context, clientID int64) (domain.Requirements, error)
	Upsert(ctx context.Context, req domain.Requirements, act domain.Activity) (domain.Requirements, error)
}

type PGRequirementsRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPGRequirementsRepo(db *pgxpool.Pool, logger *zap.Logger) *PGRequirementsRepo {
	return &PGRequirementsRepo{db: db, logger: logger}
}

const requirementsColumns = `client_id, scanning_setup, case_volumes, integration_notes, consult_pathways, notes, updated_at`

func scanRequirements(row pgx.Row) (domain.Requirements, error) {
	var q domain.Requirements
	err := row.Scan(&q.ClientID, &q.ScanningSetup, &q.CaseVolumes,
		&q.IntegrationNotes, &q.ConsultPathways, &q.Notes, &q.UpdatedAt)
	return q, err
}

func (r *PGRequirementsRepo) Get(ctx context.Context, clientID int64) (domain.Requirements, error) {
	return scanRequirements(r.db.QueryRow(ctx,
		`SELECT `+requirementsColumns+` FROM requirements WHERE client_id = $1`, clientID))
}

func (r *PGRequirementsRepo) Upsert(ctx context.Context, req domain.Requirements, act domain.Activity) (domain.Requirements, error) {
	var out domain.Requirements
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO requirements (client_id, scanning_setup, case_volumes, integration_notes, consult_pathways, notes)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (client_id) DO UPDATE SET
				scanning_setup = EXCLUDED.scanning_setup,
				case_volumes = EXCLUDED.case_volumes,
				integration_notes = EXCLUDED.integration_notes,
				consult_pathways = EXCLUDED.consult_pathways,
				notes = EXCLUDED.notes,
				updated_at = NOW()
			RETURNING ` + requirementsColumns
		saved, err := scanRequirements(tx.QueryRow(ctx, query,
			req.ClientID, req.ScanningSetup, req.CaseVolumes,
			req.IntegrationNotes, req.ConsultPathways, req.Notes))
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
		r.logger.Error("upsert requirements", zap.Error(err), zap.Int64("client_id", req.ClientID))
		return domain.Requirements{}, err
	}
	return out, nil
}
