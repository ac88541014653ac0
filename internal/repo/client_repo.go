package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
)

type ClientRepo interface {
	Create(ctx context.Context, c domain.Client, steps []domain.Step, act domain.Activity) (domain.Client, error)
	GetByID(ctx context.Context, id int64) (domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, c domain.Client, act domain.Activity) (domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

type PGClientRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPGClientRepo(db *pgxpool.Pool, logger *zap.Logger) *PGClientRepo {
	return &PGClientRepo{db: db, logger: logger}
}

const clientColumns = `id, name, tier, business_contact, contract_date, go_live_date,
	phase_status, health_score, current_stage, contract_status, dpia_required, dpia_status,
	escalated, escalation_reason, readiness_signed_off_by, readiness_signed_off_at,
	readiness_notes, created_at, updated_at`

func scanClient(row pgx.Row) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID, &c.Name, &c.Tier, &c.BusinessContact, &c.ContractDate, &c.GoLiveDate,
		&c.PhaseStatus, &c.HealthScore, &c.CurrentStage, &c.ContractStatus,
		&c.DPIARequired, &c.DPIAStatus, &c.Escalated, &c.EscalationReason,
		&c.ReadinessSignedOffBy, &c.ReadinessSignedOffAt, &c.ReadinessNotes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create inserts the client together with its instantiated template steps
// and the creation audit row, all in one transaction.
func (r *PGClientRepo) Create(ctx context.Context, c domain.Client, steps []domain.Step, act domain.Activity) (domain.Client, error) {
	var out domain.Client
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO clients (name, tier, business_contact, contract_date, go_live_date,
				phase_status, contract_status, dpia_required, dpia_status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING ` + clientColumns
		created, err := scanClient(tx.QueryRow(ctx, query,
			c.Name, c.Tier, c.BusinessContact, c.ContractDate, c.GoLiveDate,
			c.PhaseStatus, c.ContractStatus, c.DPIARequired, c.DPIAStatus))
		if err != nil {
			return err
		}
		for _, s := range steps {
			_, err := tx.Exec(ctx, `
				INSERT INTO steps (client_id, step_order, title, description, owner, category, status)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				created.ID, s.StepOrder, s.Title, s.Description, s.Owner, s.Category, s.Status)
			if err != nil {
				return err
			}
		}
		// A go-live date known at intake opens the ledger with its
		// one original row inside the same transaction.
		if created.GoLiveDate != nil {
			_, err := tx.Exec(ctx, `
				INSERT INTO go_live_history (client_id, go_live_date, entry_type, reason, approver)
				VALUES ($1, $2, $3, $4, $5)`,
				created.ID, created.GoLiveDate, domain.HistoryOriginal, "initial assignment", act.Actor)
			if err != nil {
				return err
			}
		}
		act.ClientID = created.ID
		if err := appendActivity(ctx, tx, act); err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		r.logger.Error("create client", zap.Error(err), zap.String("name", c.Name))
		return domain.Client{}, err
	}
	r.logger.Info("client created", zap.Int64("client_id", out.ID), zap.Int("steps", len(steps)))
	return out, nil
}

func (r *PGClientRepo) GetByID(ctx context.Context, id int64) (domain.Client, error) {
	return scanClient(r.db.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
}

func (r *PGClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update writes the full merged client row plus its audit entry. The
// service merges partial input into the existing record first.
func (r *PGClientRepo) Update(ctx context.Context, c domain.Client, act domain.Activity) (domain.Client, error) {
	var out domain.Client
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE clients SET name = $2, tier = $3, business_contact = $4, contract_date = $5,
				go_live_date = $6, phase_status = $7, health_score = $8,
				contract_status = $9, dpia_required = $10, dpia_status = $11,
				escalated = $12, escalation_reason = $13,
				readiness_signed_off_by = $14, readiness_signed_off_at = $15, readiness_notes = $16,
				updated_at = NOW()
			WHERE id = $1
			RETURNING ` + clientColumns
		updated, err := scanClient(tx.QueryRow(ctx, query,
			c.ID, c.Name, c.Tier, c.BusinessContact, c.ContractDate,
			c.GoLiveDate, c.PhaseStatus, c.HealthScore,
			c.ContractStatus, c.DPIARequired, c.DPIAStatus,
			c.Escalated, c.EscalationReason,
			c.ReadinessSignedOffBy, c.ReadinessSignedOffAt, c.ReadinessNotes))
		if err != nil {
			return err
		}
		if err := appendActivity(ctx, tx, act); err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Client{}, err
	}
	return out, nil
}

// Delete removes the client; steps, tasks, history, requirements and
// activity rows go with it via FK cascade.
func (r *PGClientRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("delete client", zap.Error(err), zap.Int64("client_id", id))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	r.logger.Info("client deleted", zap.Int64("client_id", id))
	return nil
}
