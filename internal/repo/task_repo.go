package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t domain.Task, act domain.Activity) (domain.Task, error)
	GetByID(ctx context.Context, clientID, id int64) (domain.Task, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Task, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, t domain.Task, act domain.Activity) (domain.Task, error)
	Delete(ctx context.Context, clientID, id int64, act domain.Activity) error
}

type PGTaskRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPGTaskRepo(db *pgxpool.Pool, logger *zap.Logger) *PGTaskRepo {
	return &PGTaskRepo{db: db, logger: logger}
}

const taskColumns = `id, client_id, title, owner, due_date, completion_date,
	status, phase, severity, created_at, updated_at`

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.ClientID, &t.Title, &t.Owner, &t.DueDate, &t.CompletionDate,
		&t.Status, &t.Phase, &t.Severity, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) Create(ctx context.Context, t domain.Task, act domain.Activity) (domain.Task, error) {
	var out domain.Task
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO tasks (client_id, title, owner, due_date, status, phase, severity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING ` + taskColumns
		created, err := scanTask(tx.QueryRow(ctx, query,
			t.ClientID, t.Title, t.Owner, t.DueDate, t.Status, t.Phase, t.Severity))
		if err != nil {
			return err
		}
		if err := appendActivity(ctx, tx, act); err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		r.logger.Error("create task", zap.Error(err), zap.Int64("client_id", t.ClientID))
		return domain.Task{}, err
	}
	return out, nil
}

func (r *PGTaskRepo) GetByID(ctx context.Context, clientID, id int64) (domain.Task, error) {
	return scanTask(r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE client_id = $1 AND id = $2`, clientID, id))
}

func (r *PGTaskRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE client_id = $1 ORDER BY created_at ASC, id ASC`,
		clientID)
}

func (r *PGTaskRepo) ListAll(ctx context.Context) ([]domain.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY client_id ASC, created_at ASC`)
}

func (r *PGTaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Update(ctx context.Context, t domain.Task, act domain.Activity) (domain.Task, error) {
	var out domain.Task
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE tasks SET title = $3, owner = $4, due_date = $5, completion_date = $6,
				status = $7, phase = $8, severity = $9, updated_at = NOW()
			WHERE client_id = $1 AND id = $2
			RETURNING ` + taskColumns
		updated, err := scanTask(tx.QueryRow(ctx, query,
			t.ClientID, t.ID, t.Title, t.Owner, t.DueDate, t.CompletionDate,
			t.Status, t.Phase, t.Severity))
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
		return domain.Task{}, err
	}
	return out, nil
}

func (r *PGTaskRepo) Delete(ctx context.Context, clientID, id int64, act domain.Activity) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE client_id = $1 AND id = $2`, clientID, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return appendActivity(ctx, tx, act)
	})
}
