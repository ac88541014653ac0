package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
)

type ActivityRepo interface {
	ListByClient(ctx context.Context, clientID int64) ([]domain.Activity, error)
}

type PGActivityRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPGActivityRepo(db *pgxpool.Pool, logger *zap.Logger) *PGActivityRepo {
	return &PGActivityRepo{db: db, logger: logger}
}

func (r *PGActivityRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.Activity, error) {
	query := `
		SELECT id, client_id, action, detail, actor, created_at
		FROM activity_log WHERE client_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		r.logger.Error("query activity log", zap.Error(err), zap.Int64("client_id", clientID))
		return nil, err
	}
	defer rows.Close()
	var list []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.ClientID, &a.Action, &a.Detail, &a.Actor, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// appendActivity writes an audit row with whatever DB handle the caller is
// inside; mutating repos call it from their transactions.
func appendActivity(ctx context.Context, db DB, a domain.Activity) error {
	_, err := db.Exec(ctx,
		`INSERT INTO activity_log (client_id, action, detail, actor) VALUES ($1, $2, $3, $4)`,
		a.ClientID, a.Action, a.Detail, a.Actor)
	return err
}
