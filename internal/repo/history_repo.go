package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
)

type HistoryRepo interface {
	// Append records a go-live date: the first row for a client is tagged
	// original, every later one revised, and the client's current go-live
	// date moves in the same transaction. The ledger never deduplicates.
	Append(ctx context.Context, entry domain.GoLiveHistory, act domain.Activity) (domain.GoLiveHistory, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.GoLiveHistory, error)
}

type PGHistoryRepo struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPGHistoryRepo(db *pgxpool.Pool, logger *zap.Logger) *PGHistoryRepo {
	return &PGHistoryRepo{db: db, logger: logger}
}

const historyColumns = `id, client_id, go_live_date, entry_type, reason, approver, delay_cause, created_at`

func scanHistory(row pgx.Row) (domain.GoLiveHistory, error) {
	var h domain.GoLiveHistory
	err := row.Scan(&h.ID, &h.ClientID, &h.GoLiveDate, &h.EntryType,
		&h.Reason, &h.Approver, &h.DelayCause, &h.CreatedAt)
	return h, err
}

func (r *PGHistoryRepo) Append(ctx context.Context, entry domain.GoLiveHistory, act domain.Activity) (domain.GoLiveHistory, error) {
	var out domain.GoLiveHistory
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM go_live_history WHERE client_id = $1)`,
			entry.ClientID).Scan(&exists)
		if err != nil {
			return err
		}
		entryType := domain.HistoryOriginal
		if exists {
			entryType = domain.HistoryRevised
		}

		query := `
			INSERT INTO go_live_history (client_id, go_live_date, entry_type, reason, approver, delay_cause)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING ` + historyColumns
		created, err := scanHistory(tx.QueryRow(ctx, query,
			entry.ClientID, entry.GoLiveDate, entryType, entry.Reason, entry.Approver, entry.DelayCause))
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx,
			`UPDATE clients SET go_live_date = $2, updated_at = NOW() WHERE id = $1`,
			entry.ClientID, entry.GoLiveDate)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		if err := appendActivity(ctx, tx, act); err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		r.logger.Error("append go-live history", zap.Error(err), zap.Int64("client_id", entry.ClientID))
		return domain.GoLiveHistory{}, err
	}
	r.logger.Info("go-live date recorded",
		zap.Int64("client_id", entry.ClientID),
		zap.String("entry_type", out.EntryType),
		zap.Time("go_live_date", out.GoLiveDate))
	return out, nil
}

func (r *PGHistoryRepo) ListByClient(ctx context.Context, clientID int64) ([]domain.GoLiveHistory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historyColumns+` FROM go_live_history WHERE client_id = $1 ORDER BY created_at DESC, id DESC`,
		clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.GoLiveHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}
