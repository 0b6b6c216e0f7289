package draft

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by the order_drafts table.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context, session, slot string) (json.RawMessage, bool, error) {
	const q = `
SELECT payload
FROM order_drafts
WHERE session_id = $1 AND slot = $2
LIMIT 1
`
	var payload []byte
	if err := r.pool.QueryRow(ctx, q, session, slot).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		r.logger.Error("draft repo: load", zap.String("session", session), zap.Error(err))
		return nil, false, err
	}
	return json.RawMessage(payload), true, nil
}

func (r *postgresRepo) Save(ctx context.Context, session, slot string, payload json.RawMessage) error {
	const q = `
INSERT INTO order_drafts (session_id, slot, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (session_id, slot) DO UPDATE
SET payload = EXCLUDED.payload, updated_at = now()
`
	if _, err := r.pool.Exec(ctx, q, session, slot, []byte(payload)); err != nil {
		r.logger.Error("draft repo: save", zap.String("session", session), zap.Error(err))
		return err
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, session, slot string) error {
	const q = `DELETE FROM order_drafts WHERE session_id = $1 AND slot = $2`
	if _, err := r.pool.Exec(ctx, q, session, slot); err != nil {
		r.logger.Error("draft repo: clear", zap.String("session", session), zap.Error(err))
		return err
	}
	return nil
}
