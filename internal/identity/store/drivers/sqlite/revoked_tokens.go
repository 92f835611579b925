package sqlite

import (
	"context"
	"time"
)

type revokedTokensRepo struct {
	db dbtx
}

func (r *revokedTokensRepo) RecordRevoked(ctx context.Context, id string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invalidated_tokens (id, expires_at) VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING`, id, expiresAt.Unix())
	return err
}

func (r *revokedTokensRepo) IsRevoked(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM invalidated_tokens WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

// DeleteExpired compares whole seconds, matching the precision of the
// stored expiry, so a record is only removed once its second has passed.
func (r *revokedTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invalidated_tokens WHERE expires_at <= ?`, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
