package feature

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGProvider reads flags from the feature_flags table. Every read hits the
// database; wrap it in a Cached decorator on hot paths.
type PGProvider struct {
	pool *pgxpool.Pool
}

// NewPGProvider creates a Postgres flag provider on the given pool.
func NewPGProvider(pool *pgxpool.Pool) *PGProvider {
	if pool == nil {
		panic("feature: pool cannot be nil")
	}
	return &PGProvider{pool: pool}
}

func (p *PGProvider) IsEnabled(ctx context.Context, name string) (bool, error) {
	var enabled bool
	err := p.pool.QueryRow(ctx,
		`SELECT enabled FROM feature_flags WHERE name = $1`, name).Scan(&enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrFlagNotFound
		}
		return false, errors.Join(ErrFailedToReadFlag, err)
	}
	return enabled, nil
}

func (p *PGProvider) SetEnabled(ctx context.Context, name string, enabled bool) error {
	_, err := p.pool.Exec(ctx, `
INSERT INTO feature_flags (name, enabled, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET enabled = EXCLUDED.enabled, updated_at = now()`,
		name, enabled)
	if err != nil {
		return errors.Join(ErrFailedToWriteFlag, err)
	}
	return nil
}
