package raterepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bala-dotcom/texme/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		zap.L().Error("failed to get setting", zap.Error(err))
		return "", false, err
	}
	return value, true, nil
}

func (r *Repository) SetValue(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
    `
	_, err := r.db.Exec(ctx, query, key, value)
	if err != nil {
		zap.L().Error("failed to set setting", zap.Error(err))
		return err
	}
	return nil
}
