package presencerepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bala-dotcom/texme/internal/domain"
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

func (r *Repository) Get(ctx context.Context, userID int) (*domain.Presence, error) {
	query := `
        SELECT user_id, state, session_id
        FROM presence
        WHERE user_id = $1
    `
	var p domain.Presence
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.State, &p.SessionID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get presence", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Create(ctx context.Context, userID int) error {
	query := `
        INSERT INTO presence (user_id, state)
        VALUES ($1, 'free')
    `
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to create presence", zap.Error(err))
		return err
	}
	return nil
}

// Transition moves a user from one presence state to another. It reports
// whether the guarded update took effect; a false return means the user was
// not in the expected state, which is how single-slot races are lost.
func (r *Repository) Transition(ctx context.Context, userID int, from, to domain.PresenceState, sessionID *int) (bool, error) {
	query := `
        UPDATE presence
        SET state = $1, session_id = $2
        WHERE user_id = $3 AND state = $4
    `
	tag, err := r.db.Exec(ctx, query, to, sessionID, userID, from)
	if err != nil {
		zap.L().Error("failed to transition presence", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Release sets a user back to free regardless of the prior state. Used when
// tearing down a session that already owns both presence slots.
func (r *Repository) Release(ctx context.Context, userID int) error {
	query := `
        UPDATE presence
        SET state = 'free', session_id = NULL
        WHERE user_id = $1
    `
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to release presence", zap.Error(err))
		return err
	}
	return nil
}
