package sessionrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/pg"
	"go.uber.org/zap"
)

const sessionColumns = `id, payer_id, earner_id, state, end_reason,
               coins_per_minute, payout_per_minute, minutes_billed, coins_spent, amount_earned,
               created_at, started_at, ended_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(&s.ID, &s.PayerID, &s.EarnerID, &s.State, &s.EndReason,
		&s.CoinsPerMinute, &s.PayoutPerMinute, &s.MinutesBilled, &s.CoinsSpent, &s.AmountEarned,
		&s.CreatedAt, &s.StartedAt, &s.EndedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Create(ctx context.Context, payerID, earnerID int) (*domain.Session, error) {
	query := `
        INSERT INTO sessions (payer_id, earner_id, state)
        VALUES ($1, $2, 'requested')
        RETURNING ` + sessionColumns + `
    `
	session, err := scanSession(r.db.QueryRow(ctx, query, payerID, earnerID))
	if err != nil {
		zap.L().Error("can't create session", zap.Error(err))
		return nil, err
	}
	return session, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	query := `
        SELECT ` + sessionColumns + `
        FROM sessions
        WHERE id = $1
    `
	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find session", zap.Error(err))
		return nil, err
	}
	return session, nil
}

// GetForUpdate locks the session row for the rest of the enclosing
// transaction, serializing all lifecycle operations on one session.
func (r *Repository) GetForUpdate(ctx context.Context, id int) (*domain.Session, error) {
	query := `
        SELECT ` + sessionColumns + `
        FROM sessions
        WHERE id = $1
        FOR UPDATE
    `
	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock session", zap.Error(err))
		return nil, err
	}
	return session, nil
}

// Activate flips requested -> active and pins the billing rate. Exactly one
// of any number of concurrent callers sees a row returned; the rest get nil.
func (r *Repository) Activate(ctx context.Context, id, earnerID int, rate domain.Rate, startedAt time.Time) (*domain.Session, error) {
	query := `
        UPDATE sessions
        SET state = 'active', started_at = $1, coins_per_minute = $2, payout_per_minute = $3
        WHERE id = $4 AND earner_id = $5 AND state = 'requested'
        RETURNING ` + sessionColumns + `
    `
	session, err := scanSession(r.db.QueryRow(ctx, query, startedAt, rate.CoinsPerMinute, rate.PayoutPerMinute, id, earnerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't activate session", zap.Error(err))
		return nil, err
	}
	return session, nil
}

// MarkEnded transitions any non-terminal session to ended. Returns nil when
// the session was already terminal (or not in fromState).
func (r *Repository) MarkEnded(ctx context.Context, id int, fromState domain.SessionState, reason domain.EndReason, endedAt time.Time) (*domain.Session, error) {
	query := `
        UPDATE sessions
        SET state = 'ended', end_reason = $1, ended_at = $2
        WHERE id = $3 AND state = $4
        RETURNING ` + sessionColumns + `
    `
	session, err := scanSession(r.db.QueryRow(ctx, query, reason, endedAt, id, fromState))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't end session", zap.Error(err))
		return nil, err
	}
	return session, nil
}

// AddMinuteCharge bumps the billed counters after a successful transfer.
func (r *Repository) AddMinuteCharge(ctx context.Context, id int, coins int64, payout float64) error {
	query := `
        UPDATE sessions
        SET minutes_billed = minutes_billed + 1,
            coins_spent = coins_spent + $1,
            amount_earned = amount_earned + $2
        WHERE id = $3
    `
	_, err := r.db.Exec(ctx, query, coins, payout, id)
	if err != nil {
		zap.L().Error("can't add minute charge", zap.Error(err))
		return err
	}
	return nil
}

// FindDueForBilling returns active sessions whose next unbilled minute
// boundary has passed.
func (r *Repository) FindDueForBilling(ctx context.Context, limit uint32) ([]domain.Session, error) {
	query := `
        SELECT ` + sessionColumns + `
        FROM sessions
        WHERE state = 'active'
          AND started_at + make_interval(mins => minutes_billed + 1) <= now()
        ORDER BY started_at
        LIMIT $1
    `
	return r.querySessions(ctx, query, limit)
}

// FindStaleRequests returns requested sessions older than ttl.
func (r *Repository) FindStaleRequests(ctx context.Context, ttl time.Duration) ([]domain.Session, error) {
	query := `
        SELECT ` + sessionColumns + `
        FROM sessions
        WHERE state = 'requested' AND created_at < now() - $1::interval
    `
	return r.querySessions(ctx, query, ttl.String())
}

func (r *Repository) FindPendingByEarner(ctx context.Context, earnerID int) ([]domain.Session, error) {
	query := `
        SELECT ` + sessionColumns + `
        FROM sessions
        WHERE earner_id = $1 AND state = 'requested'
        ORDER BY created_at DESC
    `
	return r.querySessions(ctx, query, earnerID)
}

func (r *Repository) FindActiveByUser(ctx context.Context, userID int) (*domain.Session, error) {
	query := `
        SELECT ` + sessionColumns + `
        FROM sessions
        WHERE state = 'active' AND (payer_id = $1 OR earner_id = $1)
    `
	session, err := scanSession(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find active session", zap.Error(err))
		return nil, err
	}
	return session, nil
}

// FindEndedByUser lists ended sessions that actually started, newest first.
func (r *Repository) FindEndedByUser(ctx context.Context, userID int) ([]domain.Session, error) {
	query := `
        SELECT ` + sessionColumns + `
        FROM sessions
        WHERE state = 'ended' AND started_at IS NOT NULL AND (payer_id = $1 OR earner_id = $1)
        ORDER BY ended_at DESC
    `
	return r.querySessions(ctx, query, userID)
}

func (r *Repository) querySessions(ctx context.Context, query string, args ...any) ([]domain.Session, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't query sessions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		err := rows.Scan(&s.ID, &s.PayerID, &s.EarnerID, &s.State, &s.EndReason,
			&s.CoinsPerMinute, &s.PayoutPerMinute, &s.MinutesBilled, &s.CoinsSpent, &s.AmountEarned,
			&s.CreatedAt, &s.StartedAt, &s.EndedAt)
		if err != nil {
			zap.L().Error("can't scan session row", zap.Error(err))
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}
