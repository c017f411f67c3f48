package billing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bala-dotcom/texme/internal/config"
	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/pg"
	"github.com/bala-dotcom/texme/internal/service/ledgerservice"
	"github.com/bala-dotcom/texme/internal/service/sessionservice"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

// billingSessions guards against two in-flight ticks for one session, which
// keeps minute charges strictly ordered per session.
var billingSessions sync.Map

type SessionRepo interface {
	GetForUpdate(ctx context.Context, id int) (*domain.Session, error)
	AddMinuteCharge(ctx context.Context, id int, coins int64, payout float64) error
	FindDueForBilling(ctx context.Context, limit uint32) ([]domain.Session, error)
}

type Ledger interface {
	GetAccount(ctx context.Context, userID int) (*domain.Account, error)
	Transfer(ctx context.Context, payerAccountID, earnerAccountID int, coins int64, payout float64, sessionID, minuteIndex int) error
}

type Sessions interface {
	EndBySystem(ctx context.Context, sessionID int, reason domain.EndReason) (*domain.SessionSummary, error)
}

// Service is the billing clock: once per full elapsed minute of every active
// session it moves one minute's value from payer to earner, or ends the
// session when the payer runs dry.
type Service struct {
	sessionRepo    SessionRepo
	ledger         Ledger
	sessions       Sessions
	txManager      pg.TXManager
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, sessionRepo SessionRepo, ledger Ledger, sessions Sessions, txManager pg.TXManager) *Service {
	return &Service{
		sessionRepo:    sessionRepo,
		ledger:         ledger,
		sessions:       sessions,
		txManager:      txManager,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: cfg.BillingInterval,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Billing clock started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping billing clock")
			return
		case <-ticker.C:
			s.processDueSessions(ctx)
		}
	}
}

func (s *Service) processDueSessions(ctx context.Context) {
	sessions, err := s.sessionRepo.FindDueForBilling(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch sessions due for billing", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, session := range sessions {
		session := session

		if _, loaded := billingSessions.LoadOrStore(session.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer billingSessions.Delete(session.ID)
				return s.Tick(ctx, session.ID)
			})
			if err != nil {
				billingSessions.Delete(session.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error dispatching billing ticks", zap.Error(err))
	}
}

// Tick charges the next due minute of a session; one that fell behind catches
// up a minute per billing cycle. Insufficient funds end the session; transient
// failures are retried and, once retries exhaust, the session is ended so an
// unbillable conversation never keeps running.
func (s *Service) Tick(ctx context.Context, sessionID int) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var charged bool
		charged, err = s.chargeDueMinutes(ctx, sessionID)
		if err == nil {
			if charged {
				zap.L().Debug("session billed", zap.Int("sessionID", sessionID))
			}
			return nil
		}

		if errors.Is(err, ledgerservice.ErrInsufficientFunds) {
			zap.L().Info("payer out of coins, ending session", zap.Int("sessionID", sessionID))
			if _, endErr := s.sessions.EndBySystem(ctx, sessionID, domain.ReasonInsufficientFunds); endErr != nil && !errors.Is(endErr, sessionservice.ErrAlreadyProcessed) {
				return fmt.Errorf("failed to end session %d after funds ran out: %w", sessionID, endErr)
			}
			return nil
		}

		if attempt < maxRetries {
			time.Sleep(retryInterval * time.Duration(attempt))
			continue
		}
	}

	zap.L().Error("billing retries exhausted, ending session",
		zap.Int("sessionID", sessionID), zap.Error(err))
	if _, endErr := s.sessions.EndBySystem(ctx, sessionID, domain.ReasonInternalError); endErr != nil {
		return fmt.Errorf("failed to end unbillable session %d: %w", sessionID, endErr)
	}
	return fmt.Errorf("failed to bill session %d after %d retries: %w", sessionID, maxRetries, err)
}

// chargeDueMinutes performs at most one minute charge under the session row
// lock. The due minute is recomputed after locking, so a retried or
// concurrent tick observes the already-bumped counter and charges nothing.
func (s *Service) chargeDueMinutes(ctx context.Context, sessionID int) (bool, error) {
	charged := false
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		session, err := s.sessionRepo.GetForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil || session.State != domain.SessionActive || session.StartedAt == nil {
			return nil
		}

		minuteIndex := session.MinutesBilled + 1
		boundary := session.StartedAt.Add(time.Duration(minuteIndex) * time.Minute)
		if boundary.After(time.Now()) {
			return nil
		}

		payer, err := s.ledger.GetAccount(ctx, session.PayerID)
		if err != nil {
			return err
		}
		earner, err := s.ledger.GetAccount(ctx, session.EarnerID)
		if err != nil {
			return err
		}

		err = s.ledger.Transfer(ctx, payer.ID, earner.ID,
			session.CoinsPerMinute, session.PayoutPerMinute, session.ID, minuteIndex)
		if err != nil {
			return err
		}

		if err := s.sessionRepo.AddMinuteCharge(ctx, session.ID, session.CoinsPerMinute, session.PayoutPerMinute); err != nil {
			return err
		}
		charged = true
		return nil
	})
	return charged, err
}
