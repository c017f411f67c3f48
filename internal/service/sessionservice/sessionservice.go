package sessionservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/pg"
	"github.com/bala-dotcom/texme/internal/service/ledgerservice"
	"github.com/bala-dotcom/texme/internal/service/presenceservice"
)

type SessionRepo interface {
	Create(ctx context.Context, payerID, earnerID int) (*domain.Session, error)
	GetByID(ctx context.Context, id int) (*domain.Session, error)
	GetForUpdate(ctx context.Context, id int) (*domain.Session, error)
	Activate(ctx context.Context, id, earnerID int, rate domain.Rate, startedAt time.Time) (*domain.Session, error)
	MarkEnded(ctx context.Context, id int, fromState domain.SessionState, reason domain.EndReason, endedAt time.Time) (*domain.Session, error)
	FindStaleRequests(ctx context.Context, ttl time.Duration) ([]domain.Session, error)
	FindPendingByEarner(ctx context.Context, earnerID int) ([]domain.Session, error)
	FindActiveByUser(ctx context.Context, userID int) (*domain.Session, error)
	FindEndedByUser(ctx context.Context, userID int) ([]domain.Session, error)
}

type Presence interface {
	Get(ctx context.Context, userID int) (*domain.Presence, error)
	IsAvailableAsEarner(ctx context.Context, userID int) (bool, error)
	MarkRequesting(ctx context.Context, userID, sessionID int) error
	MarkPaired(ctx context.Context, userID, sessionID int, from domain.PresenceState) error
	Release(ctx context.Context, userID int) error
}

type Ledger interface {
	GetAccount(ctx context.Context, userID int) (*domain.Account, error)
}

type Rates interface {
	CurrentRate(ctx context.Context) (domain.Rate, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

// Notifier is fire-and-forget; nothing here depends on delivery.
type Notifier interface {
	SessionRequested(session *domain.Session)
	SessionEnded(session *domain.Session, summary *domain.SessionSummary)
}

// Hints is the best-effort typing/recording side channel surfaced in Status.
type Hints interface {
	Mark(sessionID, userID int, kind string)
	Check(sessionID, userID int, kind string) bool
}

var (
	ErrNotFound          = errors.New("session not found")
	ErrAlreadyProcessed  = errors.New("session already processed")
	ErrAlreadyPaired     = errors.New("user already has an open session")
	ErrEarnerUnavailable = errors.New("earner is not available")
	ErrNotParticipant    = errors.New("user is not part of this session")
	ErrWrongActor        = errors.New("operation not permitted for this user")
)

const (
	HintTyping    = "typing"
	HintRecording = "recording"
)

type Service struct {
	sessionRepo SessionRepo
	presence    Presence
	ledger      Ledger
	rates       Rates
	userRepo    UserRepo
	notifier    Notifier
	hints       Hints
	txManager   pg.TXManager

	requestTTL time.Duration
}

func New(sessionRepo SessionRepo, presence Presence, ledger Ledger, rates Rates, userRepo UserRepo, notifier Notifier, hints Hints, txManager pg.TXManager, requestTTL time.Duration) *Service {
	return &Service{
		sessionRepo: sessionRepo,
		presence:    presence,
		ledger:      ledger,
		rates:       rates,
		userRepo:    userRepo,
		notifier:    notifier,
		hints:       hints,
		txManager:   txManager,
		requestTTL:  requestTTL,
	}
}

// Request opens a requested session from payer to earner. The payer's
// presence slot is claimed; the earner's is not, so one earner can hold
// several pending requests and the first Accept wins.
func (s *Service) Request(ctx context.Context, payerID, earnerID int) (*domain.Session, error) {
	payer, err := s.userRepo.FindByID(ctx, payerID)
	if err != nil {
		return nil, err
	}
	if payer == nil || payer.Role != domain.RolePayer {
		return nil, ErrWrongActor
	}

	earner, err := s.userRepo.FindByID(ctx, earnerID)
	if err != nil {
		return nil, err
	}
	if earner == nil || earner.Role != domain.RoleEarner {
		return nil, ErrEarnerUnavailable
	}

	var session *domain.Session
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		free, err := s.presence.IsAvailableAsEarner(ctx, earnerID)
		if err != nil {
			return err
		}
		if !free {
			return ErrEarnerUnavailable
		}

		rate, err := s.rates.CurrentRate(ctx)
		if err != nil {
			return err
		}
		acc, err := s.ledger.GetAccount(ctx, payerID)
		if err != nil {
			return err
		}
		if acc.CoinBalance < rate.CoinsPerMinute {
			return ledgerservice.ErrInsufficientFunds
		}

		session, err = s.sessionRepo.Create(ctx, payerID, earnerID)
		if err != nil {
			return err
		}

		if err := s.presence.MarkRequesting(ctx, payerID, session.ID); err != nil {
			if errors.Is(err, presenceservice.ErrSlotTaken) {
				return ErrAlreadyPaired
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("session requested",
		zap.Int("sessionID", session.ID), zap.Int("payerID", payerID), zap.Int("earnerID", earnerID))
	s.notifier.SessionRequested(session)
	return session, nil
}

// Accept transitions requested -> active. Exactly one of any number of
// racing Accept, Decline, Cancel or sweep calls wins the session row.
func (s *Service) Accept(ctx context.Context, sessionID, earnerID int) (*domain.Session, error) {
	var (
		session    *domain.Session
		outOfCoins bool
	)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		existing, err := s.sessionRepo.GetForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNotFound
		}
		if existing.EarnerID != earnerID {
			return ErrWrongActor
		}
		if existing.State != domain.SessionRequested {
			return ErrAlreadyProcessed
		}

		rate, err := s.rates.CurrentRate(ctx)
		if err != nil {
			return err
		}

		// The payer's balance may have dropped since the request.
		acc, err := s.ledger.GetAccount(ctx, existing.PayerID)
		if err != nil {
			return err
		}
		if acc.CoinBalance < rate.CoinsPerMinute {
			outOfCoins = true
			_, err := s.sessionRepo.MarkEnded(ctx, sessionID, domain.SessionRequested, domain.ReasonInsufficientFunds, time.Now())
			if err != nil {
				return err
			}
			return s.presence.Release(ctx, existing.PayerID)
		}

		session, err = s.sessionRepo.Activate(ctx, sessionID, earnerID, rate, time.Now())
		if err != nil {
			return err
		}
		if session == nil {
			return ErrAlreadyProcessed
		}

		if err := s.presence.MarkPaired(ctx, earnerID, sessionID, domain.PresenceFree); err != nil {
			if errors.Is(err, presenceservice.ErrSlotTaken) {
				return ErrEarnerUnavailable
			}
			return err
		}
		return s.presence.MarkPaired(ctx, existing.PayerID, sessionID, domain.PresenceRequesting)
	})
	if err != nil {
		return nil, err
	}
	if outOfCoins {
		return nil, ledgerservice.ErrInsufficientFunds
	}

	zap.L().Info("session accepted", zap.Int("sessionID", session.ID), zap.Int("earnerID", earnerID))
	return session, nil
}

// Decline ends a requested session on the earner's behalf.
func (s *Service) Decline(ctx context.Context, sessionID, earnerID int) error {
	return s.endRequested(ctx, sessionID, earnerID, false, domain.ReasonDeclined)
}

// Cancel ends a requested session on the payer's behalf.
func (s *Service) Cancel(ctx context.Context, sessionID, payerID int) error {
	return s.endRequested(ctx, sessionID, payerID, true, domain.ReasonCancelled)
}

func (s *Service) endRequested(ctx context.Context, sessionID, actorID int, actorIsPayer bool, reason domain.EndReason) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		session, err := s.sessionRepo.GetForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrNotFound
		}
		if actorIsPayer && session.PayerID != actorID {
			return ErrWrongActor
		}
		if !actorIsPayer && session.EarnerID != actorID {
			return ErrWrongActor
		}
		if session.State != domain.SessionRequested {
			return ErrAlreadyProcessed
		}

		ended, err := s.sessionRepo.MarkEnded(ctx, sessionID, domain.SessionRequested, reason, time.Now())
		if err != nil {
			return err
		}
		if ended == nil {
			return ErrAlreadyProcessed
		}
		return s.presence.Release(ctx, session.PayerID)
	})
}

// End terminates an active session on behalf of either participant.
func (s *Service) End(ctx context.Context, sessionID, actorID int) (*domain.SessionSummary, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	if session.PayerID != actorID && session.EarnerID != actorID {
		return nil, ErrNotParticipant
	}
	return s.end(ctx, sessionID, domain.ReasonCompleted)
}

// EndBySystem is the billing clock's termination path.
func (s *Service) EndBySystem(ctx context.Context, sessionID int, reason domain.EndReason) (*domain.SessionSummary, error) {
	return s.end(ctx, sessionID, reason)
}

func (s *Service) end(ctx context.Context, sessionID int, reason domain.EndReason) (*domain.SessionSummary, error) {
	var summary *domain.SessionSummary
	var ended *domain.Session
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		session, err := s.sessionRepo.GetForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrNotFound
		}
		if session.State != domain.SessionActive {
			return ErrAlreadyProcessed
		}

		ended, err = s.sessionRepo.MarkEnded(ctx, sessionID, domain.SessionActive, reason, time.Now())
		if err != nil {
			return err
		}
		if ended == nil {
			return ErrAlreadyProcessed
		}

		if err := s.presence.Release(ctx, ended.PayerID); err != nil {
			return err
		}
		if err := s.presence.Release(ctx, ended.EarnerID); err != nil {
			return err
		}

		summary = &domain.SessionSummary{
			SessionID:    ended.ID,
			TotalMinutes: ended.MinutesBilled,
			CoinsSpent:   ended.CoinsSpent,
			AmountEarned: ended.AmountEarned,
			EndReason:    reason,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("session ended",
		zap.Int("sessionID", sessionID), zap.String("reason", string(reason)),
		zap.Int("minutes", summary.TotalMinutes))
	s.notifier.SessionEnded(ended, summary)
	return summary, nil
}

// SweepStaleRequests expires requested sessions nobody answered within the
// TTL. Safe to race against a late Accept: the row lock decides the winner.
func (s *Service) SweepStaleRequests(ctx context.Context) (int, error) {
	stale, err := s.sessionRepo.FindStaleRequests(ctx, s.requestTTL)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, session := range stale {
		err := s.txManager.Begin(ctx, func(ctx context.Context) error {
			locked, err := s.sessionRepo.GetForUpdate(ctx, session.ID)
			if err != nil {
				return err
			}
			if locked == nil || locked.State != domain.SessionRequested {
				return nil
			}
			ended, err := s.sessionRepo.MarkEnded(ctx, session.ID, domain.SessionRequested, domain.ReasonExpired, time.Now())
			if err != nil {
				return err
			}
			if ended == nil {
				return nil
			}
			swept++
			return s.presence.Release(ctx, locked.PayerID)
		})
		if err != nil {
			zap.L().Error("failed to expire stale request", zap.Int("sessionID", session.ID), zap.Error(err))
			return swept, err
		}
	}

	if swept > 0 {
		zap.L().Info("expired stale session requests", zap.Int("count", swept))
	}
	return swept, nil
}

type Status struct {
	SessionID        int
	State            domain.SessionState
	EndReason        domain.EndReason
	RemainingSeconds int64
	MinutesBilled    int
	PartnerTyping    bool
	PartnerRecording bool
}

// Status reports the session state plus an estimate of how long the payer's
// remaining coins can sustain it.
func (s *Service) Status(ctx context.Context, sessionID, requesterID int) (*Status, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	if session.PayerID != requesterID && session.EarnerID != requesterID {
		return nil, ErrNotParticipant
	}

	rate := domain.Rate{CoinsPerMinute: session.CoinsPerMinute, PayoutPerMinute: session.PayoutPerMinute}
	if session.State == domain.SessionRequested {
		rate, err = s.rates.CurrentRate(ctx)
		if err != nil {
			return nil, err
		}
	}

	var remaining int64
	if session.State != domain.SessionEnded && rate.CoinsPerMinute > 0 {
		acc, err := s.ledger.GetAccount(ctx, session.PayerID)
		if err != nil {
			return nil, err
		}
		remaining = acc.CoinBalance / rate.CoinsPerMinute * 60
	}

	partnerID := session.PayerID
	if requesterID == session.PayerID {
		partnerID = session.EarnerID
	}

	return &Status{
		SessionID:        session.ID,
		State:            session.State,
		EndReason:        session.EndReason,
		RemainingSeconds: remaining,
		MinutesBilled:    session.MinutesBilled,
		PartnerTyping:    s.hints.Check(session.ID, partnerID, HintTyping),
		PartnerRecording: s.hints.Check(session.ID, partnerID, HintRecording),
	}, nil
}

// SetHint records a short-lived typing/recording flag for a participant.
func (s *Service) SetHint(ctx context.Context, sessionID, userID int, kind string) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNotFound
	}
	if session.PayerID != userID && session.EarnerID != userID {
		return ErrNotParticipant
	}
	s.hints.Mark(sessionID, userID, kind)
	return nil
}

// PendingRequests lists an earner's open requests, sweeping stale ones first
// so nobody accepts a request the payer gave up on.
func (s *Service) PendingRequests(ctx context.Context, earnerID int) ([]domain.Session, error) {
	if _, err := s.SweepStaleRequests(ctx); err != nil {
		zap.L().Warn("stale sweep before listing failed", zap.Error(err))
	}
	return s.sessionRepo.FindPendingByEarner(ctx, earnerID)
}

func (s *Service) ActiveSession(ctx context.Context, userID int) (*domain.Session, error) {
	return s.sessionRepo.FindActiveByUser(ctx, userID)
}

func (s *Service) History(ctx context.Context, userID int) ([]domain.Session, error) {
	return s.sessionRepo.FindEndedByUser(ctx, userID)
}
