package presenceservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/bala-dotcom/texme/internal/domain"
)

type PresenceRepo interface {
	Get(ctx context.Context, userID int) (*domain.Presence, error)
	Create(ctx context.Context, userID int) error
	Transition(ctx context.Context, userID int, from, to domain.PresenceState, sessionID *int) (bool, error)
	Release(ctx context.Context, userID int) error
}

var ErrSlotTaken = errors.New("user is not free")

// Service is the single source of truth for pairing availability. Only the
// session service mutates it; everything else may only query.
type Service struct {
	presenceRepo PresenceRepo
}

func New(presenceRepo PresenceRepo) *Service {
	return &Service{
		presenceRepo: presenceRepo,
	}
}

func (s *Service) Track(ctx context.Context, userID int) error {
	return s.presenceRepo.Create(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID int) (*domain.Presence, error) {
	return s.presenceRepo.Get(ctx, userID)
}

func (s *Service) IsAvailableAsEarner(ctx context.Context, userID int) (bool, error) {
	p, err := s.presenceRepo.Get(ctx, userID)
	if err != nil {
		zap.L().Error("failed to check earner availability", zap.Error(err))
		return false, err
	}
	return p != nil && p.State == domain.PresenceFree, nil
}

// MarkRequesting claims the payer's single slot for an outstanding request.
func (s *Service) MarkRequesting(ctx context.Context, userID, sessionID int) error {
	ok, err := s.presenceRepo.Transition(ctx, userID, domain.PresenceFree, domain.PresenceRequesting, &sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSlotTaken
	}
	return nil
}

// MarkPaired moves a user into an active session. The guarded transition is
// what decides races between two Accepts for the same earner.
func (s *Service) MarkPaired(ctx context.Context, userID, sessionID int, from domain.PresenceState) error {
	ok, err := s.presenceRepo.Transition(ctx, userID, from, domain.PresencePaired, &sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSlotTaken
	}
	return nil
}

func (s *Service) Release(ctx context.Context, userID int) error {
	return s.presenceRepo.Release(ctx, userID)
}
