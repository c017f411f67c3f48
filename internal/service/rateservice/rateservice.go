package rateservice

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/bala-dotcom/texme/internal/domain"
)

type RateRepo interface {
	GetValue(ctx context.Context, key string) (string, bool, error)
	SetValue(ctx context.Context, key, value string) error
}

const (
	keyCoinsPerMinute  = "coins_per_minute"
	keyPayoutPerMinute = "payout_per_minute"
	keyMinWithdrawal   = "minimum_withdrawal"

	defaultCoinsPerMinute  = int64(10)
	defaultPayoutPerMinute = 3.0
	defaultMinWithdrawal   = 50.0
)

type Service struct {
	rateRepo RateRepo
}

func New(rateRepo RateRepo) *Service {
	return &Service{
		rateRepo: rateRepo,
	}
}

// CurrentRate returns the live billing rate. Sessions pin this value at
// Accept time; nothing mid-session re-reads it.
func (s *Service) CurrentRate(ctx context.Context) (domain.Rate, error) {
	coins, err := s.intValue(ctx, keyCoinsPerMinute, defaultCoinsPerMinute)
	if err != nil {
		return domain.Rate{}, err
	}
	payout, err := s.floatValue(ctx, keyPayoutPerMinute, defaultPayoutPerMinute)
	if err != nil {
		return domain.Rate{}, err
	}
	return domain.Rate{CoinsPerMinute: coins, PayoutPerMinute: payout}, nil
}

func (s *Service) MinWithdrawal(ctx context.Context) (float64, error) {
	return s.floatValue(ctx, keyMinWithdrawal, defaultMinWithdrawal)
}

func (s *Service) intValue(ctx context.Context, key string, def int64) (int64, error) {
	raw, ok, err := s.rateRepo.GetValue(ctx, key)
	if err != nil {
		zap.L().Error("failed to read setting", zap.String("key", key), zap.Error(err))
		return 0, err
	}
	if !ok {
		return def, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		zap.L().Warn("malformed setting, using default", zap.String("key", key), zap.String("value", raw))
		return def, nil
	}
	return value, nil
}

func (s *Service) floatValue(ctx context.Context, key string, def float64) (float64, error) {
	raw, ok, err := s.rateRepo.GetValue(ctx, key)
	if err != nil {
		zap.L().Error("failed to read setting", zap.String("key", key), zap.Error(err))
		return 0, err
	}
	if !ok {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		zap.L().Warn("malformed setting, using default", zap.String("key", key), zap.String("value", raw))
		return def, nil
	}
	return value, nil
}
