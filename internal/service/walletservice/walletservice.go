package walletservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/bala-dotcom/texme/internal/domain"
)

type Ledger interface {
	GetAccount(ctx context.Context, userID int) (*domain.Account, error)
	Credit(ctx context.Context, accountID int, coins int64, amount float64, kind domain.EntryKind) error
	Debit(ctx context.Context, accountID int, amount float64, kind domain.EntryKind) error
	Entries(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
}

type Rates interface {
	MinWithdrawal(ctx context.Context) (float64, error)
}

var ErrBelowMinWithdrawal = errors.New("amount below minimum withdrawal")

type Service struct {
	ledger Ledger
	rates  Rates
}

func New(ledger Ledger, rates Rates) *Service {
	return &Service{
		ledger: ledger,
		rates:  rates,
	}
}

func (s *Service) Balance(ctx context.Context, userID int) (*domain.Account, error) {
	return s.ledger.GetAccount(ctx, userID)
}

// Purchase credits coins bought through the payment gateway. The gateway
// callback is trusted by the time this is called.
func (s *Service) Purchase(ctx context.Context, userID int, coins int64) error {
	acc, err := s.ledger.GetAccount(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.ledger.Credit(ctx, acc.ID, coins, 0, domain.EntryPurchase); err != nil {
		zap.L().Error("failed to credit purchase", zap.Error(err))
		return err
	}
	zap.L().Info("coins purchased", zap.Int("userID", userID), zap.Int64("coins", coins))
	return nil
}

// Withdraw moves money out of an earning balance.
func (s *Service) Withdraw(ctx context.Context, userID int, amount float64) error {
	minAmount, err := s.rates.MinWithdrawal(ctx)
	if err != nil {
		return err
	}
	if amount < minAmount {
		return ErrBelowMinWithdrawal
	}

	acc, err := s.ledger.GetAccount(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.ledger.Debit(ctx, acc.ID, amount, domain.EntryWithdrawal); err != nil {
		zap.L().Error("failed to debit withdrawal", zap.Error(err))
		return err
	}
	zap.L().Info("withdrawal recorded", zap.Int("userID", userID), zap.Float64("amount", amount))
	return nil
}

func (s *Service) History(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	entries, err := s.ledger.Entries(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch ledger history", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
