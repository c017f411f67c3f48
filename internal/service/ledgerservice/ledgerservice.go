package ledgerservice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/pg"
)

type AccountRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Account, error)
	GetForUpdate(ctx context.Context, accountID int) (*domain.Account, error)
	Create(ctx context.Context, userID int) (*domain.Account, error)
	UpdateBalances(ctx context.Context, acc *domain.Account) error
	SetFrozen(ctx context.Context, accountID int, frozen bool) error
	AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error
	EntriesByAccountID(ctx context.Context, accountID int) ([]domain.LedgerEntry, error)
	ReplayTotals(ctx context.Context, accountID int) (int64, float64, error)
	UserIDs(ctx context.Context) ([]int, error)
}

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountFrozen     = errors.New("account frozen pending reconciliation")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

type Service struct {
	accountRepo AccountRepo
	txManager   pg.TXManager
}

func New(accountRepo AccountRepo, txManager pg.TXManager) *Service {
	return &Service{
		accountRepo: accountRepo,
		txManager:   txManager,
	}
}

func (s *Service) GetAccount(ctx context.Context, userID int) (*domain.Account, error) {
	acc, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	if acc == nil {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

func (s *Service) CreateAccount(ctx context.Context, userID int) (*domain.Account, error) {
	acc, err := s.accountRepo.Create(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return acc, nil
}

func (s *Service) Entries(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	acc, err := s.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.EntriesByAccountID(ctx, acc.ID)
}

// Transfer atomically debits coins from the payer account and credits payout
// to the earner account for one session minute. Both rows are locked in
// ascending id order; the unique (session, minute, kind) ledger index backs
// up the in-transaction checks against double charges.
func (s *Service) Transfer(ctx context.Context, payerAccountID, earnerAccountID int, coins int64, payout float64, sessionID, minuteIndex int) error {
	if coins <= 0 || payout < 0 {
		return ErrInvalidAmount
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		payer, earner, err := s.lockPair(ctx, payerAccountID, earnerAccountID)
		if err != nil {
			return err
		}
		if payer.Frozen || earner.Frozen {
			return ErrAccountFrozen
		}
		if payer.CoinBalance < coins {
			return ErrInsufficientFunds
		}

		transferID := uuid.NewString()
		now := time.Now()

		payer.CoinBalance -= coins
		payer.TotalSpent += coins
		if err := s.accountRepo.UpdateBalances(ctx, payer); err != nil {
			return err
		}
		earner.EarningBalance += payout
		earner.TotalEarned += payout
		if err := s.accountRepo.UpdateBalances(ctx, earner); err != nil {
			return err
		}

		debit := &domain.LedgerEntry{
			AccountID:   payer.ID,
			Kind:        domain.EntrySessionDebit,
			Coins:       coins,
			SessionID:   &sessionID,
			MinuteIndex: &minuteIndex,
			TransferID:  transferID,
			CreatedAt:   now,
		}
		if err := s.accountRepo.AppendEntry(ctx, debit); err != nil {
			return err
		}
		credit := &domain.LedgerEntry{
			AccountID:   earner.ID,
			Kind:        domain.EntrySessionCredit,
			Amount:      payout,
			SessionID:   &sessionID,
			MinuteIndex: &minuteIndex,
			TransferID:  transferID,
			CreatedAt:   now,
		}
		return s.accountRepo.AppendEntry(ctx, credit)
	})
}

// Credit adds coins (purchases) or money (adjustments) to an account.
func (s *Service) Credit(ctx context.Context, accountID int, coins int64, amount float64, kind domain.EntryKind) error {
	if coins <= 0 && amount <= 0 {
		return ErrInvalidAmount
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.lockAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if acc.Frozen {
			return ErrAccountFrozen
		}

		acc.CoinBalance += coins
		if kind == domain.EntryPurchase {
			acc.TotalPurchased += coins
		}
		acc.EarningBalance += amount
		if err := s.accountRepo.UpdateBalances(ctx, acc); err != nil {
			return err
		}

		entry := &domain.LedgerEntry{
			AccountID:  acc.ID,
			Kind:       kind,
			Coins:      coins,
			Amount:     amount,
			TransferID: uuid.NewString(),
			CreatedAt:  time.Now(),
		}
		return s.accountRepo.AppendEntry(ctx, entry)
	})
}

// Debit removes money from an earning balance (withdrawals).
func (s *Service) Debit(ctx context.Context, accountID int, amount float64, kind domain.EntryKind) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		acc, err := s.lockAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if acc.Frozen {
			return ErrAccountFrozen
		}
		if acc.EarningBalance < amount {
			return ErrInsufficientFunds
		}

		acc.EarningBalance -= amount
		if kind == domain.EntryWithdrawal {
			acc.TotalWithdrawn += amount
		}
		if err := s.accountRepo.UpdateBalances(ctx, acc); err != nil {
			return err
		}

		entry := &domain.LedgerEntry{
			AccountID:  acc.ID,
			Kind:       kind,
			Amount:     amount,
			TransferID: uuid.NewString(),
			CreatedAt:  time.Now(),
		}
		return s.accountRepo.AppendEntry(ctx, entry)
	})
}

// Audit replays the ledger for an account and compares it to the cached
// balances. A mismatch freezes the account: every later mutation fails until
// someone reconciles it by hand. The cache is never corrected automatically.
func (s *Service) Audit(ctx context.Context, userID int) error {
	acc, err := s.GetAccount(ctx, userID)
	if err != nil {
		return err
	}

	coins, amount, err := s.accountRepo.ReplayTotals(ctx, acc.ID)
	if err != nil {
		return err
	}

	if coins != acc.CoinBalance || math.Abs(amount-acc.EarningBalance) > 0.005 {
		zap.L().Error("ledger replay does not match cached balance",
			zap.Int("accountID", acc.ID),
			zap.Int64("replayedCoins", coins), zap.Int64("cachedCoins", acc.CoinBalance),
			zap.Float64("replayedAmount", amount), zap.Float64("cachedAmount", acc.EarningBalance),
		)
		if err := s.accountRepo.SetFrozen(ctx, acc.ID, true); err != nil {
			return err
		}
		return fmt.Errorf("account %d: %w", acc.ID, ErrAccountFrozen)
	}
	return nil
}

// AuditAll audits every account. A failed or mismatching account does not
// stop the sweep; the first error comes back once the rest are done.
func (s *Service) AuditAll(ctx context.Context) error {
	userIDs, err := s.accountRepo.UserIDs(ctx)
	if err != nil {
		return err
	}

	var firstErr error
	for _, userID := range userIDs {
		if err := s.Audit(ctx, userID); err != nil {
			zap.L().Error("account audit failed", zap.Int("userID", userID), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *Service) lockAccount(ctx context.Context, accountID int) (*domain.Account, error) {
	acc, err := s.accountRepo.GetForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

// lockPair locks two accounts in ascending id order so concurrent transfers
// touching the same pair can never deadlock.
func (s *Service) lockPair(ctx context.Context, payerAccountID, earnerAccountID int) (payer, earner *domain.Account, err error) {
	first, second := payerAccountID, earnerAccountID
	if second < first {
		first, second = second, first
	}

	a, err := s.lockAccount(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.lockAccount(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if a.ID == payerAccountID {
		return a, b, nil
	}
	return b, a, nil
}
