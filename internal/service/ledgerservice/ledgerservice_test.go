package ledgerservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockAccountRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	accountRepo := NewMockAccountRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
	service := New(accountRepo, txManager)
	defer ctrl.Finish()
	return service, accountRepo, txManager
}

func TestGetAccount(t *testing.T) {
	service, accountRepo, _ := NewMock(t)

	tests := []struct {
		name            string
		userID          int
		prepareMock     func()
		expectedAccount *domain.Account
		expectedError   error
	}{
		{
			name:   "Retrieve account successfully",
			userID: 1,
			prepareMock: func() {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(&domain.Account{
					ID:          1,
					UserID:      1,
					CoinBalance: 100,
				}, nil)
			},
			expectedAccount: &domain.Account{ID: 1, UserID: 1, CoinBalance: 100},
			expectedError:   nil,
		},
		{
			name:   "Missing account maps to ErrAccountNotFound",
			userID: 99,
			prepareMock: func() {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 99).Return(nil, nil)
			},
			expectedAccount: nil,
			expectedError:   ErrAccountNotFound,
		},
		{
			name:   "Database error",
			userID: 1,
			prepareMock: func() {
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(nil, errors.New("db error"))
			},
			expectedAccount: nil,
			expectedError:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			acc, err := service.GetAccount(context.Background(), tt.userID)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAccount, acc)
			}
		})
	}
}

func TestTransfer(t *testing.T) {
	tests := []struct {
		name          string
		coins         int64
		payout        float64
		prepareMock   func(accountRepo *MockAccountRepo)
		expectedError error
	}{
		{
			name:   "Successful minute transfer",
			coins:  10,
			payout: 3.0,
			prepareMock: func(accountRepo *MockAccountRepo) {
				payer := &domain.Account{ID: 1, UserID: 1, CoinBalance: 50}
				earner := &domain.Account{ID: 2, UserID: 2, EarningBalance: 9.0}
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(payer, nil)
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 2).Return(earner, nil)
				accountRepo.EXPECT().UpdateBalances(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, acc *domain.Account) error {
						assert.Equal(t, int64(40), acc.CoinBalance)
						assert.Equal(t, int64(10), acc.TotalSpent)
						return nil
					})
				accountRepo.EXPECT().UpdateBalances(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, acc *domain.Account) error {
						assert.InDelta(t, 12.0, acc.EarningBalance, 0.0001)
						return nil
					})
				accountRepo.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, entry *domain.LedgerEntry) error {
						assert.Equal(t, domain.EntrySessionDebit, entry.Kind)
						assert.Equal(t, int64(10), entry.Coins)
						assert.NotEmpty(t, entry.TransferID)
						return nil
					})
				accountRepo.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, entry *domain.LedgerEntry) error {
						assert.Equal(t, domain.EntrySessionCredit, entry.Kind)
						assert.InDelta(t, 3.0, entry.Amount, 0.0001)
						return nil
					})
			},
			expectedError: nil,
		},
		{
			name:   "Insufficient coins",
			coins:  10,
			payout: 3.0,
			prepareMock: func(accountRepo *MockAccountRepo) {
				payer := &domain.Account{ID: 1, UserID: 1, CoinBalance: 5}
				earner := &domain.Account{ID: 2, UserID: 2}
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(payer, nil)
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 2).Return(earner, nil)
			},
			expectedError: ErrInsufficientFunds,
		},
		{
			name:   "Frozen account refuses transfer",
			coins:  10,
			payout: 3.0,
			prepareMock: func(accountRepo *MockAccountRepo) {
				payer := &domain.Account{ID: 1, UserID: 1, CoinBalance: 100, Frozen: true}
				earner := &domain.Account{ID: 2, UserID: 2}
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(payer, nil)
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 2).Return(earner, nil)
			},
			expectedError: ErrAccountFrozen,
		},
		{
			name:          "Non-positive coins rejected",
			coins:         0,
			payout:        3.0,
			prepareMock:   func(accountRepo *MockAccountRepo) {},
			expectedError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _ := NewMock(t)
			tt.prepareMock(accountRepo)

			err := service.Transfer(context.Background(), 1, 2, tt.coins, tt.payout, 7, 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransferLockOrder(t *testing.T) {
	service, accountRepo, _ := NewMock(t)

	// Payer has the higher id; the lower id must still be locked first.
	payer := &domain.Account{ID: 5, UserID: 1, CoinBalance: 50}
	earner := &domain.Account{ID: 2, UserID: 2}

	gomock.InOrder(
		accountRepo.EXPECT().GetForUpdate(gomock.Any(), 2).Return(earner, nil),
		accountRepo.EXPECT().GetForUpdate(gomock.Any(), 5).Return(payer, nil),
	)
	accountRepo.EXPECT().UpdateBalances(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	accountRepo.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	err := service.Transfer(context.Background(), 5, 2, 10, 3.0, 7, 1)
	assert.NoError(t, err)
}

func TestCredit(t *testing.T) {
	tests := []struct {
		name          string
		coins         int64
		amount        float64
		kind          domain.EntryKind
		prepareMock   func(accountRepo *MockAccountRepo)
		expectedError error
	}{
		{
			name:  "Purchase credits coins and lifetime total",
			coins: 100,
			kind:  domain.EntryPurchase,
			prepareMock: func(accountRepo *MockAccountRepo) {
				acc := &domain.Account{ID: 1, UserID: 1, CoinBalance: 10}
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(acc, nil)
				accountRepo.EXPECT().UpdateBalances(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, got *domain.Account) error {
						assert.Equal(t, int64(110), got.CoinBalance)
						assert.Equal(t, int64(100), got.TotalPurchased)
						return nil
					})
				accountRepo.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "Frozen account refuses credit",
			coins: 100,
			kind:  domain.EntryPurchase,
			prepareMock: func(accountRepo *MockAccountRepo) {
				acc := &domain.Account{ID: 1, UserID: 1, Frozen: true}
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(acc, nil)
			},
			expectedError: ErrAccountFrozen,
		},
		{
			name:          "Nothing to credit",
			coins:         0,
			amount:        0,
			kind:          domain.EntryPurchase,
			prepareMock:   func(accountRepo *MockAccountRepo) {},
			expectedError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _ := NewMock(t)
			tt.prepareMock(accountRepo)

			err := service.Credit(context.Background(), 1, tt.coins, tt.amount, tt.kind)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDebit(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		prepareMock   func(accountRepo *MockAccountRepo)
		expectedError error
	}{
		{
			name:   "Withdrawal debits earning balance",
			amount: 60.0,
			prepareMock: func(accountRepo *MockAccountRepo) {
				acc := &domain.Account{ID: 1, UserID: 1, EarningBalance: 100.0}
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(acc, nil)
				accountRepo.EXPECT().UpdateBalances(gomock.Any(), gomock.Any()).DoAndReturn(
					func(ctx context.Context, got *domain.Account) error {
						assert.InDelta(t, 40.0, got.EarningBalance, 0.0001)
						assert.InDelta(t, 60.0, got.TotalWithdrawn, 0.0001)
						return nil
					})
				accountRepo.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "Insufficient earning balance",
			amount: 200.0,
			prepareMock: func(accountRepo *MockAccountRepo) {
				acc := &domain.Account{ID: 1, UserID: 1, EarningBalance: 100.0}
				accountRepo.EXPECT().GetForUpdate(gomock.Any(), 1).Return(acc, nil)
			},
			expectedError: ErrInsufficientFunds,
		},
		{
			name:          "Non-positive amount rejected",
			amount:        0,
			prepareMock:   func(accountRepo *MockAccountRepo) {},
			expectedError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _ := NewMock(t)
			tt.prepareMock(accountRepo)

			err := service.Debit(context.Background(), 1, tt.amount, domain.EntryWithdrawal)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAudit(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(accountRepo *MockAccountRepo)
		expectedError error
	}{
		{
			name: "Replay matches cached balances",
			prepareMock: func(accountRepo *MockAccountRepo) {
				acc := &domain.Account{ID: 1, UserID: 1, CoinBalance: 40, EarningBalance: 12.0}
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(acc, nil)
				accountRepo.EXPECT().ReplayTotals(gomock.Any(), 1).Return(int64(40), 12.0, nil)
			},
			expectedError: nil,
		},
		{
			name: "Mismatch freezes the account",
			prepareMock: func(accountRepo *MockAccountRepo) {
				acc := &domain.Account{ID: 1, UserID: 1, CoinBalance: 40, EarningBalance: 12.0}
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(acc, nil)
				accountRepo.EXPECT().ReplayTotals(gomock.Any(), 1).Return(int64(30), 12.0, nil)
				accountRepo.EXPECT().SetFrozen(gomock.Any(), 1, true).Return(nil)
			},
			expectedError: ErrAccountFrozen,
		},
		{
			name: "Small float drift tolerated",
			prepareMock: func(accountRepo *MockAccountRepo) {
				acc := &domain.Account{ID: 1, UserID: 1, CoinBalance: 40, EarningBalance: 12.001}
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(acc, nil)
				accountRepo.EXPECT().ReplayTotals(gomock.Any(), 1).Return(int64(40), 12.0, nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _ := NewMock(t)
			tt.prepareMock(accountRepo)

			err := service.Audit(context.Background(), 1)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuditAll(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(accountRepo *MockAccountRepo)
		expectedError error
	}{
		{
			name: "All accounts clean",
			prepareMock: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().UserIDs(gomock.Any()).Return([]int{1, 2}, nil)
				a1 := &domain.Account{ID: 1, UserID: 1, CoinBalance: 40, EarningBalance: 12.0}
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(a1, nil)
				accountRepo.EXPECT().ReplayTotals(gomock.Any(), 1).Return(int64(40), 12.0, nil)
				a2 := &domain.Account{ID: 2, UserID: 2, CoinBalance: 0, EarningBalance: 7.5}
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 2).Return(a2, nil)
				accountRepo.EXPECT().ReplayTotals(gomock.Any(), 2).Return(int64(0), 7.5, nil)
			},
			expectedError: nil,
		},
		{
			name: "Mismatch freezes one account and the sweep continues",
			prepareMock: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().UserIDs(gomock.Any()).Return([]int{1, 2}, nil)
				a1 := &domain.Account{ID: 1, UserID: 1, CoinBalance: 40, EarningBalance: 12.0}
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(a1, nil)
				accountRepo.EXPECT().ReplayTotals(gomock.Any(), 1).Return(int64(30), 12.0, nil)
				accountRepo.EXPECT().SetFrozen(gomock.Any(), 1, true).Return(nil)
				a2 := &domain.Account{ID: 2, UserID: 2, CoinBalance: 0, EarningBalance: 7.5}
				accountRepo.EXPECT().GetByUserID(gomock.Any(), 2).Return(a2, nil)
				accountRepo.EXPECT().ReplayTotals(gomock.Any(), 2).Return(int64(0), 7.5, nil)
			},
			expectedError: ErrAccountFrozen,
		},
		{
			name: "Listing accounts fails",
			prepareMock: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().UserIDs(gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, accountRepo, _ := NewMock(t)
			tt.prepareMock(accountRepo)

			err := service.AuditAll(context.Background())
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
