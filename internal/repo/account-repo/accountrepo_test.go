package accountrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/pg"
)

var accountCols = []string{"id", "user_id", "coin_balance", "earning_balance",
	"total_purchased", "total_spent", "total_earned", "total_withdrawn", "frozen"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Account
	}{
		{
			name:   "Valid userID returns account",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows(accountCols).
					AddRow(1, 1, int64(100), 25.5, int64(200), int64(100), 25.5, 0.0, false)
				mock.ExpectQuery(`(?s)SELECT .+ FROM accounts\s+WHERE user_id = \$1`).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.Account{
				ID:             1,
				UserID:         1,
				CoinBalance:    100,
				EarningBalance: 25.5,
				TotalPurchased: 200,
				TotalSpent:     100,
				TotalEarned:    25.5,
			},
		},
		{
			name:   "Non-existing userID returns nil",
			userID: 99,
			mockSetup: func() {
				mock.ExpectQuery(`(?s)SELECT .+ FROM accounts\s+WHERE user_id = \$1`).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(`(?s)SELECT .+ FROM accounts\s+WHERE user_id = \$1`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByUserID(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetForUpdate(t *testing.T) {
	repo, mock, _ := NewMock(t)

	t.Run("Locks and returns the row", func(t *testing.T) {
		rows := pgxmock.NewRows(accountCols).
			AddRow(3, 1, int64(50), 0.0, int64(50), int64(0), 0.0, 0.0, false)
		mock.ExpectQuery(`(?s)SELECT .+ FROM accounts\s+WHERE id = \$1\s+FOR UPDATE`).
			WithArgs(3).
			WillReturnRows(rows)

		acc, err := repo.GetForUpdate(context.Background(), 3)
		assert.NoError(t, err)
		assert.Equal(t, 3, acc.ID)
		assert.Equal(t, int64(50), acc.CoinBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing row returns nil", func(t *testing.T) {
		mock.ExpectQuery(`(?s)SELECT .+ FROM accounts\s+WHERE id = \$1\s+FOR UPDATE`).
			WithArgs(99).
			WillReturnError(pgx.ErrNoRows)

		acc, err := repo.GetForUpdate(context.Background(), 99)
		assert.NoError(t, err)
		assert.Nil(t, acc)
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock, _ := NewMock(t)

	rows := pgxmock.NewRows(accountCols).
		AddRow(5, 2, int64(0), 0.0, int64(0), int64(0), 0.0, 0.0, false)
	mock.ExpectQuery(`(?s)INSERT INTO accounts \(user_id\)\s+VALUES \(\$1\)\s+RETURNING .+`).
		WithArgs(2).
		WillReturnRows(rows)

	acc, err := repo.Create(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, 5, acc.ID)
	assert.Equal(t, 2, acc.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateBalances(t *testing.T) {
	repo, mock, _ := NewMock(t)

	acc := &domain.Account{
		ID:             3,
		CoinBalance:    90,
		EarningBalance: 12.0,
		TotalPurchased: 100,
		TotalSpent:     10,
		TotalEarned:    12.0,
		TotalWithdrawn: 0,
	}
	mock.ExpectExec(`(?s)UPDATE accounts\s+SET .+\s+WHERE id = \$7`).
		WithArgs(acc.CoinBalance, acc.EarningBalance, acc.TotalPurchased, acc.TotalSpent, acc.TotalEarned, acc.TotalWithdrawn, acc.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.UpdateBalances(context.Background(), acc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetFrozen(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectExec(`UPDATE accounts SET frozen = \$1 WHERE id = \$2`).
		WithArgs(true, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetFrozen(context.Background(), 3, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AppendEntry(t *testing.T) {
	repo, mock, _ := NewMock(t)

	sessionID, minuteIndex := 7, 1
	entry := &domain.LedgerEntry{
		AccountID:   3,
		Kind:        domain.EntrySessionDebit,
		Coins:       10,
		SessionID:   &sessionID,
		MinuteIndex: &minuteIndex,
		TransferID:  "a9d0e1a0-0000-0000-0000-000000000000",
		CreatedAt:   time.Now(),
	}
	mock.ExpectQuery(`(?s)INSERT INTO ledger_entries .+\s+RETURNING id`).
		WithArgs(entry.AccountID, entry.Kind, entry.Coins, entry.Amount,
			entry.SessionID, entry.MinuteIndex, entry.TransferID, entry.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(42))

	assert.NoError(t, repo.AppendEntry(context.Background(), entry))
	assert.Equal(t, 42, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_EntriesByAccountID(t *testing.T) {
	repo, mock, _ := NewMock(t)

	now := time.Now()
	sessionID, minuteIndex := 7, 1
	rows := pgxmock.NewRows([]string{"id", "account_id", "kind", "coins", "amount", "session_id", "minute_index", "transfer_id", "created_at"}).
		AddRow(2, 3, domain.EntrySessionDebit, int64(10), 0.0, &sessionID, &minuteIndex, "t-2", now).
		AddRow(1, 3, domain.EntryPurchase, int64(100), 0.0, (*int)(nil), (*int)(nil), "t-1", now.Add(-time.Hour))
	mock.ExpectQuery(`(?s)SELECT .+ FROM ledger_entries\s+WHERE account_id = \$1\s+ORDER BY created_at DESC, id DESC`).
		WithArgs(3).
		WillReturnRows(rows)

	entries, err := repo.EntriesByAccountID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, domain.EntrySessionDebit, entries[0].Kind)
	assert.Equal(t, domain.EntryPurchase, entries[1].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UserIDs(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectQuery(`SELECT user_id FROM accounts ORDER BY id`).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(1).AddRow(2).AddRow(5))

	ids, err := repo.UserIDs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 5}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ReplayTotals(t *testing.T) {
	repo, mock, _ := NewMock(t)

	// The replay must mirror the balance updates sign for sign: only session
	// debits subtract coins and only withdrawals subtract money, so adjustment
	// coins and amounts both count in.
	mock.ExpectQuery(`(?s)SELECT\s+` +
		`COALESCE\(SUM\(CASE WHEN kind = 'session_debit' THEN -coins ELSE coins END\), 0\),\s+` +
		`COALESCE\(SUM\(CASE WHEN kind = 'withdrawal' THEN -amount ELSE amount END\), 0\)\s+` +
		`FROM ledger_entries\s+WHERE account_id = \$1`).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows([]string{"coins", "amount"}).AddRow(int64(90), 12.0))

	coins, amount, err := repo.ReplayTotals(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(90), coins)
	assert.InDelta(t, 12.0, amount, 0.0001)
	assert.NoError(t, mock.ExpectationsWereMet())
}
