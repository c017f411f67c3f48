package accountrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/pg"
	"go.uber.org/zap"
)

const accountColumns = `id, user_id, coin_balance, earning_balance,
               total_purchased, total_spent, total_earned, total_withdrawn, frozen`

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

func (r *Repository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(&acc.ID, &acc.UserID, &acc.CoinBalance, &acc.EarningBalance,
		&acc.TotalPurchased, &acc.TotalSpent, &acc.TotalEarned, &acc.TotalWithdrawn, &acc.Frozen)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE user_id = $1
    `
	acc, err := r.scanAccount(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get account", zap.Error(err))
		return nil, err
	}
	return acc, nil
}

// GetForUpdate locks the account row for the rest of the enclosing
// transaction. Callers locking two accounts must lock the lower id first.
func (r *Repository) GetForUpdate(ctx context.Context, accountID int) (*domain.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM accounts
        WHERE id = $1
        FOR UPDATE
    `
	acc, err := r.scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to lock account", zap.Error(err))
		return nil, err
	}
	return acc, nil
}

func (r *Repository) Create(ctx context.Context, userID int) (*domain.Account, error) {
	query := `
        INSERT INTO accounts (user_id)
        VALUES ($1)
        RETURNING ` + accountColumns + `
    `
	acc, err := r.scanAccount(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		zap.L().Error("failed to create account", zap.Error(err))
		return nil, err
	}
	return acc, nil
}

func (r *Repository) UpdateBalances(ctx context.Context, acc *domain.Account) error {
	query := `
        UPDATE accounts
        SET coin_balance = $1, earning_balance = $2,
            total_purchased = $3, total_spent = $4, total_earned = $5, total_withdrawn = $6
        WHERE id = $7
    `
	_, err := r.db.Exec(ctx, query,
		acc.CoinBalance, acc.EarningBalance,
		acc.TotalPurchased, acc.TotalSpent, acc.TotalEarned, acc.TotalWithdrawn,
		acc.ID)
	if err != nil {
		zap.L().Error("failed to update account balances", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetFrozen(ctx context.Context, accountID int, frozen bool) error {
	_, err := r.db.Exec(ctx, `UPDATE accounts SET frozen = $1 WHERE id = $2`, frozen, accountID)
	if err != nil {
		zap.L().Error("failed to set account frozen flag", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) AppendEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
        INSERT INTO ledger_entries (account_id, kind, coins, amount, session_id, minute_index, transfer_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		entry.AccountID, entry.Kind, entry.Coins, entry.Amount,
		entry.SessionID, entry.MinuteIndex, entry.TransferID, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		zap.L().Error("failed to append ledger entry", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) EntriesByAccountID(ctx context.Context, accountID int) ([]domain.LedgerEntry, error) {
	query := `
        SELECT id, account_id, kind, coins, amount, session_id, minute_index, transfer_id, created_at
        FROM ledger_entries
        WHERE account_id = $1
        ORDER BY created_at DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(&e.ID, &e.AccountID, &e.Kind, &e.Coins, &e.Amount,
			&e.SessionID, &e.MinuteIndex, &e.TransferID, &e.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *Repository) UserIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM accounts ORDER BY id`)
	if err != nil {
		zap.L().Error("failed to list account user ids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("failed to scan account user id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ReplayTotals sums the signed ledger history for an account. The signs
// mirror how the ledger service moves the cached balances: session debits are
// the only coin outflow, withdrawals the only money outflow, every other kind
// counts in as written (including amount-bearing adjustments).
func (r *Repository) ReplayTotals(ctx context.Context, accountID int) (coins int64, amount float64, err error) {
	query := `
        SELECT
            COALESCE(SUM(CASE WHEN kind = 'session_debit' THEN -coins ELSE coins END), 0),
            COALESCE(SUM(CASE WHEN kind = 'withdrawal' THEN -amount ELSE amount END), 0)
        FROM ledger_entries
        WHERE account_id = $1
    `
	err = r.db.QueryRow(ctx, query, accountID).Scan(&coins, &amount)
	if err != nil {
		zap.L().Error("failed to replay ledger totals", zap.Error(err))
		return 0, 0, err
	}
	return coins, amount, nil
}
