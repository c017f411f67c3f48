package domain

import "time"

type Role string

const (
	RolePayer  Role = "payer"
	RoleEarner Role = "earner"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// Account holds the spendable coin balance (payers) and the monetary earning
// balance (earners). Mutated only through ledger operations.
type Account struct {
	ID             int     `db:"id"`
	UserID         int     `db:"user_id"`
	CoinBalance    int64   `db:"coin_balance"`
	EarningBalance float64 `db:"earning_balance"`
	TotalPurchased int64   `db:"total_purchased"`
	TotalSpent     int64   `db:"total_spent"`
	TotalEarned    float64 `db:"total_earned"`
	TotalWithdrawn float64 `db:"total_withdrawn"`
	Frozen         bool    `db:"frozen"`
}

type EntryKind string

const (
	EntryPurchase      EntryKind = "purchase"
	EntrySessionDebit  EntryKind = "session_debit"
	EntrySessionCredit EntryKind = "session_credit"
	EntryWithdrawal    EntryKind = "withdrawal"
	EntryAdjustment    EntryKind = "adjustment"
)

// LedgerEntry is append-only. Coins and Amount are always non-negative;
// direction is carried by Kind.
type LedgerEntry struct {
	ID          int       `db:"id"`
	AccountID   int       `db:"account_id"`
	Kind        EntryKind `db:"kind"`
	Coins       int64     `db:"coins"`
	Amount      float64   `db:"amount"`
	SessionID   *int      `db:"session_id"`
	MinuteIndex *int      `db:"minute_index"`
	TransferID  string    `db:"transfer_id"`
	CreatedAt   time.Time `db:"created_at"`
}

type SessionState string

const (
	SessionRequested SessionState = "requested"
	SessionActive    SessionState = "active"
	SessionEnded     SessionState = "ended"
)

type EndReason string

const (
	ReasonCompleted         EndReason = "completed"
	ReasonDeclined          EndReason = "declined"
	ReasonCancelled         EndReason = "cancelled"
	ReasonExpired           EndReason = "expired"
	ReasonInsufficientFunds EndReason = "insufficient_funds"
	ReasonInternalError     EndReason = "internal_error"
)

// Session is one payer-earner pairing. CoinsPerMinute and PayoutPerMinute are
// pinned at Accept so an admin rate change never alters a running session.
type Session struct {
	ID              int          `db:"id"`
	PayerID         int          `db:"payer_id"`
	EarnerID        int          `db:"earner_id"`
	State           SessionState `db:"state"`
	EndReason       EndReason    `db:"end_reason"`
	CoinsPerMinute  int64        `db:"coins_per_minute"`
	PayoutPerMinute float64      `db:"payout_per_minute"`
	MinutesBilled   int          `db:"minutes_billed"`
	CoinsSpent      int64        `db:"coins_spent"`
	AmountEarned    float64      `db:"amount_earned"`
	CreatedAt       time.Time    `db:"created_at"`
	StartedAt       *time.Time   `db:"started_at"`
	EndedAt         *time.Time   `db:"ended_at"`
}

func (s *Session) Terminal() bool {
	return s.State == SessionEnded
}

type PresenceState string

const (
	PresenceFree       PresenceState = "free"
	PresenceRequesting PresenceState = "requesting"
	PresencePaired     PresenceState = "paired"
)

type Presence struct {
	UserID    int           `db:"user_id"`
	State     PresenceState `db:"state"`
	SessionID *int          `db:"session_id"`
}

type Rate struct {
	CoinsPerMinute  int64
	PayoutPerMinute float64
}

// SessionSummary is what both parties see once a session ends. TotalMinutes
// counts successfully billed minutes, not wall-clock elapsed time.
type SessionSummary struct {
	SessionID    int
	TotalMinutes int
	CoinsSpent   int64
	AmountEarned float64
	EndReason    EndReason
}
