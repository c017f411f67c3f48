package dto

import "time"

type WalletResponseDTO struct {
	Coins          int64   `json:"coins" example:"250"`
	EarningBalance float64 `json:"earning_balance" example:"120.5"`
	TotalPurchased int64   `json:"total_purchased" example:"500"`
	TotalSpent     int64   `json:"total_spent" example:"250"`
	TotalEarned    float64 `json:"total_earned" example:"300"`
	TotalWithdrawn float64 `json:"total_withdrawn" example:"179.5"`
}

type PurchaseRequestDTO struct {
	Coins int64 `json:"coins" validate:"required,gt=0" example:"100"`
}

type WithdrawRequestDTO struct {
	Amount float64 `json:"amount" validate:"required,gt=0" example:"100"`
	Card   string  `json:"card" validate:"required" example:"2377225624"`
}

type LedgerEntryResponseDTO struct {
	Kind        string    `json:"kind" example:"session_debit"`
	Coins       int64     `json:"coins,omitempty" example:"10"`
	Amount      float64   `json:"amount,omitempty" example:"3"`
	SessionID   *int      `json:"session_id,omitempty" example:"17"`
	MinuteIndex *int      `json:"minute_index,omitempty" example:"1"`
	CreatedAt   time.Time `json:"created_at" example:"2025-02-09T16:09:57+03:00"`
}
