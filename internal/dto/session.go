package dto

import "time"

type RequestSessionRequestDTO struct {
	EarnerID int `json:"earner_id" validate:"required" example:"42"`
}

type RequestSessionResponseDTO struct {
	SessionID int `json:"session_id" example:"17"`
}

type AcceptSessionResponseDTO struct {
	SessionID int    `json:"session_id" example:"17"`
	StartedAt string `json:"started_at" example:"2025-02-09T16:09:57+03:00"`
}

type SessionStatusResponseDTO struct {
	SessionID        int    `json:"session_id" example:"17"`
	State            string `json:"state" example:"active"`
	EndReason        string `json:"end_reason,omitempty" example:"completed"`
	RemainingSeconds int64  `json:"remaining_seconds" example:"150"`
	MinutesBilled    int    `json:"minutes_billed" example:"2"`
	PartnerTyping    bool   `json:"is_typing"`
	PartnerRecording bool   `json:"is_recording"`
}

type SessionSummaryResponseDTO struct {
	SessionID    int     `json:"session_id" example:"17"`
	TotalMinutes int     `json:"total_minutes" example:"2"`
	CoinsSpent   int64   `json:"coins_spent" example:"20"`
	AmountEarned float64 `json:"amount_earned" example:"6"`
	EndReason    string  `json:"end_reason" example:"completed"`
}

type PendingRequestResponseDTO struct {
	SessionID   int       `json:"session_id" example:"17"`
	PayerID     int       `json:"payer_id" example:"7"`
	RequestedAt time.Time `json:"requested_at" example:"2025-02-09T16:09:57+03:00"`
}

type SessionHistoryResponseDTO struct {
	SessionID    int     `json:"session_id" example:"17"`
	PartnerID    int     `json:"partner_id" example:"42"`
	TotalMinutes int     `json:"total_minutes" example:"2"`
	CoinsSpent   int64   `json:"coins_spent" example:"20"`
	AmountEarned float64 `json:"amount_earned" example:"6"`
	EndedAt      string  `json:"ended_at" example:"2025-02-09T16:29:57+03:00"`
}
