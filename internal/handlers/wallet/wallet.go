package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/dto"
	"github.com/bala-dotcom/texme/internal/service/ledgerservice"
	"github.com/bala-dotcom/texme/internal/service/walletservice"
	"github.com/bala-dotcom/texme/pkg/auth"
	"github.com/bala-dotcom/texme/pkg/utils"
	"github.com/bala-dotcom/texme/pkg/validate"
)

type Service interface {
	Balance(ctx context.Context, userID int) (*domain.Account, error)
	Purchase(ctx context.Context, userID int, coins int64) error
	Withdraw(ctx context.Context, userID int, amount float64) error
	History(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetBalance godoc
//
//	@Summary		Get the caller's wallet
//	@Description	Coin balance, earning balance and lifetime totals
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.WalletResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	acc, err := h.walletService.Balance(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WalletResponseDTO{
		Coins:          acc.CoinBalance,
		EarningBalance: acc.EarningBalance,
		TotalPurchased: acc.TotalPurchased,
		TotalSpent:     acc.TotalSpent,
		TotalEarned:    acc.TotalEarned,
		TotalWithdrawn: acc.TotalWithdrawn,
	})
}

// Purchase godoc
//
//	@Summary		Credit purchased coins
//	@Description	Called once the payment gateway confirms a coin package purchase
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.PurchaseRequestDTO	true	"Purchase payload"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/purchase [post]
func (h *WalletHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.PurchaseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Coins <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.walletService.Purchase(r.Context(), userID, req.Coins); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Coins credited"})
}

// Withdraw godoc
//
//	@Summary		Request an earnings withdrawal
//	@Description	Withdraw from the earning balance to the provided card number
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	utils.Response
//	@Failure		400		{object}	utils.Response	"Amount below minimum"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		422		{object}	utils.Response	"Invalid card number"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/withdraw [post]
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if ok := validate.IsLuna(req.Card); !ok {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid card number")
		return
	}

	err := h.walletService.Withdraw(r.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrBelowMinWithdrawal):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ledgerservice.ErrInsufficientFunds):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "withdrawal successful"})
}

// History godoc
//
//	@Summary		Get ledger history
//	@Description	All balance-affecting entries for the caller, newest first
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LedgerEntryResponseDTO
//	@Success		204	{object}	utils.Response	"No entries"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/history [get]
func (h *WalletHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	entries, err := h.walletService.History(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch history")
		return
	}
	if len(entries) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No entries")
		return
	}

	response := make([]dto.LedgerEntryResponseDTO, len(entries))
	for i, e := range entries {
		response[i] = dto.LedgerEntryResponseDTO{
			Kind:        string(e.Kind),
			Coins:       e.Coins,
			Amount:      e.Amount,
			SessionID:   e.SessionID,
			MinuteIndex: e.MinuteIndex,
			CreatedAt:   e.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
