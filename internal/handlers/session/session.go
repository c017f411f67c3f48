package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/dto"
	"github.com/bala-dotcom/texme/internal/service/ledgerservice"
	"github.com/bala-dotcom/texme/internal/service/sessionservice"
	"github.com/bala-dotcom/texme/pkg/auth"
	"github.com/bala-dotcom/texme/pkg/utils"
)

type Service interface {
	Request(ctx context.Context, payerID, earnerID int) (*domain.Session, error)
	Accept(ctx context.Context, sessionID, earnerID int) (*domain.Session, error)
	Decline(ctx context.Context, sessionID, earnerID int) error
	Cancel(ctx context.Context, sessionID, payerID int) error
	End(ctx context.Context, sessionID, actorID int) (*domain.SessionSummary, error)
	Status(ctx context.Context, sessionID, requesterID int) (*sessionservice.Status, error)
	SetHint(ctx context.Context, sessionID, userID int, kind string) error
	PendingRequests(ctx context.Context, earnerID int) ([]domain.Session, error)
	ActiveSession(ctx context.Context, userID int) (*domain.Session, error)
	History(ctx context.Context, userID int) ([]domain.Session, error)
}

type SessionHandler struct {
	sessionService Service
}

func New(sessionService Service) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// Request godoc
//
//	@Summary		Request a paid session
//	@Description	Open a session request from the authenticated payer to an earner
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RequestSessionRequestDTO	true	"Session request payload"
//	@Success		200		{object}	dto.RequestSessionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		402		{object}	utils.Response	"Insufficient coins"
//	@Failure		409		{object}	utils.Response	"Payer already has an open session"
//	@Failure		423		{object}	utils.Response	"Earner unavailable"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions [post]
func (h *SessionHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.RequestSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.sessionService.Request(r.Context(), userID, req.EarnerID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RequestSessionResponseDTO{SessionID: session.ID})
}

// Accept godoc
//
//	@Summary		Accept a session request
//	@Description	Accept a pending request as the named earner; billing starts immediately
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Session ID"
//	@Success		200	{object}	dto.AcceptSessionResponseDTO
//	@Failure		402	{object}	utils.Response	"Payer no longer has enough coins"
//	@Failure		403	{object}	utils.Response	"Not this user's request"
//	@Failure		404	{object}	utils.Response	"Session not found"
//	@Failure		409	{object}	utils.Response	"Already processed"
//	@Failure		423	{object}	utils.Response	"Earner already paired"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions/{id}/accept [post]
func (h *SessionHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	session, err := h.sessionService.Accept(r.Context(), sessionID, userID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AcceptSessionResponseDTO{
		SessionID: session.ID,
		StartedAt: session.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Decline godoc
//
//	@Summary		Decline a session request
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Session ID"
//	@Success		200	{object}	utils.Response
//	@Failure		403	{object}	utils.Response	"Not this user's request"
//	@Failure		404	{object}	utils.Response	"Session not found"
//	@Failure		409	{object}	utils.Response	"Already processed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions/{id}/decline [post]
func (h *SessionHandler) Decline(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	if err := h.sessionService.Decline(r.Context(), sessionID, userID); err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Session request declined"})
}

// Cancel godoc
//
//	@Summary		Cancel an outgoing session request
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Session ID"
//	@Success		200	{object}	utils.Response
//	@Failure		403	{object}	utils.Response	"Not this user's request"
//	@Failure		404	{object}	utils.Response	"Session not found"
//	@Failure		409	{object}	utils.Response	"Already processed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions/{id}/cancel [post]
func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	if err := h.sessionService.Cancel(r.Context(), sessionID, userID); err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Session request cancelled"})
}

// End godoc
//
//	@Summary		End an active session
//	@Description	Either participant ends the conversation and receives the final summary
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Session ID"
//	@Success		200	{object}	dto.SessionSummaryResponseDTO
//	@Failure		403	{object}	utils.Response	"Not a participant"
//	@Failure		404	{object}	utils.Response	"Session not found"
//	@Failure		409	{object}	utils.Response	"Session not active"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions/{id}/end [post]
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	summary, err := h.sessionService.End(r.Context(), sessionID, userID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SessionSummaryResponseDTO{
		SessionID:    summary.SessionID,
		TotalMinutes: summary.TotalMinutes,
		CoinsSpent:   summary.CoinsSpent,
		AmountEarned: summary.AmountEarned,
		EndReason:    string(summary.EndReason),
	})
}

// Status godoc
//
//	@Summary		Poll session status
//	@Description	Session state, remaining estimated seconds and partner typing/recording hints
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Session ID"
//	@Success		200	{object}	dto.SessionStatusResponseDTO
//	@Failure		403	{object}	utils.Response	"Not a participant"
//	@Failure		404	{object}	utils.Response	"Session not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions/{id}/status [get]
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	status, err := h.sessionService.Status(r.Context(), sessionID, userID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SessionStatusResponseDTO{
		SessionID:        status.SessionID,
		State:            string(status.State),
		EndReason:        string(status.EndReason),
		RemainingSeconds: status.RemainingSeconds,
		MinutesBilled:    status.MinutesBilled,
		PartnerTyping:    status.PartnerTyping,
		PartnerRecording: status.PartnerRecording,
	})
}

// Typing godoc
//
//	@Summary	Flag the caller as typing for a few seconds
//	@Tags		Sessions
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Session ID"
//	@Success	200	{object}	utils.Response
//	@Failure	403	{object}	utils.Response	"Not a participant"
//	@Failure	404	{object}	utils.Response	"Session not found"
//	@Router		/api/sessions/{id}/typing [post]
func (h *SessionHandler) Typing(w http.ResponseWriter, r *http.Request) {
	h.setHint(w, r, sessionservice.HintTyping)
}

// Recording godoc
//
//	@Summary	Flag the caller as recording a voice clip
//	@Tags		Sessions
//	@Security	BearerAuth
//	@Param		id	path		int	true	"Session ID"
//	@Success	200	{object}	utils.Response
//	@Failure	403	{object}	utils.Response	"Not a participant"
//	@Failure	404	{object}	utils.Response	"Session not found"
//	@Router		/api/sessions/{id}/recording [post]
func (h *SessionHandler) Recording(w http.ResponseWriter, r *http.Request) {
	h.setHint(w, r, sessionservice.HintRecording)
}

func (h *SessionHandler) setHint(w http.ResponseWriter, r *http.Request, kind string) {
	userID := r.Context().Value(auth.UserIDKey).(int)
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	if err := h.sessionService.SetHint(r.Context(), sessionID, userID, kind); err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
}

// Pending godoc
//
//	@Summary		List pending requests for the authenticated earner
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.PendingRequestResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions/pending [get]
func (h *SessionHandler) Pending(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	sessions, err := h.sessionService.PendingRequests(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.PendingRequestResponseDTO, len(sessions))
	for i, s := range sessions {
		response[i] = dto.PendingRequestResponseDTO{
			SessionID:   s.ID,
			PayerID:     s.PayerID,
			RequestedAt: s.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Active godoc
//
//	@Summary		Get the caller's active session, if any
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.SessionStatusResponseDTO
//	@Success		204	{object}	utils.Response	"No active session"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions/active [get]
func (h *SessionHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	session, err := h.sessionService.ActiveSession(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if session == nil {
		utils.RespondWithError(w, http.StatusNoContent, "No active session")
		return
	}

	status, err := h.sessionService.Status(r.Context(), session.ID, userID)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.SessionStatusResponseDTO{
		SessionID:        status.SessionID,
		State:            string(status.State),
		RemainingSeconds: status.RemainingSeconds,
		MinutesBilled:    status.MinutesBilled,
		PartnerTyping:    status.PartnerTyping,
		PartnerRecording: status.PartnerRecording,
	})
}

// History godoc
//
//	@Summary		List the caller's completed sessions
//	@Tags			Sessions
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.SessionHistoryResponseDTO
//	@Success		204	{object}	utils.Response	"No sessions yet"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/sessions/history [get]
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	sessions, err := h.sessionService.History(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if len(sessions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No sessions yet")
		return
	}

	response := make([]dto.SessionHistoryResponseDTO, len(sessions))
	for i, s := range sessions {
		partnerID := s.EarnerID
		if userID == s.EarnerID {
			partnerID = s.PayerID
		}
		endedAt := ""
		if s.EndedAt != nil {
			endedAt = s.EndedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		response[i] = dto.SessionHistoryResponseDTO{
			SessionID:    s.ID,
			PartnerID:    partnerID,
			TotalMinutes: s.MinutesBilled,
			CoinsSpent:   s.CoinsSpent,
			AmountEarned: s.AmountEarned,
			EndedAt:      endedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func sessionIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid session id")
		return 0, false
	}
	return id, true
}

func respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionservice.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, sessionservice.ErrWrongActor), errors.Is(err, sessionservice.ErrNotParticipant):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, sessionservice.ErrAlreadyProcessed):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, sessionservice.ErrAlreadyPaired):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, sessionservice.ErrEarnerUnavailable):
		utils.RespondWithError(w, http.StatusLocked, err.Error())
	case errors.Is(err, ledgerservice.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
