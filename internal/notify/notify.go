package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bala-dotcom/texme/internal/config"
	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/pkg/clients"
)

const sendTimeout = 5 * time.Second

type event struct {
	Event     string  `json:"event"`
	SessionID int     `json:"session_id"`
	PayerID   int     `json:"payer_id"`
	EarnerID  int     `json:"earner_id"`
	Minutes   int     `json:"minutes,omitempty"`
	Coins     int64   `json:"coins,omitempty"`
	Earned    float64 `json:"earned,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Service posts session lifecycle events to the push-delivery hook. It is
// fire-and-forget: failures are logged and dropped, nothing waits on it.
type Service struct {
	url    string
	client clients.HTTPClientI
}

func New(cfg *config.Config, client clients.HTTPClientI) *Service {
	return &Service{
		url:    cfg.NotifyAddress + "/api/events",
		client: client,
	}
}

func (s *Service) SessionRequested(session *domain.Session) {
	go s.send(event{
		Event:     "session_request_created",
		SessionID: session.ID,
		PayerID:   session.PayerID,
		EarnerID:  session.EarnerID,
	})
}

func (s *Service) SessionEnded(session *domain.Session, summary *domain.SessionSummary) {
	go s.send(event{
		Event:     "session_ended",
		SessionID: session.ID,
		PayerID:   session.PayerID,
		EarnerID:  session.EarnerID,
		Minutes:   summary.TotalMinutes,
		Coins:     summary.CoinsSpent,
		Earned:    summary.AmountEarned,
		Reason:    string(summary.EndReason),
	})
}

func (s *Service) send(e event) {
	body, err := json.Marshal(e)
	if err != nil {
		zap.L().Error("failed to encode notification", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		zap.L().Error("failed to build notification request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		zap.L().Warn("notification delivery failed", zap.String("event", e.Event), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		zap.L().Warn("notification rejected",
			zap.String("event", e.Event), zap.Int("status", resp.StatusCode))
	}
}
