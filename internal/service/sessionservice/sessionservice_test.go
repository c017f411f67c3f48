package sessionservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/pg"
	"github.com/bala-dotcom/texme/internal/service/ledgerservice"
	"github.com/bala-dotcom/texme/internal/service/presenceservice"
)

type mocks struct {
	sessionRepo *MockSessionRepo
	presence    *MockPresence
	ledger      *MockLedger
	rates       *MockRates
	userRepo    *MockUserRepo
	notifier    *MockNotifier
	hints       *MockHints
	txManager   *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		sessionRepo: NewMockSessionRepo(ctrl),
		presence:    NewMockPresence(ctrl),
		ledger:      NewMockLedger(ctrl),
		rates:       NewMockRates(ctrl),
		userRepo:    NewMockUserRepo(ctrl),
		notifier:    NewMockNotifier(ctrl),
		hints:       NewMockHints(ctrl),
		txManager:   pg.NewMockTXManager(ctrl),
	}
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()

	service := New(m.sessionRepo, m.presence, m.ledger, m.rates, m.userRepo, m.notifier, m.hints, m.txManager, 2*time.Minute)
	defer ctrl.Finish()
	return service, m
}

func TestRequest(t *testing.T) {
	rate := domain.Rate{CoinsPerMinute: 10, PayoutPerMinute: 3.0}
	payer := &domain.User{ID: 1, Login: "payer", Role: domain.RolePayer}
	earner := &domain.User{ID: 2, Login: "earner", Role: domain.RoleEarner}

	tests := []struct {
		name            string
		prepareMock     func(m *mocks)
		expectedSession *domain.Session
		expectedError   error
	}{
		{
			name: "Successful request",
			prepareMock: func(m *mocks) {
				m.userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(payer, nil)
				m.userRepo.EXPECT().FindByID(gomock.Any(), 2).Return(earner, nil)
				m.presence.EXPECT().IsAvailableAsEarner(gomock.Any(), 2).Return(true, nil)
				m.rates.EXPECT().CurrentRate(gomock.Any()).Return(rate, nil)
				m.ledger.EXPECT().GetAccount(gomock.Any(), 1).Return(&domain.Account{ID: 1, UserID: 1, CoinBalance: 25}, nil)
				m.sessionRepo.EXPECT().Create(gomock.Any(), 1, 2).Return(&domain.Session{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionRequested}, nil)
				m.presence.EXPECT().MarkRequesting(gomock.Any(), 1, 7).Return(nil)
				m.notifier.EXPECT().SessionRequested(gomock.Any())
			},
			expectedSession: &domain.Session{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionRequested},
		},
		{
			name: "Requester is not a payer",
			prepareMock: func(m *mocks) {
				m.userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Role: domain.RoleEarner}, nil)
			},
			expectedError: ErrWrongActor,
		},
		{
			name: "Target is not an earner",
			prepareMock: func(m *mocks) {
				m.userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(payer, nil)
				m.userRepo.EXPECT().FindByID(gomock.Any(), 2).Return(&domain.User{ID: 2, Role: domain.RolePayer}, nil)
			},
			expectedError: ErrEarnerUnavailable,
		},
		{
			name: "Earner already busy",
			prepareMock: func(m *mocks) {
				m.userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(payer, nil)
				m.userRepo.EXPECT().FindByID(gomock.Any(), 2).Return(earner, nil)
				m.presence.EXPECT().IsAvailableAsEarner(gomock.Any(), 2).Return(false, nil)
			},
			expectedError: ErrEarnerUnavailable,
		},
		{
			name: "Payer cannot afford one minute",
			prepareMock: func(m *mocks) {
				m.userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(payer, nil)
				m.userRepo.EXPECT().FindByID(gomock.Any(), 2).Return(earner, nil)
				m.presence.EXPECT().IsAvailableAsEarner(gomock.Any(), 2).Return(true, nil)
				m.rates.EXPECT().CurrentRate(gomock.Any()).Return(rate, nil)
				m.ledger.EXPECT().GetAccount(gomock.Any(), 1).Return(&domain.Account{ID: 1, UserID: 1, CoinBalance: 5}, nil)
			},
			expectedError: ledgerservice.ErrInsufficientFunds,
		},
		{
			name: "Payer already has an open session",
			prepareMock: func(m *mocks) {
				m.userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(payer, nil)
				m.userRepo.EXPECT().FindByID(gomock.Any(), 2).Return(earner, nil)
				m.presence.EXPECT().IsAvailableAsEarner(gomock.Any(), 2).Return(true, nil)
				m.rates.EXPECT().CurrentRate(gomock.Any()).Return(rate, nil)
				m.ledger.EXPECT().GetAccount(gomock.Any(), 1).Return(&domain.Account{ID: 1, UserID: 1, CoinBalance: 25}, nil)
				m.sessionRepo.EXPECT().Create(gomock.Any(), 1, 2).Return(&domain.Session{ID: 7, PayerID: 1, EarnerID: 2}, nil)
				m.presence.EXPECT().MarkRequesting(gomock.Any(), 1, 7).Return(presenceservice.ErrSlotTaken)
			},
			expectedError: ErrAlreadyPaired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			session, err := service.Request(context.Background(), 1, 2)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSession, session)
			}
		})
	}
}

func TestAccept(t *testing.T) {
	rate := domain.Rate{CoinsPerMinute: 10, PayoutPerMinute: 3.0}
	requested := func() *domain.Session {
		return &domain.Session{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionRequested}
	}

	tests := []struct {
		name          string
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name: "Successful accept pins the rate",
			prepareMock: func(m *mocks) {
				m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(requested(), nil)
				m.rates.EXPECT().CurrentRate(gomock.Any()).Return(rate, nil)
				m.ledger.EXPECT().GetAccount(gomock.Any(), 1).Return(&domain.Account{ID: 1, UserID: 1, CoinBalance: 25}, nil)
				m.sessionRepo.EXPECT().Activate(gomock.Any(), 7, 2, rate, gomock.Any()).
					Return(&domain.Session{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionActive, CoinsPerMinute: 10, PayoutPerMinute: 3.0}, nil)
				m.presence.EXPECT().MarkPaired(gomock.Any(), 2, 7, domain.PresenceFree).Return(nil)
				m.presence.EXPECT().MarkPaired(gomock.Any(), 1, 7, domain.PresenceRequesting).Return(nil)
			},
		},
		{
			name: "Unknown session",
			prepareMock: func(m *mocks) {
				m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(nil, nil)
			},
			expectedError: ErrNotFound,
		},
		{
			name: "Accept by the wrong earner",
			prepareMock: func(m *mocks) {
				session := requested()
				session.EarnerID = 99
				m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(session, nil)
			},
			expectedError: ErrWrongActor,
		},
		{
			name: "Session no longer requested",
			prepareMock: func(m *mocks) {
				session := requested()
				session.State = domain.SessionEnded
				m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(session, nil)
			},
			expectedError: ErrAlreadyProcessed,
		},
		{
			name: "Lost the activation race",
			prepareMock: func(m *mocks) {
				m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(requested(), nil)
				m.rates.EXPECT().CurrentRate(gomock.Any()).Return(rate, nil)
				m.ledger.EXPECT().GetAccount(gomock.Any(), 1).Return(&domain.Account{ID: 1, UserID: 1, CoinBalance: 25}, nil)
				m.sessionRepo.EXPECT().Activate(gomock.Any(), 7, 2, rate, gomock.Any()).Return(nil, nil)
			},
			expectedError: ErrAlreadyProcessed,
		},
		{
			name: "Payer balance dropped since request",
			prepareMock: func(m *mocks) {
				m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(requested(), nil)
				m.rates.EXPECT().CurrentRate(gomock.Any()).Return(rate, nil)
				m.ledger.EXPECT().GetAccount(gomock.Any(), 1).Return(&domain.Account{ID: 1, UserID: 1, CoinBalance: 3}, nil)
				m.sessionRepo.EXPECT().MarkEnded(gomock.Any(), 7, domain.SessionRequested, domain.ReasonInsufficientFunds, gomock.Any()).
					Return(&domain.Session{ID: 7, State: domain.SessionEnded}, nil)
				m.presence.EXPECT().Release(gomock.Any(), 1).Return(nil)
			},
			expectedError: ledgerservice.ErrInsufficientFunds,
		},
		{
			name: "Earner got paired elsewhere mid-accept",
			prepareMock: func(m *mocks) {
				m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(requested(), nil)
				m.rates.EXPECT().CurrentRate(gomock.Any()).Return(rate, nil)
				m.ledger.EXPECT().GetAccount(gomock.Any(), 1).Return(&domain.Account{ID: 1, UserID: 1, CoinBalance: 25}, nil)
				m.sessionRepo.EXPECT().Activate(gomock.Any(), 7, 2, rate, gomock.Any()).
					Return(&domain.Session{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionActive}, nil)
				m.presence.EXPECT().MarkPaired(gomock.Any(), 2, 7, domain.PresenceFree).Return(presenceservice.ErrSlotTaken)
			},
			expectedError: ErrEarnerUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			session, err := service.Accept(context.Background(), 7, 2)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, domain.SessionActive, session.State)
				assert.Equal(t, int64(10), session.CoinsPerMinute)
			}
		})
	}
}

func TestDeclineAndCancel(t *testing.T) {
	requested := func() *domain.Session {
		return &domain.Session{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionRequested}
	}

	t.Run("Earner declines", func(t *testing.T) {
		service, m := NewMock(t)
		m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(requested(), nil)
		m.sessionRepo.EXPECT().MarkEnded(gomock.Any(), 7, domain.SessionRequested, domain.ReasonDeclined, gomock.Any()).
			Return(&domain.Session{ID: 7, State: domain.SessionEnded}, nil)
		m.presence.EXPECT().Release(gomock.Any(), 1).Return(nil)

		assert.NoError(t, service.Decline(context.Background(), 7, 2))
	})

	t.Run("Payer cancels", func(t *testing.T) {
		service, m := NewMock(t)
		m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(requested(), nil)
		m.sessionRepo.EXPECT().MarkEnded(gomock.Any(), 7, domain.SessionRequested, domain.ReasonCancelled, gomock.Any()).
			Return(&domain.Session{ID: 7, State: domain.SessionEnded}, nil)
		m.presence.EXPECT().Release(gomock.Any(), 1).Return(nil)

		assert.NoError(t, service.Cancel(context.Background(), 7, 1))
	})

	t.Run("Payer cannot decline", func(t *testing.T) {
		service, m := NewMock(t)
		m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(requested(), nil)

		assert.ErrorIs(t, service.Decline(context.Background(), 7, 1), ErrWrongActor)
	})

	t.Run("Cancel after activation", func(t *testing.T) {
		service, m := NewMock(t)
		session := requested()
		session.State = domain.SessionActive
		m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(session, nil)

		assert.ErrorIs(t, service.Cancel(context.Background(), 7, 1), ErrAlreadyProcessed)
	})
}

func TestEnd(t *testing.T) {
	started := time.Now().Add(-5 * time.Minute)
	active := func() *domain.Session {
		return &domain.Session{
			ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionActive,
			CoinsPerMinute: 10, PayoutPerMinute: 3.0,
			MinutesBilled: 5, CoinsSpent: 50, AmountEarned: 15.0,
			StartedAt: &started,
		}
	}

	t.Run("Participant ends the session", func(t *testing.T) {
		service, m := NewMock(t)
		ended := active()
		ended.State = domain.SessionEnded

		m.sessionRepo.EXPECT().GetByID(gomock.Any(), 7).Return(active(), nil)
		m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(active(), nil)
		m.sessionRepo.EXPECT().MarkEnded(gomock.Any(), 7, domain.SessionActive, domain.ReasonCompleted, gomock.Any()).Return(ended, nil)
		m.presence.EXPECT().Release(gomock.Any(), 1).Return(nil)
		m.presence.EXPECT().Release(gomock.Any(), 2).Return(nil)
		m.notifier.EXPECT().SessionEnded(gomock.Any(), gomock.Any())

		summary, err := service.End(context.Background(), 7, 1)
		assert.NoError(t, err)
		assert.Equal(t, 5, summary.TotalMinutes)
		assert.Equal(t, int64(50), summary.CoinsSpent)
		assert.InDelta(t, 15.0, summary.AmountEarned, 0.0001)
		assert.Equal(t, domain.ReasonCompleted, summary.EndReason)
	})

	t.Run("Stranger cannot end it", func(t *testing.T) {
		service, m := NewMock(t)
		m.sessionRepo.EXPECT().GetByID(gomock.Any(), 7).Return(active(), nil)

		summary, err := service.End(context.Background(), 7, 99)
		assert.ErrorIs(t, err, ErrNotParticipant)
		assert.Nil(t, summary)
	})

	t.Run("Ending twice is idempotent at the service boundary", func(t *testing.T) {
		service, m := NewMock(t)
		session := active()
		session.State = domain.SessionEnded
		m.sessionRepo.EXPECT().GetByID(gomock.Any(), 7).Return(session, nil)
		m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(session, nil)

		summary, err := service.End(context.Background(), 7, 1)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		assert.Nil(t, summary)
	})

	t.Run("System end on empty balance", func(t *testing.T) {
		service, m := NewMock(t)
		ended := active()
		ended.State = domain.SessionEnded

		m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).Return(active(), nil)
		m.sessionRepo.EXPECT().MarkEnded(gomock.Any(), 7, domain.SessionActive, domain.ReasonInsufficientFunds, gomock.Any()).Return(ended, nil)
		m.presence.EXPECT().Release(gomock.Any(), 1).Return(nil)
		m.presence.EXPECT().Release(gomock.Any(), 2).Return(nil)
		m.notifier.EXPECT().SessionEnded(gomock.Any(), gomock.Any())

		summary, err := service.EndBySystem(context.Background(), 7, domain.ReasonInsufficientFunds)
		assert.NoError(t, err)
		assert.Equal(t, domain.ReasonInsufficientFunds, summary.EndReason)
	})
}

func TestSweepStaleRequests(t *testing.T) {
	t.Run("Expires stale requests and frees payers", func(t *testing.T) {
		service, m := NewMock(t)
		stale := []domain.Session{
			{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionRequested},
			{ID: 8, PayerID: 3, EarnerID: 2, State: domain.SessionRequested},
		}
		m.sessionRepo.EXPECT().FindStaleRequests(gomock.Any(), 2*time.Minute).Return(stale, nil)
		for _, s := range stale {
			s := s
			m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), s.ID).Return(&s, nil)
			m.sessionRepo.EXPECT().MarkEnded(gomock.Any(), s.ID, domain.SessionRequested, domain.ReasonExpired, gomock.Any()).
				Return(&domain.Session{ID: s.ID, State: domain.SessionEnded}, nil)
			m.presence.EXPECT().Release(gomock.Any(), s.PayerID).Return(nil)
		}

		swept, err := service.SweepStaleRequests(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 2, swept)
	})

	t.Run("Skips a request accepted after listing", func(t *testing.T) {
		service, m := NewMock(t)
		m.sessionRepo.EXPECT().FindStaleRequests(gomock.Any(), 2*time.Minute).
			Return([]domain.Session{{ID: 7, PayerID: 1, State: domain.SessionRequested}}, nil)
		m.sessionRepo.EXPECT().GetForUpdate(gomock.Any(), 7).
			Return(&domain.Session{ID: 7, PayerID: 1, State: domain.SessionActive}, nil)

		swept, err := service.SweepStaleRequests(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 0, swept)
	})
}

func TestStatus(t *testing.T) {
	started := time.Now().Add(-3 * time.Minute)

	t.Run("Active session reports remaining airtime and hints", func(t *testing.T) {
		service, m := NewMock(t)
		session := &domain.Session{
			ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionActive,
			CoinsPerMinute: 10, PayoutPerMinute: 3.0, MinutesBilled: 3, StartedAt: &started,
		}
		m.sessionRepo.EXPECT().GetByID(gomock.Any(), 7).Return(session, nil)
		m.ledger.EXPECT().GetAccount(gomock.Any(), 1).Return(&domain.Account{ID: 1, UserID: 1, CoinBalance: 25}, nil)
		m.hints.EXPECT().Check(7, 2, HintTyping).Return(true)
		m.hints.EXPECT().Check(7, 2, HintRecording).Return(false)

		status, err := service.Status(context.Background(), 7, 1)
		assert.NoError(t, err)
		// 25 coins at 10/min buys 2 whole minutes.
		assert.Equal(t, int64(120), status.RemainingSeconds)
		assert.Equal(t, 3, status.MinutesBilled)
		assert.True(t, status.PartnerTyping)
		assert.False(t, status.PartnerRecording)
	})

	t.Run("Ended session reports zero remaining", func(t *testing.T) {
		service, m := NewMock(t)
		session := &domain.Session{
			ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionEnded,
			EndReason: domain.ReasonCompleted, CoinsPerMinute: 10,
		}
		m.sessionRepo.EXPECT().GetByID(gomock.Any(), 7).Return(session, nil)
		m.hints.EXPECT().Check(7, 1, HintTyping).Return(false)
		m.hints.EXPECT().Check(7, 1, HintRecording).Return(false)

		status, err := service.Status(context.Background(), 7, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), status.RemainingSeconds)
		assert.Equal(t, domain.ReasonCompleted, status.EndReason)
	})

	t.Run("Stranger gets nothing", func(t *testing.T) {
		service, m := NewMock(t)
		m.sessionRepo.EXPECT().GetByID(gomock.Any(), 7).
			Return(&domain.Session{ID: 7, PayerID: 1, EarnerID: 2}, nil)

		status, err := service.Status(context.Background(), 7, 99)
		assert.ErrorIs(t, err, ErrNotParticipant)
		assert.Nil(t, status)
	})
}

func TestSetHint(t *testing.T) {
	t.Run("Participant marks typing", func(t *testing.T) {
		service, m := NewMock(t)
		m.sessionRepo.EXPECT().GetByID(gomock.Any(), 7).
			Return(&domain.Session{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionActive}, nil)
		m.hints.EXPECT().Mark(7, 1, HintTyping)

		assert.NoError(t, service.SetHint(context.Background(), 7, 1, HintTyping))
	})

	t.Run("Stranger is rejected", func(t *testing.T) {
		service, m := NewMock(t)
		m.sessionRepo.EXPECT().GetByID(gomock.Any(), 7).
			Return(&domain.Session{ID: 7, PayerID: 1, EarnerID: 2}, nil)

		assert.ErrorIs(t, service.SetHint(context.Background(), 7, 99, HintTyping), ErrNotParticipant)
	})
}

func TestPendingRequests(t *testing.T) {
	service, m := NewMock(t)

	pending := []domain.Session{{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionRequested}}
	m.sessionRepo.EXPECT().FindStaleRequests(gomock.Any(), 2*time.Minute).Return(nil, nil)
	m.sessionRepo.EXPECT().FindPendingByEarner(gomock.Any(), 2).Return(pending, nil)

	got, err := service.PendingRequests(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, pending, got)
}

func TestActiveSessionAndHistory(t *testing.T) {
	service, m := NewMock(t)

	active := &domain.Session{ID: 7, PayerID: 1, EarnerID: 2, State: domain.SessionActive}
	m.sessionRepo.EXPECT().FindActiveByUser(gomock.Any(), 1).Return(active, nil)
	got, err := service.ActiveSession(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, active, got)

	history := []domain.Session{{ID: 5, State: domain.SessionEnded}}
	m.sessionRepo.EXPECT().FindEndedByUser(gomock.Any(), 1).Return(history, nil)
	gotHistory, err := service.History(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, history, gotHistory)
}

func TestRequestRepoFailure(t *testing.T) {
	service, m := NewMock(t)

	m.userRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.User{ID: 1, Role: domain.RolePayer}, nil)
	m.userRepo.EXPECT().FindByID(gomock.Any(), 2).Return(&domain.User{ID: 2, Role: domain.RoleEarner}, nil)
	m.presence.EXPECT().IsAvailableAsEarner(gomock.Any(), 2).Return(true, nil)
	m.rates.EXPECT().CurrentRate(gomock.Any()).Return(domain.Rate{CoinsPerMinute: 10}, nil)
	m.ledger.EXPECT().GetAccount(gomock.Any(), 1).Return(&domain.Account{ID: 1, CoinBalance: 25}, nil)
	m.sessionRepo.EXPECT().Create(gomock.Any(), 1, 2).Return(nil, errors.New("db error"))

	session, err := service.Request(context.Background(), 1, 2)
	assert.Error(t, err)
	assert.Nil(t, session)
}
