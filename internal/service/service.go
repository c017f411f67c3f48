package service

import (
	"time"

	"github.com/bala-dotcom/texme/internal/handlers/auth"
	"github.com/bala-dotcom/texme/internal/handlers/session"
	"github.com/bala-dotcom/texme/internal/handlers/wallet"

	pkgauth "github.com/bala-dotcom/texme/pkg/auth"

	"github.com/bala-dotcom/texme/internal/pg"
	"github.com/bala-dotcom/texme/internal/repo"
	"github.com/bala-dotcom/texme/internal/service/authservice"
	"github.com/bala-dotcom/texme/internal/service/ledgerservice"
	"github.com/bala-dotcom/texme/internal/service/presenceservice"
	"github.com/bala-dotcom/texme/internal/service/rateservice"
	"github.com/bala-dotcom/texme/internal/service/sessionservice"
	"github.com/bala-dotcom/texme/internal/service/walletservice"
)

type Services struct {
	AuthService    auth.Service
	SessionService session.Service
	WalletService  wallet.Service

	Ledger   *ledgerservice.Service
	Sessions *sessionservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, notifier sessionservice.Notifier, hints sessionservice.Hints, requestTTL time.Duration) *Services {
	ledgerService := ledgerservice.New(repo.AccountRepo, txManager)
	rateService := rateservice.New(repo.RateRepo)
	presenceService := presenceservice.New(repo.PresenceRepo)
	sessionService := sessionservice.New(repo.SessionRepo, presenceService, ledgerService, rateService, repo.UserRepo, notifier, hints, txManager, requestTTL)
	walletService := walletservice.New(ledgerService, rateService)
	authService := authservice.New(repo.UserRepo, ledgerService, presenceService, &pkgauth.HashService{}, &pkgauth.JWTService{}, txManager)

	return &Services{
		AuthService:    authService,
		SessionService: sessionService,
		WalletService:  walletService,
		Ledger:         ledgerService,
		Sessions:       sessionService,
	}
}
