package repo

import (
	"github.com/bala-dotcom/texme/internal/pg"
	accountrepo "github.com/bala-dotcom/texme/internal/repo/account-repo"
	presencerepo "github.com/bala-dotcom/texme/internal/repo/presence-repo"
	raterepo "github.com/bala-dotcom/texme/internal/repo/rate-repo"
	sessionrepo "github.com/bala-dotcom/texme/internal/repo/session-repo"
	userrepo "github.com/bala-dotcom/texme/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo     *userrepo.Repository
	AccountRepo  *accountrepo.Repository
	SessionRepo  *sessionrepo.Repository
	PresenceRepo *presencerepo.Repository
	RateRepo     *raterepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		UserRepo:     userrepo.New(conn),
		AccountRepo:  accountrepo.New(conn, txManager),
		SessionRepo:  sessionrepo.New(conn, txManager),
		PresenceRepo: presencerepo.New(conn),
		RateRepo:     raterepo.New(conn),
	}
}
