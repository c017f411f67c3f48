package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/bala-dotcom/texme/internal/billing"
	"github.com/bala-dotcom/texme/internal/config"
	"github.com/bala-dotcom/texme/internal/handlers"
	"github.com/bala-dotcom/texme/internal/hints"
	"github.com/bala-dotcom/texme/internal/notify"
	"github.com/bala-dotcom/texme/internal/pg"
	"github.com/bala-dotcom/texme/internal/repo"
	"github.com/bala-dotcom/texme/internal/service"
	"github.com/bala-dotcom/texme/pkg/clients"
	"github.com/bala-dotcom/texme/pkg/logger"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg   *config.Config
	api   *handlers.Handlers
	srv   *service.Services
	repo  *repo.Repositories
	clock *billing.Service

	errCh chan error
	wg    sync.WaitGroup
	ready bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	conn := pg.New(pool)
	a.cfg = cfg
	a.repo = repo.New(conn, txManager)

	notifier := notify.New(cfg, clients.NewHTTPClient())
	hintStore := hints.New()

	a.srv = service.New(a.repo, txManager, notifier, hintStore, cfg.RequestTTL)
	a.api = handlers.New(a.srv)
	a.clock = billing.New(cfg, a.repo.SessionRepo, a.srv.Ledger, a.srv.Sessions, txManager)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startBillingClock(ctx)
	a.startStaleSweeper(ctx)
	a.startLedgerAuditor(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startBillingClock(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.clock.Start(ctx)
	}()
}

// startStaleSweeper expires requested sessions nobody answered.
func (a *Application) startStaleSweeper(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ticker := time.NewTicker(a.cfg.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := a.srv.Sessions.SweepStaleRequests(ctx); err != nil {
					zap.L().Error("stale request sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// startLedgerAuditor replays the ledger against the cached balances and
// freezes any account that drifted.
func (a *Application) startLedgerAuditor(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ticker := time.NewTicker(a.cfg.AuditInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := a.srv.Ledger.AuditAll(ctx); err != nil {
					zap.L().Error("ledger audit sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	return appErr
}
