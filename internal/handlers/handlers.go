package handlers

import (
	"net/http"

	_ "github.com/bala-dotcom/texme/docs"
	authhandlers "github.com/bala-dotcom/texme/internal/handlers/auth"
	sessionhandlers "github.com/bala-dotcom/texme/internal/handlers/session"
	wallethandlers "github.com/bala-dotcom/texme/internal/handlers/wallet"
	"github.com/bala-dotcom/texme/internal/service"
	"github.com/bala-dotcom/texme/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type SessionHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Decline(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Typing(w http.ResponseWriter, r *http.Request)
	Recording(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Active(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Purchase(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	SessionHandler SessionHandler
	WalletHandler  WalletHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		SessionHandler: sessionhandlers.New(s.SessionService),
		WalletHandler:  wallethandlers.New(s.WalletService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.AuthHandler.Register)
		r.Post("/auth/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", h.SessionHandler.Request)
				r.Get("/pending", h.SessionHandler.Pending)
				r.Get("/active", h.SessionHandler.Active)
				r.Get("/history", h.SessionHandler.History)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/accept", h.SessionHandler.Accept)
					r.Post("/decline", h.SessionHandler.Decline)
					r.Post("/cancel", h.SessionHandler.Cancel)
					r.Post("/end", h.SessionHandler.End)
					r.Get("/status", h.SessionHandler.Status)
					r.Post("/typing", h.SessionHandler.Typing)
					r.Post("/recording", h.SessionHandler.Recording)
				})
			})
			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", h.WalletHandler.GetBalance)
				r.Post("/purchase", h.WalletHandler.Purchase)
				r.Post("/withdraw", h.WalletHandler.Withdraw)
				r.Get("/history", h.WalletHandler.History)
			})
		})
	})

	return r
}
