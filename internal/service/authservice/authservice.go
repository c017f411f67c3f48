package authservice

import (
	"context"
	"errors"
	"time"

	"github.com/bala-dotcom/texme/internal/domain"
	"github.com/bala-dotcom/texme/internal/pg"
	"github.com/bala-dotcom/texme/pkg/auth"
	"go.uber.org/zap"
)

type Repo interface {
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type Ledger interface {
	CreateAccount(ctx context.Context, userID int) (*domain.Account, error)
}

type Presence interface {
	Track(ctx context.Context, userID int) error
}

var (
	ErrLoginTaken  = errors.New("username already taken")
	ErrInvalidRole = errors.New("role must be payer or earner")
)

type Service struct {
	userRepo    Repo
	ledger      Ledger
	presence    Presence
	hashService auth.HashServiceInterface
	jwtService  auth.JWTServiceInterface
	txManager   pg.TXManager
}

func New(repo Repo, ledger Ledger, presence Presence, hashService auth.HashServiceInterface, jwtService auth.JWTServiceInterface, txManager pg.TXManager) *Service {
	return &Service{
		userRepo:    repo,
		ledger:      ledger,
		presence:    presence,
		hashService: hashService,
		jwtService:  jwtService,
		txManager:   txManager,
	}
}

// Register creates the user together with its account and presence rows, so
// every user the core sees has exactly one of each.
func (s *Service) Register(ctx context.Context, login, password string, role domain.Role) (*domain.User, error) {
	if role != domain.RolePayer && role != domain.RoleEarner {
		return nil, ErrInvalidRole
	}

	existingUser, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists, login: ", zap.String("login", login))
		return nil, ErrLoginTaken
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, err
	}

	user := &domain.User{
		Login:        login,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}
		if _, err := s.ledger.CreateAccount(ctx, user.ID); err != nil {
			return err
		}
		return s.presence.Track(ctx, user.ID)
	})
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.String("login", login), zap.String("role", string(role)))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil || user == nil {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, errors.New("invalid credentials")
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		zap.L().Error("invalid credentials", zap.Error(err))
		return nil, errors.New("invalid credentials")
	}
	zap.L().Info("user successfully authenticated", zap.String("login", login))
	return user, nil
}

func (s *Service) GenerateToken(userID int) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	token, err := s.jwtService.GenerateJWT(userID, expirationTime)
	if err != nil {
		zap.L().Error("can't generate token: ", zap.Error(err))
		return "", err
	}
	return token, nil
}
