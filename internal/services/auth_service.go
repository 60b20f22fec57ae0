package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
)

// OriginReact identifica logins iniciados pelo frontend (redirect com ?token=)
const OriginReact = "react"

// AuthService trata do login com Google e dos tokens de sessão
type AuthService struct {
	userRepo repositories.UserRepository
	provider ports.IdentityProvider
	tokens   ports.TokenIssuer
	uow      ports.UnitOfWork
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	provider ports.IdentityProvider,
	tokens ports.TokenIssuer,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		provider: provider,
		tokens:   tokens,
		uow:      uow,
		logger:   logger,
	}
}

// LoginStart é o resultado de iniciar o fluxo OAuth
type LoginStart struct {
	RedirectURL string
	Nonce       string // guardado em cookie e comparado no callback
}

// LoginResult é o resultado de um callback bem sucedido
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entities.User
	Origin    string
}

// BeginLogin gera o nonce e o URL de consentimento. state = nonce[:origin]
func (s *AuthService) BeginLogin(origin string) LoginStart {
	nonce := uuid.NewString()
	state := nonce
	if origin != "" {
		state += ":" + origin
	}
	return LoginStart{
		RedirectURL: s.provider.AuthCodeURL(state),
		Nonce:       nonce,
	}
}

// CompleteLogin valida o state, troca o código, encontra ou cria o utilizador e emite o JWT
func (s *AuthService) CompleteLogin(ctx context.Context, code, state, expectedNonce string) (*LoginResult, error) {
	nonce, origin, _ := strings.Cut(state, ":")
	if nonce == "" || expectedNonce == "" || nonce != expectedNonce {
		return nil, errors.ErrOAuthState
	}
	if code == "" {
		return nil, errors.ErrOAuthExchange
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("google exchange failed", "error", err)
		return nil, fmt.Errorf("%w: %v", errors.ErrOAuthExchange, err)
	}

	user, err := s.findOrCreate(ctx, identity)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID, "origin", origin)
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		Origin:    origin,
	}, nil
}

// IssueToken assina um JWT {id, email, role} para o utilizador
func (s *AuthService) IssueToken(user *entities.User) (string, time.Time, error) {
	return s.tokens.Issue(ports.TokenClaims{
		UserID: user.ID,
		Email:  user.Email.String(),
		Role:   string(user.Role),
	})
}

// Authenticate valida um bearer token e devolve o utilizador descrito nas claims.
// Não consulta a base de dados.
func (s *AuthService) Authenticate(token string) (*entities.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}

	role := entities.Role(claims.Role)
	if !role.IsValid() {
		return nil, errors.ErrUnauthorized
	}

	email, _ := valueobjects.NewEmail(claims.Email)
	return &entities.User{
		ID:    claims.UserID,
		Email: email,
		Role:  role,
	}, nil
}

func (s *AuthService) findOrCreate(ctx context.Context, identity *ports.ExternalIdentity) (*entities.User, error) {
	email, err := valueobjects.NewEmail(identity.Email)
	if err != nil {
		return nil, errors.ErrInvalidEmail
	}

	var user *entities.User
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err = s.userRepo.FindByEmail(txCtx, email.String())
		if err != nil {
			return err
		}

		if user != nil {
			if user.GoogleID == nil || *user.GoogleID == "" {
				subject := identity.Subject
				user.GoogleID = &subject
				return s.userRepo.Update(txCtx, user)
			}
			return nil
		}

		name := strings.TrimSpace(identity.Name)
		if name == "" {
			name = email.String()
		}
		subject := identity.Subject
		user = &entities.User{
			Name:     name,
			Email:    email,
			GoogleID: &subject,
			Role:     entities.RoleUser,
		}
		if err := s.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		s.logger.Info("user registered via google", "user_id", user.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
