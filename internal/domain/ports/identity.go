package ports

import (
	"context"
	"time"
)

// ExternalIdentity é o perfil devolvido pelo fornecedor OAuth
type ExternalIdentity struct {
	Subject string // google_id
	Email   string
	Name    string
}

// IdentityProvider abstrai o fluxo OAuth2 (Google)
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*ExternalIdentity, error)
}

// TokenClaims é o conteúdo do JWT de sessão
type TokenClaims struct {
	UserID uint
	Email  string
	Role   string
}

// TokenIssuer emite e valida tokens de sessão
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, time.Time, error)
	Parse(token string) (*TokenClaims, error)
}
