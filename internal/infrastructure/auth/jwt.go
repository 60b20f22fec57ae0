package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafabene/agendamento-backend/internal/domain/ports"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims é o payload do token de sessão: {id, email, role}
type Claims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer implementa ports.TokenIssuer com HS256
type JWTIssuer struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTIssuer cria um emissor com o segredo e a validade configurados
func NewJWTIssuer(secret string, expiry time.Duration) *JWTIssuer {
	return &JWTIssuer{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

func (j *JWTIssuer) Issue(claims ports.TokenClaims) (string, time.Time, error) {
	issuedAt := j.now()
	expiresAt := issuedAt.Add(j.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(claims.UserID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (j *JWTIssuer) Parse(raw string) (*ports.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == 0 {
		return nil, ErrInvalidToken
	}

	return &ports.TokenClaims{
		UserID: claims.ID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
