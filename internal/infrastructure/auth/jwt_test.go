package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/agendamento-backend/internal/domain/ports"
)

func TestJWTIssuer(t *testing.T) {
	issuer := NewJWTIssuer("segredo", time.Hour)

	t.Run("emite e valida o token", func(t *testing.T) {
		token, expiresAt, err := issuer.Issue(ports.TokenClaims{UserID: 7, Email: "ana@example.com", Role: "admin"})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("rejeita token expirado", func(t *testing.T) {
		expired := NewJWTIssuer("segredo", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, _, err := expired.Issue(ports.TokenClaims{UserID: 7, Role: "user"})
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("rejeita segredo diferente", func(t *testing.T) {
		token, _, err := NewJWTIssuer("outro", time.Hour).Issue(ports.TokenClaims{UserID: 7, Role: "user"})
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejeita algoritmo none", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: 7, Role: "admin"})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejeita lixo", func(t *testing.T) {
		_, err := issuer.Parse("nao.e.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
