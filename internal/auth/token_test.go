package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hustle-village/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-1",
		Email: "ama@ashesi.edu.gh",
		Role:  domain.UserRoleSeller,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60, 60*24)

	pair, err := tm.GenerateTokenPair(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	access, err := tm.Verify(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ama@ashesi.edu.gh", access.Email)
	assert.Equal(t, domain.TokenKindAccess, access.Kind)
	assert.Equal(t, "user-1", access.Subject)

	refresh, err := tm.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenKindRefresh, refresh.Kind)
}

func TestTokenVerifyRejections(t *testing.T) {
	tm := NewTokenManager("test-secret", 60, 60*24)

	t.Run("garbage token", func(t *testing.T) {
		_, err := tm.Verify("not.a.token")
		assert.Error(t, err)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", 60, 60*24)
		pair, err := other.GenerateTokenPair(testUser())
		require.NoError(t, err)

		_, err = tm.Verify(pair.AccessToken)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("expired token maps to ErrTokenExpired", func(t *testing.T) {
		claims := &Claims{
			Email: "ama@ashesi.edu.gh",
			Kind:  domain.TokenKindAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = tm.Verify(signed)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
			Email: "ama@ashesi.edu.gh",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = tm.Verify(signed)
		assert.Error(t, err)
	})

	t.Run("token without an email claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			Kind: domain.TokenKindAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = tm.Verify(signed)
		assert.Error(t, err)
	})
}
