package security

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	mockcore "github.com/amirhossein-jamali/league-wallet/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, hasher.Compare(hash, "secret1"))
	assert.ErrorIs(t, hasher.Compare(hash, "wrong"), errs.ErrInvalidCredentials)
	assert.ErrorIs(t, hasher.Compare("", "secret1"), errs.ErrInvalidCredentials)
}

func TestJWTService(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Round trip", func(t *testing.T) {
		mockTime := mockcore.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(issuedAt).Maybe()

		svc := NewJWTService("test-secret", time.Hour, mockTime)
		token, expiresAt, err := svc.Issue("01711111111", "admin")
		require.NoError(t, err)
		assert.Equal(t, issuedAt.Add(time.Hour), expiresAt)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "01711111111", claims.Subject)
		assert.Equal(t, "admin", claims.Role)
		assert.True(t, expiresAt.Equal(claims.ExpiresAt))
	})

	t.Run("Expired", func(t *testing.T) {
		mockTime := mockcore.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(issuedAt).Once()

		svc := NewJWTService("test-secret", time.Hour, mockTime)
		token, _, err := svc.Issue("01711111111", "player")
		require.NoError(t, err)

		mockTime.EXPECT().Now().Return(issuedAt.Add(2 * time.Hour)).Maybe()
		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		mockTime := mockcore.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(issuedAt).Maybe()

		token, _, err := NewJWTService("a", time.Hour, mockTime).Issue("01711111111", "player")
		require.NoError(t, err)

		_, err = NewJWTService("b", time.Hour, mockTime).Verify(token)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Garbage", func(t *testing.T) {
		mockTime := mockcore.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(issuedAt).Maybe()

		_, err := NewJWTService("a", time.Hour, mockTime).Verify("not.a.token")
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}
