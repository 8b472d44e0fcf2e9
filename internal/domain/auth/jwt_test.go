package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/id"
)

func TestJWT_StoreBoundRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	storeID := id.New()
	user := NewUser("clerk", "hash", &storeID)

	token, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	sc, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, sc.UserID)
	assert.Equal(t, "clerk", sc.Username)
	assert.False(t, sc.IsGlobal())
	got, bound := sc.StoreID()
	require.True(t, bound)
	assert.Equal(t, storeID, got)
}

func TestJWT_GlobalRoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	user := NewUser("admin", "hash", nil)

	token, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	sc, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, sc.IsGlobal())
	assert.Equal(t, user.ID, sc.UserID)
}

func TestJWT_WrongSecret(t *testing.T) {
	issuer := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := issuer.GenerateAccessToken(NewUser("clerk", "hash", nil))
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.AccessTokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, _, err := svc.GenerateAccessToken(NewUser("clerk", "hash", nil))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}
