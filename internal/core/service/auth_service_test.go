package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_IssueAndValidate(t *testing.T) {
	svc := NewAuthService("test-secret", "HS256")

	token, err := svc.IssueToken("ops", time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, "storeapi", claims.Issuer)
}

func TestAuthService_RejectsForeignTokens(t *testing.T) {
	token, err := NewAuthService("other-secret", "HS256").IssueToken("ops", time.Minute)
	require.NoError(t, err)

	_, err = NewAuthService("test-secret", "HS256").ValidateToken(token)
	assert.Error(t, err)

	hs512, err := NewAuthService("test-secret", "HS512").IssueToken("ops", time.Minute)
	require.NoError(t, err)

	_, err = NewAuthService("test-secret", "HS256").ValidateToken(hs512)
	assert.Error(t, err)
}

func TestAuthService_NonPositiveTTLUsesDefault(t *testing.T) {
	svc := NewAuthService("test-secret", "HS256")

	token, err := svc.IssueToken("ops", -time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(TokenExpirationHours*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestAuthService_RejectsGarbage(t *testing.T) {
	_, err := NewAuthService("test-secret", "HS256").ValidateToken("not-a-jwt")
	assert.Error(t, err)
}
