package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "test-session-secret-with-32-chars!!"

func createTestSessionService(t *testing.T) SessionService {
	t.Helper()
	svc, err := NewSessionService(testSessionSecret, time.Hour, "test-issuer")
	require.NoError(t, err)
	return svc
}

func TestNewSessionService(t *testing.T) {
	tests := []struct {
		name        string
		secret      string
		expectError bool
	}{
		{"valid secret", testSessionSecret, false},
		{"exactly 32 chars", "0123456789abcdef0123456789abcdef", false},
		{"too short", "short-secret", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewSessionService(tt.secret, time.Hour, "test-issuer")
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestSessionIssueAndValidate(t *testing.T) {
	svc := createTestSessionService(t)

	token, err := svc.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, svc.Validate(token))
}

func TestSessionValidate_Invalid(t *testing.T) {
	svc := createTestSessionService(t)

	token, err := svc.Issue()
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"tampered token", token[:len(token)-4] + "AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Validate(tt.token), ErrSessionInvalid)
		})
	}
}

func TestSessionValidate_WrongKey(t *testing.T) {
	svc := createTestSessionService(t)
	other, err := NewSessionService("another-session-secret-32-chars!!!!", time.Hour, "test-issuer")
	require.NoError(t, err)

	token, err := other.Issue()
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Validate(token), ErrSessionInvalid)
}

func TestSessionValidate_WrongIssuer(t *testing.T) {
	svc := createTestSessionService(t)
	other, err := NewSessionService(testSessionSecret, time.Hour, "other-issuer")
	require.NoError(t, err)

	token, err := other.Issue()
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Validate(token), ErrSessionInvalid)
}

func TestSessionValidate_Expired(t *testing.T) {
	// Constructed directly so the TTL can be negative
	svc := &SessionServiceImpl{
		secretKey: []byte(testSessionSecret),
		ttl:       -2 * time.Minute,
		issuer:    "test-issuer",
	}

	token, err := svc.Issue()
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Validate(token), ErrSessionExpired)
}

func TestSessionTokensAreUnique(t *testing.T) {
	svc := createTestSessionService(t)

	first, err := svc.Issue()
	require.NoError(t, err)
	second, err := svc.Issue()
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each issued token carries a fresh jti")
}

func TestSessionTTL(t *testing.T) {
	svc := createTestSessionService(t)
	assert.Equal(t, time.Hour, svc.TTL())
}
