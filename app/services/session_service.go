package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/enrolld/enrolld/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Session service error constants
var (
	ErrSessionInvalid = errors.New("invalid session token")
	ErrSessionExpired = errors.New("session has expired")
)

// SessionService issues and validates the signed admin session token carried
// in the session cookie. The token holds a single boolean privilege flag;
// there are no roles.
type SessionService interface {
	Issue() (string, error)
	Validate(token string) error
	TTL() time.Duration
}

// SessionServiceImpl implements SessionService with HS256-signed JWTs
type SessionServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
}

// NewSessionService creates a session service. The signing secret must be at
// least 32 characters.
func NewSessionService(secret string, ttl time.Duration, issuer string) (SessionService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters")
	}
	if ttl <= 0 {
		ttl = utils.SessionTTL
	}
	return &SessionServiceImpl{
		secretKey: []byte(secret),
		ttl:       ttl,
		issuer:    issuer,
	}, nil
}

// Issue generates a signed token with the admin session flag set
func (s *SessionServiceImpl) Issue() (string, error) {
	now := utils.UTCNow()

	tokenID, err := generateTokenID()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"admin_logged_in": true,
		"jti":             tokenID,
		"iat":             now.Unix(),
		"exp":             now.Add(s.ttl).Unix(),
		"iss":             s.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Validate checks signature, expiry, issuer, and the admin session flag
func (s *SessionServiceImpl) Validate(tokenString string) error {
	if tokenString == "" {
		return ErrSessionInvalid
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrSessionExpired
		}
		return ErrSessionInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrSessionInvalid
	}
	if flag, ok := claims["admin_logged_in"].(bool); !ok || !flag {
		return ErrSessionInvalid
	}

	return nil
}

// TTL returns the configured session lifetime
func (s *SessionServiceImpl) TTL() time.Duration {
	return s.ttl
}

// generateTokenID produces a random jti for issued tokens
func generateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
