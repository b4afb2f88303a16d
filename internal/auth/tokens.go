package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bookshare/bookshare/internal/config"
)

// Token types carried in the custom claim. Refresh tokens are only
// accepted by the refresh and logout endpoints; access tokens only by
// the bearer middleware.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenRevoked  = errors.New("token has been revoked")
	ErrWrongTokenUse = errors.New("token cannot be used for this operation")
)

// Claims are the JWT claims issued by this service.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uint   `json:"user_id"`
	TokenType string `json:"token_type"`
}

// TokenPair is the response of a successful credential exchange.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenManager issues and verifies HS256-signed tokens.
type TokenManager struct {
	secret          []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

// NewTokenManager creates a token manager from the auth configuration.
func NewTokenManager(cfg config.Auth) *TokenManager {
	return &TokenManager{
		secret:          []byte(cfg.JWTSecret),
		accessLifetime:  cfg.AccessTokenLifetime,
		refreshLifetime: cfg.RefreshTokenLifetime,
	}
}

// IssuePair creates a fresh access/refresh token pair for the user.
func (m *TokenManager) IssuePair(userID uint) (*TokenPair, error) {
	access, err := m.issue(userID, TokenTypeAccess, m.accessLifetime)
	if err != nil {
		return nil, err
	}
	refresh, err := m.issue(userID, TokenTypeRefresh, m.refreshLifetime)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess creates a new access token, used by the refresh flow.
func (m *TokenManager) IssueAccess(userID uint) (string, error) {
	return m.issue(userID, TokenTypeAccess, m.accessLifetime)
}

func (m *TokenManager) issue(userID uint, tokenType string, lifetime time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		UserID:    userID,
		TokenType: tokenType,
	})
	return token.SignedString(m.secret)
}

// Verify parses and validates a token of the expected type. Signature,
// expiry and type failures all come back as ErrInvalidToken or
// ErrWrongTokenUse; callers render them uniformly.
func (m *TokenManager) Verify(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expectedType {
		return nil, ErrWrongTokenUse
	}
	return claims, nil
}
