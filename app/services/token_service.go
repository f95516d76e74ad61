// Package services provides external service integrations and technical concerns like spreadsheet access and tokens
package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/edzeame-del/ghana-cargo-logistics/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token has been revoked")
)

// TokenService handles admin session token generation and validation
type TokenService interface {
	GenerateSessionToken(userID uint) (string, error)
	ValidateSessionToken(token string) (*SessionClaims, error)
	RevokeToken(token string) error
}

// SessionClaims represents the claims in a session JWT
type SessionClaims struct {
	UserID    uint      `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenID   string    `json:"jti"`
}

// TokenServiceImpl implements TokenService with HS256 signing and an
// in-memory revocation list. Revoked entries are pruned once they would
// have expired anyway, so the list stays bounded by the session TTL.
type TokenServiceImpl struct {
	tokenTTL  time.Duration
	secretKey []byte
	issuer    string
	audience  string

	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> token expiry
}

// NewTokenService creates a new token service
func NewTokenService(tokenTTL time.Duration, issuer, audience, secretKey string) (TokenService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("secret key is required")
	}

	return &TokenServiceImpl{
		tokenTTL:  tokenTTL,
		secretKey: []byte(secretKey),
		issuer:    issuer,
		audience:  audience,
		revoked:   make(map[string]time.Time),
	}, nil
}

// GenerateSessionToken issues a signed session JWT for an admin user
func (s *TokenServiceImpl) GenerateSessionToken(userID uint) (string, error) {
	now := utils.UTCNow()

	tokenID, err := generateTokenID()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": "session",
		"jti":        tokenID,
		"iat":        now.Unix(),
		"exp":        now.Add(s.tokenTTL).Unix(),
		"iss":        s.issuer,
		"aud":        s.audience,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateSessionToken validates a session JWT and returns its claims
func (s *TokenServiceImpl) ValidateSessionToken(token string) (*SessionClaims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") || strings.Contains(err.Error(), "exp") {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsedToken.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	tokenID, ok := claims["jti"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}
	issuedAt, ok := claims["iat"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	expiresAt, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	if utils.UTCNow().After(time.Unix(int64(expiresAt), 0)) {
		return nil, ErrTokenExpired
	}
	if s.isRevoked(tokenID) {
		return nil, ErrTokenRevoked
	}

	return &SessionClaims{
		UserID:    uint(userID),
		TokenID:   tokenID,
		IssuedAt:  time.Unix(int64(issuedAt), 0),
		ExpiresAt: time.Unix(int64(expiresAt), 0),
	}, nil
}

// RevokeToken invalidates a session token until its natural expiry
func (s *TokenServiceImpl) RevokeToken(token string) error {
	claims, err := s.ValidateSessionToken(token)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[claims.TokenID] = claims.ExpiresAt
	s.pruneLocked()

	return nil
}

func (s *TokenServiceImpl) isRevoked(tokenID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, revoked := s.revoked[tokenID]
	return revoked
}

// pruneLocked drops revocation entries for tokens already expired.
// Caller must hold the write lock.
func (s *TokenServiceImpl) pruneLocked() {
	now := utils.UTCNow()
	for jti, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, jti)
		}
	}
}

// generateTokenID generates a unique token ID
func generateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}
