package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrInvalidToken is returned for any token that fails verification.
// Expired and tampered tokens surface identically on purpose: the caller
// learns nothing about why a rejected token was rejected.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the session token payload: exactly the member handle and the
// admin flag, nothing else.
type Claims struct {
	MemberID string `json:"member_id"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens (HS256). Tokens
// are self-contained; there is no server-side revocation list, so a token
// stays valid until its expiry.
type TokenService struct {
	secret     []byte
	expiration time.Duration
}

// NewTokenService creates a token service. An empty secret is tolerated
// only outside production (config validation enforces that); in that case
// a random per-process secret is generated, which invalidates outstanding
// sessions on every restart.
func NewTokenService(secret string, expiration time.Duration, logger *zap.Logger) (*TokenService, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral signing secret: %w", err)
		}
		logger.Warn("auth.jwt_secret not configured, using ephemeral signing secret; sessions will not survive a restart")
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &TokenService{secret: key, expiration: expiration}, nil
}

// Issue mints a session token for the given identity
func (s *TokenService) Issue(memberID string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		MemberID: memberID,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, returning its claims.
// Every failure mode collapses into ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
