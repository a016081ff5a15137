package security

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// TokenServiceTestSuite provides a test suite for TokenService
type TokenServiceTestSuite struct {
	suite.Suite
	tokens *TokenService
}

func (suite *TokenServiceTestSuite) SetupSuite() {
	tokens, err := NewTokenService("test-secret-key-for-testing-only", 24*time.Hour, zap.NewNop())
	suite.Require().NoError(err)
	suite.tokens = tokens
}

func (suite *TokenServiceTestSuite) TestIssueAndVerify() {
	suite.Run("RegularMember", func() {
		token, err := suite.tokens.Issue("alice", false)
		suite.Require().NoError(err)
		suite.NotEmpty(token)

		claims, err := suite.tokens.Verify(token)
		suite.Require().NoError(err)
		suite.Equal("alice", claims.MemberID)
		suite.False(claims.IsAdmin)
	})

	suite.Run("AdminMember", func() {
		token, err := suite.tokens.Issue("admin", true)
		suite.Require().NoError(err)

		claims, err := suite.tokens.Verify(token)
		suite.Require().NoError(err)
		suite.Equal("admin", claims.MemberID)
		suite.True(claims.IsAdmin)
	})

	suite.Run("ExpirySetToValidityWindow", func() {
		before := time.Now()
		token, err := suite.tokens.Issue("alice", false)
		suite.Require().NoError(err)

		claims, err := suite.tokens.Verify(token)
		suite.Require().NoError(err)

		expiry := claims.ExpiresAt.Time
		suite.WithinDuration(before.Add(24*time.Hour), expiry, time.Minute)
	})
}

func (suite *TokenServiceTestSuite) TestVerifyRejections() {
	suite.Run("TamperedToken", func() {
		token, err := suite.tokens.Issue("alice", false)
		suite.Require().NoError(err)

		_, err = suite.tokens.Verify(token + "x")
		suite.ErrorIs(err, ErrInvalidToken)
	})

	suite.Run("Garbage", func() {
		_, err := suite.tokens.Verify("not-a-token")
		suite.ErrorIs(err, ErrInvalidToken)
	})

	suite.Run("WrongSecret", func() {
		other, err := NewTokenService("a-completely-different-secret-key", 24*time.Hour, zap.NewNop())
		suite.Require().NoError(err)

		token, err := other.Issue("alice", false)
		suite.Require().NoError(err)

		_, err = suite.tokens.Verify(token)
		suite.ErrorIs(err, ErrInvalidToken)
	})
}

func (suite *TokenServiceTestSuite) TestExpiredTokenRejected() {
	// Build the service directly so the token is already expired when
	// verified. Expired and tampered tokens must be indistinguishable.
	expired := &TokenService{secret: []byte("test-secret-key-for-testing-only"), expiration: -time.Hour}

	token, err := expired.Issue("alice", false)
	suite.Require().NoError(err)

	verifier := &TokenService{secret: []byte("test-secret-key-for-testing-only"), expiration: 24 * time.Hour}
	_, err = verifier.Verify(token)
	suite.ErrorIs(err, ErrInvalidToken)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func TestIssuedPayloadShape(t *testing.T) {
	// The payload carries exactly the identity, the admin flag and the
	// time claims; no extra registered claims sneak in.
	tokens, err := NewTokenService("test-secret-key-for-testing-only", time.Hour, zap.NewNop())
	require.NoError(t, err)

	token, err := tokens.Issue("alice", true)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"member_id", "is_admin", "iat", "exp"}, keys)
	assert.Equal(t, "alice", raw["member_id"])
	assert.Equal(t, true, raw["is_admin"])
}

func TestEphemeralSecret(t *testing.T) {
	// Without a configured secret the service still works within one
	// process; tokens just do not survive restarts.
	tokens, err := NewTokenService("", time.Hour, zap.NewNop())
	require.NoError(t, err)

	token, err := tokens.Issue("alice", false)
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.MemberID)

	other, err := NewTokenService("", time.Hour, zap.NewNop())
	require.NoError(t, err)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
