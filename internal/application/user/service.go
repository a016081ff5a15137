// Package user provides the application layer for member accounts:
// signup and the login flow (credential verification, session issuance,
// display-name decryption).
package user

import (
	"context"

	"github.com/greenplate/greenplate/internal/domain/member"
	"github.com/greenplate/greenplate/internal/infrastructure/security"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"go.uber.org/zap"
)

// Service implements the member account use cases
type Service struct {
	members         outbound.MemberRepository
	tokens          *security.TokenService
	cipher          *security.NameCipher
	enableTestLogin bool
	logger          *zap.Logger
}

// NewService creates a new user service
func NewService(
	members outbound.MemberRepository,
	tokens *security.TokenService,
	cipher *security.NameCipher,
	enableTestLogin bool,
	logger *zap.Logger,
) *Service {
	return &Service{
		members:         members,
		tokens:          tokens,
		cipher:          cipher,
		enableTestLogin: enableTestLogin,
		logger:          logger.Named("user-service"),
	}
}

// SignupCommand contains signup data. Password is the client-computed
// SHA-512 hex digest, never a plaintext password.
type SignupCommand struct {
	MemberID string `json:"member_id" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Tel      string `json:"tel" validate:"required"`
}

// LoginCommand contains login data; Password is pre-hashed like at signup
type LoginCommand struct {
	MemberID string `json:"member_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the session token and the identity the client renders
type LoginResult struct {
	Token    string
	MemberID string
	Name     string
	IsAdmin  bool
}

// Signup registers a new member. The display name is encrypted before it
// reaches storage; the credential is stored in hex-text encoding.
func (s *Service) Signup(ctx context.Context, cmd SignupCommand) error {
	taken, err := s.members.Exists(ctx, cmd.MemberID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewConflict("member id already exists")
	}

	encryptedName := s.cipher.Encrypt(cmd.Name)
	m := member.New(cmd.MemberID, cmd.Password, encryptedName, cmd.Tel)

	if err := s.members.Create(ctx, m); err != nil {
		return err
	}

	s.logger.Info("member registered", zap.String("member_id", cmd.MemberID))
	return nil
}

// Login verifies the submitted credential, decrypts the stored display name
// and issues a session token. An unknown handle surfaces as not-found, a
// credential mismatch as unauthorized; a name that fails to decrypt falls
// back to its raw stored value and never fails the login.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if s.enableTestLogin && cmd.MemberID == "test" && cmd.Password == "test" {
		// Development fixture account: no token is issued, so it cannot
		// reach protected endpoints.
		return &LoginResult{MemberID: "test", Name: "테스트유저", IsAdmin: false}, nil
	}

	m, err := s.members.FindByID(ctx, cmd.MemberID)
	if err != nil {
		return nil, err
	}

	if !m.VerifyCredential(cmd.Password) {
		s.logger.Warn("credential mismatch", zap.String("member_id", cmd.MemberID))
		return nil, apperrors.NewUnauthorized("credential mismatch")
	}

	name := m.EncryptedName()
	if name != "" {
		decrypted, err := s.cipher.Decrypt(name)
		if err != nil {
			s.logger.Warn("display name decryption failed, using stored value",
				zap.String("member_id", m.ID()),
				zap.Error(err),
			)
		} else {
			name = decrypted
		}
	}

	token, err := s.tokens.Issue(m.ID(), m.IsAdmin())
	if err != nil {
		return nil, apperrors.NewInternal("failed to issue session token").WithCause(err)
	}

	s.logger.Info("member logged in",
		zap.String("member_id", m.ID()),
		zap.Bool("is_admin", m.IsAdmin()),
	)

	return &LoginResult{
		Token:    token,
		MemberID: m.ID(),
		Name:     name,
		IsAdmin:  m.IsAdmin(),
	}, nil
}
