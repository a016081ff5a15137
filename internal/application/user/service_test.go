package user

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"testing"
	"time"

	"github.com/greenplate/greenplate/internal/domain/member"
	"github.com/greenplate/greenplate/internal/infrastructure/security"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryMemberRepo is an in-memory member store for service tests
type memoryMemberRepo struct {
	members map[string]*member.Member
}

func newMemoryMemberRepo() *memoryMemberRepo {
	return &memoryMemberRepo{members: make(map[string]*member.Member)}
}

func (r *memoryMemberRepo) Create(_ context.Context, m *member.Member) error {
	if _, ok := r.members[m.ID()]; ok {
		return apperrors.NewConflict("member id already exists")
	}
	r.members[m.ID()] = m
	return nil
}

func (r *memoryMemberRepo) FindByID(_ context.Context, id string) (*member.Member, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, apperrors.NewNotFound("member not found")
	}
	return m, nil
}

func (r *memoryMemberRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.members[id]
	return ok, nil
}

func digestHex(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}

func newTestService(t *testing.T, repo *memoryMemberRepo, enableTestLogin bool) (*Service, *security.NameCipher) {
	t.Helper()

	cipher, err := security.NewNameCipher("0123456789abcdef")
	require.NoError(t, err)
	tokens, err := security.NewTokenService("test-secret", time.Hour, zap.NewNop())
	require.NoError(t, err)

	return NewService(repo, tokens, cipher, enableTestLogin, zap.NewNop()), cipher
}

func TestSignupEncryptsDisplayName(t *testing.T) {
	repo := newMemoryMemberRepo()
	svc, cipher := newTestService(t, repo, false)
	ctx := context.Background()

	err := svc.Signup(ctx, SignupCommand{
		MemberID: "alice",
		Password: digestHex("secret"),
		Name:     "Alice",
		Tel:      "010-1234-5678",
	})
	require.NoError(t, err)

	stored := repo.members["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Alice", stored.EncryptedName(), "plaintext name never reaches storage")

	decrypted, err := cipher.Decrypt(stored.EncryptedName())
	require.NoError(t, err)
	assert.Equal(t, "Alice", decrypted)
}

func TestSignupTakenHandleConflicts(t *testing.T) {
	repo := newMemoryMemberRepo()
	svc, _ := newTestService(t, repo, false)
	ctx := context.Background()

	cmd := SignupCommand{MemberID: "alice", Password: digestHex("secret"), Name: "Alice", Tel: "010"}
	require.NoError(t, svc.Signup(ctx, cmd))

	err := svc.Signup(ctx, cmd)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}

func TestLoginHappyPath(t *testing.T) {
	repo := newMemoryMemberRepo()
	svc, _ := newTestService(t, repo, false)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, SignupCommand{
		MemberID: "alice",
		Password: digestHex("secret"),
		Name:     "Alice",
		Tel:      "010-1234-5678",
	}))

	result, err := svc.Login(ctx, LoginCommand{MemberID: "alice", Password: digestHex("secret")})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.MemberID)
	assert.Equal(t, "Alice", result.Name)
	assert.False(t, result.IsAdmin)
	assert.NotEmpty(t, result.Token)
}

func TestLoginFailures(t *testing.T) {
	repo := newMemoryMemberRepo()
	svc, _ := newTestService(t, repo, false)
	ctx := context.Background()

	require.NoError(t, svc.Signup(ctx, SignupCommand{
		MemberID: "alice", Password: digestHex("secret"), Name: "Alice", Tel: "010",
	}))

	t.Run("UnknownHandle", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginCommand{MemberID: "nobody", Password: digestHex("secret")})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginCommand{MemberID: "alice", Password: digestHex("wrong")})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
	})
}

func TestLoginDecryptFallback(t *testing.T) {
	// Legacy rows can hold names that predate the cipher. Login must not
	// fail; the raw stored value comes back as the display name.
	repo := newMemoryMemberRepo()
	svc, _ := newTestService(t, repo, false)
	ctx := context.Background()

	digest := digestHex("secret")
	repo.members["legacy"] = member.Reconstruct(
		"legacy", []byte(digest), "plain-legacy-name", "010", false, false, time.Now(),
	)

	result, err := svc.Login(ctx, LoginCommand{MemberID: "legacy", Password: digest})
	require.NoError(t, err)
	assert.Equal(t, "plain-legacy-name", result.Name)
}

func TestTestLoginFixture(t *testing.T) {
	t.Run("Enabled", func(t *testing.T) {
		svc, _ := newTestService(t, newMemoryMemberRepo(), true)

		result, err := svc.Login(context.Background(), LoginCommand{MemberID: "test", Password: "test"})
		require.NoError(t, err)
		assert.Equal(t, "테스트유저", result.Name)
		assert.False(t, result.IsAdmin)
		assert.Empty(t, result.Token, "the fixture account gets no session token")
	})

	t.Run("Disabled", func(t *testing.T) {
		svc, _ := newTestService(t, newMemoryMemberRepo(), false)

		_, err := svc.Login(context.Background(), LoginCommand{MemberID: "test", Password: "test"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	})
}
