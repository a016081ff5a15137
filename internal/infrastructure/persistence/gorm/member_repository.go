package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/greenplate/greenplate/internal/domain/member"
	"github.com/greenplate/greenplate/internal/ports/outbound"
	apperrors "github.com/greenplate/greenplate/pkg/errors"
	"gorm.io/gorm"
)

// MemberRepository implements the member repository interface using GORM
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) outbound.MemberRepository {
	return &MemberRepository{db: db}
}

// Create persists a new member
func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	model := MemberToModel(m)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return apperrors.NewConflict("member id already exists").WithCause(result.Error)
		}
		return apperrors.NewDatabase("failed to create member", "insert member", result.Error)
	}
	return nil
}

// FindByID finds a member by handle
func (r *MemberRepository) FindByID(ctx context.Context, id string) (*member.Member, error) {
	var model MemberModel

	result := r.db.WithContext(ctx).First(&model, "member_id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("member not found")
		}
		return nil, apperrors.NewDatabase("failed to load member", "select member", result.Error)
	}
	return ModelToMember(&model), nil
}

// Exists checks whether a handle is already taken
func (r *MemberRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).Model(&MemberModel{}).Where("member_id = ?", id).Count(&count)
	if result.Error != nil {
		return false, apperrors.NewDatabase("failed to check member", "count members", result.Error)
	}
	return count > 0, nil
}

// isDuplicateKey detects unique-constraint violations across the drivers we
// run against (postgres in production, sqlite in tests)
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
