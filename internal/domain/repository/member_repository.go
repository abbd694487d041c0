package repository

import (
	"context"

	"homeops-service/internal/domain/entity"
)

// MemberRepository defines the interface for family member operations.
type MemberRepository interface {
	// List returns all members ordered by role then name.
	List(ctx context.Context) ([]entity.FamilyMember, error)
	GetByID(ctx context.Context, id uint) (*entity.FamilyMember, error)
	Create(ctx context.Context, member *entity.FamilyMember) error
	Update(ctx context.Context, member *entity.FamilyMember) error
	Delete(ctx context.Context, id uint) error
}
