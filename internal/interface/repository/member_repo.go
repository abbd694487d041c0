package repository

import (
	"context"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormMemberRepository implements the MemberRepository interface
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GORM member repository
func NewGormMemberRepository(db *gorm.DB) repository.MemberRepository {
	return &GormMemberRepository{
		db: db,
	}
}

// FamilyMembers GORM model for database mapping
type FamilyMembers struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"column:name;uniqueIndex"`
	Role      string `gorm:"column:role"`
	Email     string `gorm:"column:email"`
	Phone     string `gorm:"column:phone"`
	Color     string `gorm:"column:color"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (FamilyMembers) TableName() string {
	return "family_members"
}

func (m FamilyMembers) toEntity() entity.FamilyMember {
	return entity.FamilyMember{
		ID:        m.ID,
		Name:      m.Name,
		Role:      m.Role,
		Email:     m.Email,
		Phone:     m.Phone,
		Color:     m.Color,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// List returns all members ordered by role then name
func (r *GormMemberRepository) List(ctx context.Context) ([]entity.FamilyMember, error) {
	var models []FamilyMembers
	result := r.db.WithContext(ctx).Order("role, name").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]entity.FamilyMember, 0, len(models))
	for _, m := range models {
		members = append(members, m.toEntity())
	}
	return members, nil
}

// GetByID finds a member by id
func (r *GormMemberRepository) GetByID(ctx context.Context, id uint) (*entity.FamilyMember, error) {
	var model FamilyMembers
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		return nil, result.Error
	}

	member := model.toEntity()
	return &member, nil
}

// Create inserts a new member
func (r *GormMemberRepository) Create(ctx context.Context, member *entity.FamilyMember) error {
	model := FamilyMembers{
		Name:  member.Name,
		Role:  member.Role,
		Email: member.Email,
		Phone: member.Phone,
		Color: member.Color,
	}
	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	*member = model.toEntity()
	return nil
}

// Update saves member fields
func (r *GormMemberRepository) Update(ctx context.Context, member *entity.FamilyMember) error {
	model := FamilyMembers{
		ID:        member.ID,
		Name:      member.Name,
		Role:      member.Role,
		Email:     member.Email,
		Phone:     member.Phone,
		Color:     member.Color,
		CreatedAt: member.CreatedAt,
	}
	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}

	*member = model.toEntity()
	return nil
}

// Delete removes a member
func (r *GormMemberRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&FamilyMembers{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
