package repository

import (
	"context"

	"homeops-service/internal/domain/entity"
)

// ActivityRepository defines the interface for activities and their dated
// instances.
type ActivityRepository interface {
	List(ctx context.Context, memberID *uint) ([]entity.Activity, error)
	GetByID(ctx context.Context, id uint) (*entity.Activity, error)
	// FindByMemberAndName matches by case-insensitive name equality; returns
	// nil (not an error) when no activity matches.
	FindByMemberAndName(ctx context.Context, memberID uint, name string) (*entity.Activity, error)
	Create(ctx context.Context, activity *entity.Activity) error
	Update(ctx context.Context, activity *entity.Activity) error
	Delete(ctx context.Context, id uint) error

	CreateInstance(ctx context.Context, instance *entity.ActivityInstance) error
	ListInstances(ctx context.Context, activityID uint, limit int) ([]entity.ActivityInstance, error)
}
