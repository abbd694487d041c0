package repository

import (
	"context"

	"homeops-service/internal/domain/entity"
)

// TravelRepository defines the interface for travel record operations.
type TravelRepository interface {
	List(ctx context.Context, filter entity.TravelFilter) ([]entity.Travel, error)
	ListByMember(ctx context.Context, memberID uint) ([]entity.Travel, error)
	GetByID(ctx context.Context, id uint) (*entity.Travel, error)
	Create(ctx context.Context, travel *entity.Travel) error
	Update(ctx context.Context, travel *entity.Travel) error
	Delete(ctx context.Context, id uint) error
	// ExistsTrip reports whether a record already exists for the natural key
	// (member, departure date, destination) used by calendar-sync dedup.
	ExistsTrip(ctx context.Context, memberID uint, departureDate, destination string) (bool, error)
}
