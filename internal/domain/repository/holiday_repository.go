package repository

import (
	"context"

	"homeops-service/internal/domain/entity"
)

// HolidayRepository defines the interface for the federal holiday store.
type HolidayRepository interface {
	List(ctx context.Context, year int, startDate, endDate string) ([]entity.Holiday, error)
	CountByYear(ctx context.Context, year int) (int64, error)
	// Upsert inserts or refreshes a holiday keyed by date.
	Upsert(ctx context.Context, holiday *entity.Holiday) error
}
