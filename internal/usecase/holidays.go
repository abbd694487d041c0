package usecase

import (
	"context"
	"fmt"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"
	"homeops-service/pkg/logger"
)

// HolidayFetcher retrieves public holidays for a year from an external API.
type HolidayFetcher interface {
	FetchYear(ctx context.Context, year int) ([]entity.Holiday, error)
}

// HolidayUsecase keeps the local federal holiday table in sync with the
// public holidays API.
type HolidayUsecase struct {
	holidayRepo repository.HolidayRepository
	fetcher     HolidayFetcher
	logger      logger.Logger
}

// NewHolidayUsecase creates a new holiday usecase
func NewHolidayUsecase(
	holidayRepo repository.HolidayRepository,
	fetcher HolidayFetcher,
	logger logger.Logger,
) *HolidayUsecase {
	return &HolidayUsecase{
		holidayRepo: holidayRepo,
		fetcher:     fetcher,
		logger:      logger,
	}
}

// List returns stored holidays, optionally narrowed by year or date window.
func (u *HolidayUsecase) List(ctx context.Context, year int, startDate, endDate string) ([]entity.Holiday, error) {
	return u.holidayRepo.List(ctx, year, startDate, endDate)
}

// FetchYear pulls a year's holidays from the API and upserts them by date.
// Returns the number stored.
func (u *HolidayUsecase) FetchYear(ctx context.Context, year int) (int, error) {
	holidays, err := u.fetcher.FetchYear(ctx, year)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch holidays for %d: %w", year, err)
	}

	stored := 0
	for i := range holidays {
		if err := u.holidayRepo.Upsert(ctx, &holidays[i]); err != nil {
			u.logger.Error("Failed to store holiday", "date", holidays[i].Date, "error", err)
			continue
		}
		stored++
	}

	u.logger.Info("Fetched holidays", "year", year, "stored", stored)
	return stored, nil
}
