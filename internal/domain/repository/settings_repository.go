package repository

import (
	"context"

	"homeops-service/internal/domain/entity"
)

// CalendarSettingsRepository manages the singleton feed configuration.
type CalendarSettingsRepository interface {
	// Get returns nil when no settings row exists yet.
	Get(ctx context.Context) (*entity.CalendarSettings, error)
	Save(ctx context.Context, calendarURL string) (*entity.CalendarSettings, error)
	// TouchLastSynced is best-effort; sync treats its failure as non-fatal.
	TouchLastSynced(ctx context.Context) error
}
