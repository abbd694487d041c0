package repository

import (
	"context"
	"errors"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormSettingsRepository implements the CalendarSettingsRepository interface
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM calendar settings repository
func NewGormSettingsRepository(db *gorm.DB) repository.CalendarSettingsRepository {
	return &GormSettingsRepository{
		db: db,
	}
}

// CalendarSettingsRows GORM model for database mapping
type CalendarSettingsRows struct {
	ID          uint       `gorm:"primaryKey"`
	CalendarURL string     `gorm:"column:calendar_url"`
	LastSynced  *time.Time `gorm:"column:last_synced"`
	CreatedAt   time.Time
}

// TableName overrides the default table name
func (CalendarSettingsRows) TableName() string {
	return "calendar_settings"
}

func (m CalendarSettingsRows) toEntity() entity.CalendarSettings {
	return entity.CalendarSettings{
		ID:          m.ID,
		CalendarURL: m.CalendarURL,
		LastSynced:  m.LastSynced,
		CreatedAt:   m.CreatedAt,
	}
}

// Get returns the settings row, or nil when none has been saved yet
func (r *GormSettingsRepository) Get(ctx context.Context) (*entity.CalendarSettings, error) {
	var model CalendarSettingsRows
	result := r.db.WithContext(ctx).Order("id").First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	settings := model.toEntity()
	return &settings, nil
}

// Save creates or replaces the feed URL
func (r *GormSettingsRepository) Save(ctx context.Context, calendarURL string) (*entity.CalendarSettings, error) {
	var model CalendarSettingsRows
	result := r.db.WithContext(ctx).Order("id").First(&model)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
		model = CalendarSettingsRows{CalendarURL: calendarURL}
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return nil, err
		}
	} else {
		model.CalendarURL = calendarURL
		if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
			return nil, err
		}
	}

	settings := model.toEntity()
	return &settings, nil
}

// TouchLastSynced stamps the settings row with the current time
func (r *GormSettingsRepository) TouchLastSynced(ctx context.Context) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&CalendarSettingsRows{}).
		Where("1 = 1").
		Update("last_synced", &now).Error
}
