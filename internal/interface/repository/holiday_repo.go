package repository

import (
	"context"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormHolidayRepository implements the HolidayRepository interface
type GormHolidayRepository struct {
	db *gorm.DB
}

// NewGormHolidayRepository creates a new GORM holiday repository
func NewGormHolidayRepository(db *gorm.DB) repository.HolidayRepository {
	return &GormHolidayRepository{
		db: db,
	}
}

// Holidays GORM model for database mapping
type Holidays struct {
	ID           uint      `gorm:"primaryKey"`
	Date         time.Time `gorm:"column:date;type:date;uniqueIndex"`
	Name         string    `gorm:"column:name"`
	Year         int       `gorm:"column:year;index"`
	ObservedDate time.Time `gorm:"column:observed_date;type:date"`
	CreatedAt    time.Time
}

// TableName overrides the default table name
func (Holidays) TableName() string {
	return "holidays"
}

func (m Holidays) toEntity() entity.Holiday {
	return entity.Holiday{
		ID:           m.ID,
		Date:         formatDate(m.Date),
		Name:         m.Name,
		Year:         m.Year,
		ObservedDate: formatDate(m.ObservedDate),
	}
}

// List returns holidays narrowed by year and/or a date window, soonest first
func (r *GormHolidayRepository) List(ctx context.Context, year int, startDate, endDate string) ([]entity.Holiday, error) {
	query := r.db.WithContext(ctx).Model(&Holidays{})
	if year > 0 {
		query = query.Where("year = ?", year)
	}
	if startDate != "" {
		query = query.Where("date >= ?", parseDate(startDate))
	}
	if endDate != "" {
		query = query.Where("date <= ?", parseDate(endDate))
	}

	var models []Holidays
	if err := query.Order("date").Find(&models).Error; err != nil {
		return nil, err
	}

	holidays := make([]entity.Holiday, 0, len(models))
	for _, m := range models {
		holidays = append(holidays, m.toEntity())
	}
	return holidays, nil
}

// CountByYear reports how many holidays are stored for a year
func (r *GormHolidayRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Holidays{}).
		Where("year = ?", year).
		Count(&count).Error
	return count, err
}

// Upsert inserts or refreshes a holiday keyed by date
func (r *GormHolidayRepository) Upsert(ctx context.Context, holiday *entity.Holiday) error {
	model := Holidays{
		Date:         parseDate(holiday.Date),
		Name:         holiday.Name,
		Year:         holiday.Year,
		ObservedDate: parseDate(holiday.ObservedDate),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "year", "observed_date"}),
	}).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	*holiday = model.toEntity()
	return nil
}
