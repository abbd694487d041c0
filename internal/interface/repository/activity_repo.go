package repository

import (
	"context"
	"errors"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormActivityRepository implements the ActivityRepository interface
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GORM activity repository
func NewGormActivityRepository(db *gorm.DB) repository.ActivityRepository {
	return &GormActivityRepository{
		db: db,
	}
}

// Activities GORM model for database mapping
type Activities struct {
	ID         uint   `gorm:"primaryKey"`
	MemberID   uint   `gorm:"column:member_id;index"`
	Name       string `gorm:"column:name"`
	Type       string `gorm:"column:type"`
	Location   string `gorm:"column:location"`
	Instructor string `gorm:"column:instructor"`
	Notes      string `gorm:"column:notes"`
	Color      string `gorm:"column:color"`
	CreatedAt  time.Time
}

// TableName overrides the default table name
func (Activities) TableName() string {
	return "activities"
}

// ActivityInstances GORM model for database mapping
type ActivityInstances struct {
	ID         uint      `gorm:"primaryKey"`
	ActivityID uint      `gorm:"column:activity_id;index"`
	Date       time.Time `gorm:"column:date;type:date"`
	Status     string    `gorm:"column:status"`
	Notes      string    `gorm:"column:notes"`
	Source     string    `gorm:"column:source"`
	CreatedAt  time.Time
}

// TableName overrides the default table name
func (ActivityInstances) TableName() string {
	return "activity_instances"
}

func (m Activities) toEntity() entity.Activity {
	return entity.Activity{
		ID:         m.ID,
		MemberID:   m.MemberID,
		Name:       m.Name,
		Type:       m.Type,
		Location:   m.Location,
		Instructor: m.Instructor,
		Notes:      m.Notes,
		Color:      m.Color,
		CreatedAt:  m.CreatedAt,
	}
}

func (m ActivityInstances) toEntity() entity.ActivityInstance {
	return entity.ActivityInstance{
		ID:         m.ID,
		ActivityID: m.ActivityID,
		Date:       formatDate(m.Date),
		Status:     m.Status,
		Notes:      m.Notes,
		Source:     m.Source,
		CreatedAt:  m.CreatedAt,
	}
}

// List returns activities, optionally narrowed to one member
func (r *GormActivityRepository) List(ctx context.Context, memberID *uint) ([]entity.Activity, error) {
	query := r.db.WithContext(ctx).Model(&Activities{})
	if memberID != nil {
		query = query.Where("member_id = ?", *memberID)
	}

	var models []Activities
	if err := query.Order("name").Find(&models).Error; err != nil {
		return nil, err
	}

	activities := make([]entity.Activity, 0, len(models))
	for _, m := range models {
		activities = append(activities, m.toEntity())
	}

	// Fill member display names.
	ids := make([]uint, 0, len(activities))
	for _, a := range activities {
		ids = append(ids, a.MemberID)
	}
	if len(ids) > 0 {
		var members []FamilyMembers
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error; err != nil {
			return nil, err
		}
		byID := make(map[uint]string, len(members))
		for _, m := range members {
			byID[m.ID] = m.Name
		}
		for i := range activities {
			activities[i].MemberName = byID[activities[i].MemberID]
		}
	}

	return activities, nil
}

// GetByID finds an activity by id
func (r *GormActivityRepository) GetByID(ctx context.Context, id uint) (*entity.Activity, error) {
	var model Activities
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		return nil, result.Error
	}

	activity := model.toEntity()
	return &activity, nil
}

// FindByMemberAndName matches by case-insensitive name equality. No fuzzy
// matching; a miss returns nil, nil.
func (r *GormActivityRepository) FindByMemberAndName(ctx context.Context, memberID uint, name string) (*entity.Activity, error) {
	var model Activities
	result := r.db.WithContext(ctx).
		Where("member_id = ? AND LOWER(name) = LOWER(?)", memberID, name).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	activity := model.toEntity()
	return &activity, nil
}

// Create inserts a new activity
func (r *GormActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	model := Activities{
		MemberID:   activity.MemberID,
		Name:       activity.Name,
		Type:       activity.Type,
		Location:   activity.Location,
		Instructor: activity.Instructor,
		Notes:      activity.Notes,
		Color:      activity.Color,
	}
	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	*activity = model.toEntity()
	return nil
}

// Update saves activity fields
func (r *GormActivityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	model := Activities{
		ID:         activity.ID,
		MemberID:   activity.MemberID,
		Name:       activity.Name,
		Type:       activity.Type,
		Location:   activity.Location,
		Instructor: activity.Instructor,
		Notes:      activity.Notes,
		Color:      activity.Color,
		CreatedAt:  activity.CreatedAt,
	}
	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}

	*activity = model.toEntity()
	return nil
}

// Delete removes an activity
func (r *GormActivityRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Activities{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateInstance inserts a dated occurrence of an activity
func (r *GormActivityRepository) CreateInstance(ctx context.Context, instance *entity.ActivityInstance) error {
	model := ActivityInstances{
		ActivityID: instance.ActivityID,
		Date:       parseDate(instance.Date),
		Status:     instance.Status,
		Notes:      instance.Notes,
		Source:     instance.Source,
	}
	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	*instance = model.toEntity()
	return nil
}

// ListInstances returns recent instances, newest first
func (r *GormActivityRepository) ListInstances(ctx context.Context, activityID uint, limit int) ([]entity.ActivityInstance, error) {
	query := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []ActivityInstances
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	instances := make([]entity.ActivityInstance, 0, len(models))
	for _, m := range models {
		instances = append(instances, m.toEntity())
	}
	return instances, nil
}
