package repository

import (
	"context"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormTravelRepository implements the TravelRepository interface
type GormTravelRepository struct {
	db *gorm.DB
}

// NewGormTravelRepository creates a new GORM travel repository
func NewGormTravelRepository(db *gorm.DB) repository.TravelRepository {
	return &GormTravelRepository{
		db: db,
	}
}

// TravelRecords GORM model for database mapping
type TravelRecords struct {
	ID               uint       `gorm:"primaryKey"`
	MemberID         uint       `gorm:"column:member_id;index"`
	Destination      string     `gorm:"column:destination"`
	DepartureDate    time.Time  `gorm:"column:departure_date;type:date;index"`
	DepartureTime    string     `gorm:"column:departure_time"`
	ReturnDate       *time.Time `gorm:"column:return_date;type:date"`
	ReturnTime       string     `gorm:"column:return_time"`
	FlightNumber     string     `gorm:"column:flight_number"`
	Airline          string     `gorm:"column:airline"`
	ConfirmationCode string     `gorm:"column:confirmation_code"`
	Notes            string     `gorm:"column:notes"`
	Source           string     `gorm:"column:source"`
	CreatedAt        time.Time
}

// TableName overrides the default table name
func (TravelRecords) TableName() string {
	return "travel"
}

func (m TravelRecords) toEntity() entity.Travel {
	return entity.Travel{
		ID:               m.ID,
		MemberID:         m.MemberID,
		Destination:      m.Destination,
		DepartureDate:    formatDate(m.DepartureDate),
		DepartureTime:    m.DepartureTime,
		ReturnDate:       formatDatePtr(m.ReturnDate),
		ReturnTime:       m.ReturnTime,
		FlightNumber:     m.FlightNumber,
		Airline:          m.Airline,
		ConfirmationCode: m.ConfirmationCode,
		Notes:            m.Notes,
		Source:           m.Source,
		CreatedAt:        m.CreatedAt,
	}
}

func travelModel(t *entity.Travel) TravelRecords {
	return TravelRecords{
		ID:               t.ID,
		MemberID:         t.MemberID,
		Destination:      t.Destination,
		DepartureDate:    parseDate(t.DepartureDate),
		DepartureTime:    t.DepartureTime,
		ReturnDate:       parseDatePtr(t.ReturnDate),
		ReturnTime:       t.ReturnTime,
		FlightNumber:     t.FlightNumber,
		Airline:          t.Airline,
		ConfirmationCode: t.ConfirmationCode,
		Notes:            t.Notes,
		Source:           t.Source,
		CreatedAt:        t.CreatedAt,
	}
}

// attachMemberInfo fills member display fields for listings
func (r *GormTravelRepository) attachMemberInfo(ctx context.Context, travels []entity.Travel) error {
	if len(travels) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(travels))
	for _, t := range travels {
		ids = append(ids, t.MemberID)
	}

	var members []FamilyMembers
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&members).Error; err != nil {
		return err
	}

	byID := make(map[uint]FamilyMembers, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	for i := range travels {
		if m, ok := byID[travels[i].MemberID]; ok {
			travels[i].MemberName = m.Name
			travels[i].MemberColor = m.Color
		}
	}
	return nil
}

// List returns travel records matching the filter, ordered by departure date
func (r *GormTravelRepository) List(ctx context.Context, filter entity.TravelFilter) ([]entity.Travel, error) {
	query := r.db.WithContext(ctx).Model(&TravelRecords{})

	if filter.StartDate != "" {
		start := parseDate(filter.StartDate)
		query = query.Where("departure_date >= ? OR return_date >= ?", start, start)
	}
	if filter.EndDate != "" {
		query = query.Where("departure_date <= ?", parseDate(filter.EndDate))
	}
	if filter.MemberID != nil {
		query = query.Where("member_id = ?", *filter.MemberID)
	}

	var models []TravelRecords
	if err := query.Order("departure_date").Find(&models).Error; err != nil {
		return nil, err
	}

	travels := make([]entity.Travel, 0, len(models))
	for _, m := range models {
		travels = append(travels, m.toEntity())
	}
	if err := r.attachMemberInfo(ctx, travels); err != nil {
		return nil, err
	}
	return travels, nil
}

// ListByMember returns one member's travel, most recent departure first
func (r *GormTravelRepository) ListByMember(ctx context.Context, memberID uint) ([]entity.Travel, error) {
	var models []TravelRecords
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("departure_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	travels := make([]entity.Travel, 0, len(models))
	for _, m := range models {
		travels = append(travels, m.toEntity())
	}
	return travels, nil
}

// GetByID finds a travel record by id
func (r *GormTravelRepository) GetByID(ctx context.Context, id uint) (*entity.Travel, error) {
	var model TravelRecords
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		return nil, result.Error
	}

	travel := model.toEntity()
	travels := []entity.Travel{travel}
	if err := r.attachMemberInfo(ctx, travels); err != nil {
		return nil, err
	}
	return &travels[0], nil
}

// Create inserts a new travel record
func (r *GormTravelRepository) Create(ctx context.Context, travel *entity.Travel) error {
	model := travelModel(travel)
	model.ID = 0
	model.CreatedAt = time.Time{}

	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	*travel = model.toEntity()
	return nil
}

// Update saves travel record fields
func (r *GormTravelRepository) Update(ctx context.Context, travel *entity.Travel) error {
	model := travelModel(travel)
	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}

	*travel = model.toEntity()
	return nil
}

// Delete removes a travel record
func (r *GormTravelRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&TravelRecords{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsTrip reports whether the natural key (member, departure, destination)
// already has a record
func (r *GormTravelRepository) ExistsTrip(ctx context.Context, memberID uint, departureDate, destination string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&TravelRecords{}).
		Where("member_id = ? AND departure_date = ? AND destination = ?",
			memberID, parseDate(departureDate), destination).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
