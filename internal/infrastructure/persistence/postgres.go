package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gormRepo "homeops-service/internal/interface/repository"
)

// NewPostgresDB opens the relational store and migrates its schema
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&gormRepo.FamilyMembers{},
		&gormRepo.TravelRecords{},
		&gormRepo.Activities{},
		&gormRepo.ActivityInstances{},
		&gormRepo.SurveyQuestions{},
		&gormRepo.PendingSurveys{},
		&gormRepo.SurveyResponses{},
		&gormRepo.CalendarSettingsRows{},
		&gormRepo.Holidays{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
