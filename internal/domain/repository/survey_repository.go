package repository

import (
	"context"

	"homeops-service/internal/domain/entity"
)

// QuestionFilter narrows survey question listings.
type QuestionFilter struct {
	Active   *bool
	Category string
}

// ResponseFilter narrows survey response listings.
type ResponseFilter struct {
	WeekStartDate string
	QuestionID    *uint
}

// SurveyRepository defines the interface for survey questions, pending
// surveys, and responses.
type SurveyRepository interface {
	ListQuestions(ctx context.Context, filter QuestionFilter) ([]entity.SurveyQuestion, error)
	GetQuestion(ctx context.Context, id uint) (*entity.SurveyQuestion, error)
	CreateQuestion(ctx context.Context, q *entity.SurveyQuestion) error
	UpdateQuestion(ctx context.Context, q *entity.SurveyQuestion) error
	DeleteQuestion(ctx context.Context, id uint) error

	// GeneratePending creates pending rows for every active recurring
	// question that has none for the given week yet.
	GeneratePending(ctx context.Context, weekStart string) error
	ListPending(ctx context.Context, weekStart string) ([]entity.PendingSurvey, error)
	MarkAnswered(ctx context.Context, questionID uint, weekStart string) error
	SkipPending(ctx context.Context, pendingID uint) (*entity.PendingSurvey, error)

	CreateResponse(ctx context.Context, r *entity.SurveyResponse) error
	ListResponses(ctx context.Context, filter ResponseFilter) ([]entity.SurveyResponse, error)
	StatusCounts(ctx context.Context, weekStart string) (*entity.SurveyStatus, error)
}
