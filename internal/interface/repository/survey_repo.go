package repository

import (
	"context"
	"sort"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormSurveyRepository implements the SurveyRepository interface
type GormSurveyRepository struct {
	db *gorm.DB
}

// NewGormSurveyRepository creates a new GORM survey repository
func NewGormSurveyRepository(db *gorm.DB) repository.SurveyRepository {
	return &GormSurveyRepository{
		db: db,
	}
}

// SurveyQuestions GORM model for database mapping
type SurveyQuestions struct {
	ID                uint   `gorm:"primaryKey"`
	QuestionText      string `gorm:"column:question_text"`
	QuestionType      string `gorm:"column:question_type"`
	Options           string `gorm:"column:options"`
	Category          string `gorm:"column:category;index"`
	Priority          int    `gorm:"column:priority"`
	Recurring         bool   `gorm:"column:recurring"`
	RecurrencePattern string `gorm:"column:recurrence_pattern"`
	Active            bool   `gorm:"column:active"`
	CreatedAt         time.Time
}

// TableName overrides the default table name
func (SurveyQuestions) TableName() string {
	return "survey_questions"
}

// PendingSurveys GORM model for database mapping
type PendingSurveys struct {
	ID           uint       `gorm:"primaryKey"`
	QuestionID   uint       `gorm:"column:question_id;index"`
	ForWeekStart time.Time  `gorm:"column:for_week_start;type:date;index"`
	Status       string     `gorm:"column:status"`
	AnsweredAt   *time.Time `gorm:"column:answered_at"`
	CreatedAt    time.Time
}

// TableName overrides the default table name
func (PendingSurveys) TableName() string {
	return "pending_surveys"
}

// SurveyResponses GORM model for database mapping
type SurveyResponses struct {
	ID            uint      `gorm:"primaryKey"`
	QuestionID    uint      `gorm:"column:question_id;index"`
	ResponseText  string    `gorm:"column:response_text"`
	ResponseDate  time.Time `gorm:"column:response_date;type:date"`
	WeekStartDate time.Time `gorm:"column:week_start_date;type:date;index"`
	CreatedAt     time.Time
}

// TableName overrides the default table name
func (SurveyResponses) TableName() string {
	return "survey_responses"
}

func (m SurveyQuestions) toEntity() entity.SurveyQuestion {
	return entity.SurveyQuestion{
		ID:                m.ID,
		QuestionText:      m.QuestionText,
		QuestionType:      m.QuestionType,
		Options:           m.Options,
		Category:          m.Category,
		Priority:          m.Priority,
		Recurring:         m.Recurring,
		RecurrencePattern: m.RecurrencePattern,
		Active:            m.Active,
		CreatedAt:         m.CreatedAt,
	}
}

// ListQuestions returns questions ordered by priority, category, id
func (r *GormSurveyRepository) ListQuestions(ctx context.Context, filter repository.QuestionFilter) ([]entity.SurveyQuestion, error) {
	query := r.db.WithContext(ctx).Model(&SurveyQuestions{})
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var models []SurveyQuestions
	if err := query.Order("priority, category, id").Find(&models).Error; err != nil {
		return nil, err
	}

	questions := make([]entity.SurveyQuestion, 0, len(models))
	for _, m := range models {
		questions = append(questions, m.toEntity())
	}
	return questions, nil
}

// GetQuestion finds a question by id
func (r *GormSurveyRepository) GetQuestion(ctx context.Context, id uint) (*entity.SurveyQuestion, error) {
	var model SurveyQuestions
	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		return nil, result.Error
	}

	q := model.toEntity()
	return &q, nil
}

// CreateQuestion inserts a new question
func (r *GormSurveyRepository) CreateQuestion(ctx context.Context, q *entity.SurveyQuestion) error {
	model := SurveyQuestions{
		QuestionText:      q.QuestionText,
		QuestionType:      q.QuestionType,
		Options:           q.Options,
		Category:          q.Category,
		Priority:          q.Priority,
		Recurring:         q.Recurring,
		RecurrencePattern: q.RecurrencePattern,
		Active:            q.Active,
	}
	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	*q = model.toEntity()
	return nil
}

// UpdateQuestion saves question fields
func (r *GormSurveyRepository) UpdateQuestion(ctx context.Context, q *entity.SurveyQuestion) error {
	model := SurveyQuestions{
		ID:                q.ID,
		QuestionText:      q.QuestionText,
		QuestionType:      q.QuestionType,
		Options:           q.Options,
		Category:          q.Category,
		Priority:          q.Priority,
		Recurring:         q.Recurring,
		RecurrencePattern: q.RecurrencePattern,
		Active:            q.Active,
		CreatedAt:         q.CreatedAt,
	}
	result := r.db.WithContext(ctx).Save(&model)
	if result.Error != nil {
		return result.Error
	}

	*q = model.toEntity()
	return nil
}

// DeleteQuestion removes a question
func (r *GormSurveyRepository) DeleteQuestion(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&SurveyQuestions{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GeneratePending creates pending rows for active recurring questions that
// have none for the given week yet
func (r *GormSurveyRepository) GeneratePending(ctx context.Context, weekStart string) error {
	var questions []SurveyQuestions
	err := r.db.WithContext(ctx).
		Where("active = ? AND recurring = ?", true, true).
		Find(&questions).Error
	if err != nil {
		return err
	}

	week := parseDate(weekStart)
	for _, q := range questions {
		var count int64
		err := r.db.WithContext(ctx).Model(&PendingSurveys{}).
			Where("question_id = ? AND for_week_start = ?", q.ID, week).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		pending := PendingSurveys{
			QuestionID:   q.ID,
			ForWeekStart: week,
			Status:       entity.SurveyPending,
		}
		if err := r.db.WithContext(ctx).Create(&pending).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListPending returns pending surveys for a week with question details,
// ordered by question priority then category
func (r *GormSurveyRepository) ListPending(ctx context.Context, weekStart string) ([]entity.PendingSurvey, error) {
	var models []PendingSurveys
	err := r.db.WithContext(ctx).
		Where("for_week_start = ? AND status = ?", parseDate(weekStart), entity.SurveyPending).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.QuestionID)
	}
	questions := make(map[uint]SurveyQuestions, len(ids))
	if len(ids) > 0 {
		var qs []SurveyQuestions
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&qs).Error; err != nil {
			return nil, err
		}
		for _, q := range qs {
			questions[q.ID] = q
		}
	}

	pending := make([]entity.PendingSurvey, 0, len(models))
	for _, m := range models {
		p := entity.PendingSurvey{
			ID:           m.ID,
			QuestionID:   m.QuestionID,
			ForWeekStart: formatDate(m.ForWeekStart),
			Status:       m.Status,
			AnsweredAt:   m.AnsweredAt,
		}
		if q, ok := questions[m.QuestionID]; ok {
			p.QuestionText = q.QuestionText
			p.QuestionType = q.QuestionType
			p.Options = q.Options
			p.Category = q.Category
		}
		pending = append(pending, p)
	}

	// Order by question priority, then category.
	sort.SliceStable(pending, func(i, j int) bool {
		a, b := questions[pending[i].QuestionID], questions[pending[j].QuestionID]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Category < b.Category
	})

	return pending, nil
}

// MarkAnswered flips a pending survey to answered
func (r *GormSurveyRepository) MarkAnswered(ctx context.Context, questionID uint, weekStart string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&PendingSurveys{}).
		Where("question_id = ? AND for_week_start = ?", questionID, parseDate(weekStart)).
		Updates(map[string]interface{}{"status": entity.SurveyAnswered, "answered_at": &now}).Error
}

// SkipPending marks a pending survey skipped
func (r *GormSurveyRepository) SkipPending(ctx context.Context, pendingID uint) (*entity.PendingSurvey, error) {
	var model PendingSurveys
	if err := r.db.WithContext(ctx).First(&model, pendingID).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	model.Status = entity.SurveySkipped
	model.AnsweredAt = &now
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return nil, err
	}

	return &entity.PendingSurvey{
		ID:           model.ID,
		QuestionID:   model.QuestionID,
		ForWeekStart: formatDate(model.ForWeekStart),
		Status:       model.Status,
		AnsweredAt:   model.AnsweredAt,
	}, nil
}

// CreateResponse inserts a survey response
func (r *GormSurveyRepository) CreateResponse(ctx context.Context, resp *entity.SurveyResponse) error {
	model := SurveyResponses{
		QuestionID:    resp.QuestionID,
		ResponseText:  resp.ResponseText,
		ResponseDate:  parseDate(resp.ResponseDate),
		WeekStartDate: parseDate(resp.WeekStartDate),
	}
	result := r.db.WithContext(ctx).Create(&model)
	if result.Error != nil {
		return result.Error
	}

	resp.ID = model.ID
	return nil
}

// ListResponses returns responses with question details, newest first
func (r *GormSurveyRepository) ListResponses(ctx context.Context, filter repository.ResponseFilter) ([]entity.SurveyResponse, error) {
	query := r.db.WithContext(ctx).Model(&SurveyResponses{})
	if filter.WeekStartDate != "" {
		query = query.Where("week_start_date = ?", parseDate(filter.WeekStartDate))
	}
	if filter.QuestionID != nil {
		query = query.Where("question_id = ?", *filter.QuestionID)
	}

	var models []SurveyResponses
	if err := query.Order("response_date DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.QuestionID)
	}
	questions := make(map[uint]SurveyQuestions, len(ids))
	if len(ids) > 0 {
		var qs []SurveyQuestions
		if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&qs).Error; err != nil {
			return nil, err
		}
		for _, q := range qs {
			questions[q.ID] = q
		}
	}

	responses := make([]entity.SurveyResponse, 0, len(models))
	for _, m := range models {
		resp := entity.SurveyResponse{
			ID:            m.ID,
			QuestionID:    m.QuestionID,
			ResponseText:  m.ResponseText,
			ResponseDate:  formatDate(m.ResponseDate),
			WeekStartDate: formatDate(m.WeekStartDate),
		}
		if q, ok := questions[m.QuestionID]; ok {
			resp.QuestionText = q.QuestionText
			resp.Category = q.Category
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// StatusCounts summarizes pending-survey completion for a week
func (r *GormSurveyRepository) StatusCounts(ctx context.Context, weekStart string) (*entity.SurveyStatus, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var counts []statusCount
	err := r.db.WithContext(ctx).Model(&PendingSurveys{}).
		Select("status, count(*) as count").
		Where("for_week_start = ?", parseDate(weekStart)).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	status := &entity.SurveyStatus{WeekStart: weekStart}
	for _, c := range counts {
		switch c.Status {
		case entity.SurveyPending:
			status.PendingCount = c.Count
		case entity.SurveyAnswered:
			status.AnsweredCount = c.Count
		case entity.SurveySkipped:
			status.SkippedCount = c.Count
		}
		status.TotalCount += c.Count
	}
	if status.TotalCount > 0 {
		status.CompletionRate = int(float64(status.AnsweredCount)/float64(status.TotalCount)*100 + 0.5)
	} else {
		status.CompletionRate = 100
	}
	return status, nil
}
