package api

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"
	"homeops-service/internal/interface/calendarfeed"
	"homeops-service/internal/usecase"
	"homeops-service/pkg/logger"
	"homeops-service/pkg/metrics"
)

// Shared metrics instance: promauto registers against the global registry, so
// each test binary may construct it only once.
var testMetrics = metrics.NewMetrics("api_test")

type fakeMemberRepo struct {
	members []entity.FamilyMember
}

func (f *fakeMemberRepo) List(ctx context.Context) ([]entity.FamilyMember, error) {
	return f.members, nil
}

func (f *fakeMemberRepo) GetByID(ctx context.Context, id uint) (*entity.FamilyMember, error) {
	for i := range f.members {
		if f.members[i].ID == id {
			return &f.members[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMemberRepo) Create(ctx context.Context, m *entity.FamilyMember) error {
	m.ID = uint(len(f.members) + 1)
	m.CreatedAt = time.Now()
	f.members = append(f.members, *m)
	return nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, m *entity.FamilyMember) error {
	for i := range f.members {
		if f.members[i].ID == m.ID {
			f.members[i] = *m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMemberRepo) Delete(ctx context.Context, id uint) error {
	for i := range f.members {
		if f.members[i].ID == id {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeTravelRepo struct {
	records []entity.Travel
}

func (f *fakeTravelRepo) List(ctx context.Context, filter entity.TravelFilter) ([]entity.Travel, error) {
	return f.records, nil
}

func (f *fakeTravelRepo) ListByMember(ctx context.Context, memberID uint) ([]entity.Travel, error) {
	var out []entity.Travel
	for _, r := range f.records {
		if r.MemberID == memberID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeTravelRepo) GetByID(ctx context.Context, id uint) (*entity.Travel, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTravelRepo) Create(ctx context.Context, t *entity.Travel) error {
	t.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *t)
	return nil
}

func (f *fakeTravelRepo) Update(ctx context.Context, t *entity.Travel) error { return nil }

func (f *fakeTravelRepo) Delete(ctx context.Context, id uint) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeTravelRepo) ExistsTrip(ctx context.Context, memberID uint, departureDate, destination string) (bool, error) {
	for _, r := range f.records {
		if r.MemberID == memberID && r.DepartureDate == departureDate && r.Destination == destination {
			return true, nil
		}
	}
	return false, nil
}

type fakeActivityRepo struct {
	activities []entity.Activity
	instances  []entity.ActivityInstance
}

func (f *fakeActivityRepo) List(ctx context.Context, memberID *uint) ([]entity.Activity, error) {
	return f.activities, nil
}

func (f *fakeActivityRepo) GetByID(ctx context.Context, id uint) (*entity.Activity, error) {
	for i := range f.activities {
		if f.activities[i].ID == id {
			return &f.activities[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeActivityRepo) FindByMemberAndName(ctx context.Context, memberID uint, name string) (*entity.Activity, error) {
	for i := range f.activities {
		if f.activities[i].MemberID == memberID && strings.EqualFold(f.activities[i].Name, name) {
			return &f.activities[i], nil
		}
	}
	return nil, nil
}

func (f *fakeActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	a.ID = uint(len(f.activities) + 1)
	f.activities = append(f.activities, *a)
	return nil
}

func (f *fakeActivityRepo) Update(ctx context.Context, a *entity.Activity) error { return nil }
func (f *fakeActivityRepo) Delete(ctx context.Context, id uint) error            { return nil }

func (f *fakeActivityRepo) CreateInstance(ctx context.Context, i *entity.ActivityInstance) error {
	i.ID = uint(len(f.instances) + 1)
	f.instances = append(f.instances, *i)
	return nil
}

func (f *fakeActivityRepo) ListInstances(ctx context.Context, activityID uint, limit int) ([]entity.ActivityInstance, error) {
	return f.instances, nil
}

type fakeSurveyRepo struct {
	questions []entity.SurveyQuestion
	pending   []entity.PendingSurvey
	responses []entity.SurveyResponse
}

func (f *fakeSurveyRepo) ListQuestions(ctx context.Context, filter repository.QuestionFilter) ([]entity.SurveyQuestion, error) {
	return f.questions, nil
}

func (f *fakeSurveyRepo) GetQuestion(ctx context.Context, id uint) (*entity.SurveyQuestion, error) {
	for i := range f.questions {
		if f.questions[i].ID == id {
			return &f.questions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSurveyRepo) CreateQuestion(ctx context.Context, q *entity.SurveyQuestion) error {
	q.ID = uint(len(f.questions) + 1)
	f.questions = append(f.questions, *q)
	return nil
}

func (f *fakeSurveyRepo) UpdateQuestion(ctx context.Context, q *entity.SurveyQuestion) error { return nil }
func (f *fakeSurveyRepo) DeleteQuestion(ctx context.Context, id uint) error                  { return nil }

func (f *fakeSurveyRepo) GeneratePending(ctx context.Context, weekStart string) error {
	for _, q := range f.questions {
		if !q.Active || !q.Recurring {
			continue
		}
		exists := false
		for _, p := range f.pending {
			if p.QuestionID == q.ID && p.ForWeekStart == weekStart {
				exists = true
				break
			}
		}
		if !exists {
			f.pending = append(f.pending, entity.PendingSurvey{
				ID:           uint(len(f.pending) + 1),
				QuestionID:   q.ID,
				ForWeekStart: weekStart,
				Status:       entity.SurveyPending,
				QuestionText: q.QuestionText,
			})
		}
	}
	return nil
}

func (f *fakeSurveyRepo) ListPending(ctx context.Context, weekStart string) ([]entity.PendingSurvey, error) {
	var out []entity.PendingSurvey
	for _, p := range f.pending {
		if p.ForWeekStart == weekStart && p.Status == entity.SurveyPending {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSurveyRepo) MarkAnswered(ctx context.Context, questionID uint, weekStart string) error {
	for i := range f.pending {
		if f.pending[i].QuestionID == questionID && f.pending[i].ForWeekStart == weekStart {
			f.pending[i].Status = entity.SurveyAnswered
		}
	}
	return nil
}

func (f *fakeSurveyRepo) SkipPending(ctx context.Context, pendingID uint) (*entity.PendingSurvey, error) {
	for i := range f.pending {
		if f.pending[i].ID == pendingID {
			f.pending[i].Status = entity.SurveySkipped
			return &f.pending[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSurveyRepo) CreateResponse(ctx context.Context, r *entity.SurveyResponse) error {
	r.ID = uint(len(f.responses) + 1)
	f.responses = append(f.responses, *r)
	return nil
}

func (f *fakeSurveyRepo) ListResponses(ctx context.Context, filter repository.ResponseFilter) ([]entity.SurveyResponse, error) {
	return f.responses, nil
}

func (f *fakeSurveyRepo) StatusCounts(ctx context.Context, weekStart string) (*entity.SurveyStatus, error) {
	status := &entity.SurveyStatus{WeekStart: weekStart, CompletionRate: 100}
	for _, p := range f.pending {
		if p.ForWeekStart != weekStart {
			continue
		}
		status.TotalCount++
		switch p.Status {
		case entity.SurveyPending:
			status.PendingCount++
		case entity.SurveyAnswered:
			status.AnsweredCount++
		case entity.SurveySkipped:
			status.SkippedCount++
		}
	}
	if status.TotalCount > 0 {
		status.CompletionRate = int(float64(status.AnsweredCount) / float64(status.TotalCount) * 100)
	}
	return status, nil
}

type fakeDocumentRepo struct {
	docs   []entity.IngestedDocument
	hashes map[string]bool
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{hashes: map[string]bool{}}
}

func (f *fakeDocumentRepo) InsertIfNew(ctx context.Context, doc *entity.IngestedDocument) (bool, error) {
	if f.hashes[doc.ContentHash] {
		return false, nil
	}
	f.hashes[doc.ContentHash] = true
	f.docs = append(f.docs, *doc)
	return true, nil
}

func (f *fakeDocumentRepo) List(ctx context.Context, sourceType string, limit int) ([]entity.IngestedDocument, error) {
	return f.docs, nil
}

type fakeSettingsRepo struct {
	settings *entity.CalendarSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.CalendarSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, url string) (*entity.CalendarSettings, error) {
	f.settings = &entity.CalendarSettings{ID: 1, CalendarURL: url, CreatedAt: time.Now()}
	return f.settings, nil
}

func (f *fakeSettingsRepo) TouchLastSynced(ctx context.Context) error { return nil }

type fixture struct {
	members  *fakeMemberRepo
	travel   *fakeTravelRepo
	activity *fakeActivityRepo
	survey   *fakeSurveyRepo
	docs     *fakeDocumentRepo
	settings *fakeSettingsRepo
	server   *Server
}

func newFixture() *fixture {
	f := &fixture{
		members: &fakeMemberRepo{members: []entity.FamilyMember{
			{ID: 1, Name: "Ivan", Role: entity.RoleParent},
			{ID: 2, Name: "Sara", Role: entity.RoleParent},
			{ID: 3, Name: "Marnie", Role: entity.RoleChild},
		}},
		travel:   &fakeTravelRepo{},
		activity: &fakeActivityRepo{},
		survey:   &fakeSurveyRepo{},
		docs:     newFakeDocumentRepo(),
		settings: &fakeSettingsRepo{},
	}

	log := logger.NewNoop()
	itinerary := usecase.NewItineraryUsecase(f.members, f.travel, f.docs, nil, nil, log, testMetrics)
	calendarSync := usecase.NewCalendarSyncUsecase(f.settings, f.members, f.travel,
		calendarfeed.NewHTTPFetcher(time.Second), log, testMetrics)
	responseParser := usecase.NewResponseParserUsecase(f.members, f.travel, f.activity, log, testMetrics)

	f.server = NewServer(
		f.members, f.travel, f.activity, f.survey, f.docs, f.settings,
		itinerary, calendarSync, responseParser, nil,
		Config{UploadDir: "/tmp"},
		log,
	)
	return f
}
