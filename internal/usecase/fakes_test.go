package usecase

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"
	"homeops-service/pkg/metrics"
)

// Shared metrics instance: promauto registers against the global registry, so
// each test binary may construct it only once.
var testMetrics = metrics.NewMetrics("usecase_test")

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
	f.members = append(f.members, *m)
	return nil
}

func (f *fakeMemberRepo) Update(ctx context.Context, m *entity.FamilyMember) error { return nil }
func (f *fakeMemberRepo) Delete(ctx context.Context, id uint) error                { return nil }

type fakeTravelRepo struct {
	records   []entity.Travel
	createErr error
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
	if f.createErr != nil {
		return f.createErr
	}
	t.ID = uint(len(f.records) + 1)
	t.CreatedAt = time.Now()
	f.records = append(f.records, *t)
	return nil
}

func (f *fakeTravelRepo) Update(ctx context.Context, t *entity.Travel) error { return nil }
func (f *fakeTravelRepo) Delete(ctx context.Context, id uint) error          { return nil }

func (f *fakeTravelRepo) ExistsTrip(ctx context.Context, memberID uint, departureDate, destination string) (bool, error) {
	for _, r := range f.records {
		if r.MemberID == memberID && r.DepartureDate == departureDate && r.Destination == destination {
			return true, nil
		}
	}
	return false, nil
}

type fakeActivityRepo struct {
	activities  []entity.Activity
	instances   []entity.ActivityInstance
	instanceErr error
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
	if f.instanceErr != nil {
		return f.instanceErr
	}
	i.ID = uint(len(f.instances) + 1)
	f.instances = append(f.instances, *i)
	return nil
}

func (f *fakeActivityRepo) ListInstances(ctx context.Context, activityID uint, limit int) ([]entity.ActivityInstance, error) {
	return f.instances, nil
}

type fakeSettingsRepo struct {
	settings *entity.CalendarSettings
	touched  int
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.CalendarSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, url string) (*entity.CalendarSettings, error) {
	f.settings = &entity.CalendarSettings{ID: 1, CalendarURL: url}
	return f.settings, nil
}

func (f *fakeSettingsRepo) TouchLastSynced(ctx context.Context) error {
	f.touched++
	return nil
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

type fakeFeedFetcher struct {
	events  []entity.FeedEvent
	err     error
	lastURL string
}

func (f *fakeFeedFetcher) Fetch(ctx context.Context, url string) ([]entity.FeedEvent, error) {
	f.lastURL = url
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

// Compile-time interface checks.
var (
	_ repository.MemberRepository           = (*fakeMemberRepo)(nil)
	_ repository.TravelRepository           = (*fakeTravelRepo)(nil)
	_ repository.ActivityRepository         = (*fakeActivityRepo)(nil)
	_ repository.CalendarSettingsRepository = (*fakeSettingsRepo)(nil)
	_ repository.DocumentRepository         = (*fakeDocumentRepo)(nil)
	_ FeedFetcher                           = (*fakeFeedFetcher)(nil)
)

func household() *fakeMemberRepo {
	return &fakeMemberRepo{members: []entity.FamilyMember{
		{ID: 1, Name: "Ivan", Role: entity.RoleParent},
		{ID: 2, Name: "Sara", Role: entity.RoleParent},
		{ID: 3, Name: "Marnie", Role: entity.RoleChild},
	}}
}
