package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"homeops-service/internal/domain/entity"
	"homeops-service/internal/domain/repository"
	"homeops-service/pkg/logger"
	"homeops-service/pkg/metrics"
)

// travelClausePattern matches clauses like "Ivan going to Paris" or
// "Sara flying to Denver".
var travelClausePattern = regexp.MustCompile(`(?i)^(\w+)\s+(?:is\s+)?(?:going|traveling|travelling|trip|flying|visiting)\s+(?:to\s+)?(.+)$`)

// clauseSplitPattern breaks a free-text response into independent clauses.
var clauseSplitPattern = regexp.MustCompile(`[,\n;]+`)

// fillerWords are dropped when reducing an activity clause to an activity name.
var fillerWords = map[string]bool{
	"has": true, "have": true, "is": true, "are": true, "on": true,
	"at": true, "in": true, "the": true, "a": true, "an": true,
	"will": true, "be": true, "this": true, "next": true, "week": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// ResponseParserUsecase turns free-text survey answers into structured travel
// records and activity instances.
type ResponseParserUsecase struct {
	memberRepo   repository.MemberRepository
	travelRepo   repository.TravelRepository
	activityRepo repository.ActivityRepository
	logger       logger.Logger
	metrics      *metrics.Metrics
}

// NewResponseParserUsecase creates a new survey response parser
func NewResponseParserUsecase(
	memberRepo repository.MemberRepository,
	travelRepo repository.TravelRepository,
	activityRepo repository.ActivityRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ResponseParserUsecase {
	return &ResponseParserUsecase{
		memberRepo:   memberRepo,
		travelRepo:   travelRepo,
		activityRepo: activityRepo,
		logger:       logger,
		metrics:      metrics,
	}
}

// WeekStart returns the Monday of the week containing t, shifted by offset
// weeks, as a canonical date string.
func WeekStart(t time.Time, offset int) string {
	weekday := int(t.Weekday())
	// Sunday belongs to the week that started the previous Monday.
	if weekday == 0 {
		weekday = 7
	}
	monday := t.AddDate(0, 0, -(weekday - 1) + offset*7)
	return monday.Format(dateLayout)
}

func addDays(dateStr string, days int) string {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return dateStr
	}
	return t.AddDate(0, 0, days).Format(dateLayout)
}

// ParseResponse classifies each clause of a free-text answer as travel,
// activity, or note, and stores what it recognizes. Clauses are independent: a
// storage failure is recorded on its own item and parsing continues, so one bad
// clause never loses the rest of the answer. weekStart anchors all created
// records to the target week's Monday.
func (u *ResponseParserUsecase) ParseResponse(ctx context.Context, text, weekStart string) ([]entity.ParsedItem, error) {
	members, err := u.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	items := []entity.ParsedItem{}
	for _, clause := range clauseSplitPattern.Split(text, -1) {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		items = append(items, u.parseClause(ctx, clause, weekStart, members))
	}
	return items, nil
}

func (u *ResponseParserUsecase) parseClause(ctx context.Context, clause, weekStart string, members []entity.FamilyMember) entity.ParsedItem {
	if m := travelClausePattern.FindStringSubmatch(clause); m != nil {
		if member := exactMember(members, m[1]); member != nil {
			return u.storeTravelClause(ctx, clause, weekStart, member, strings.TrimSpace(m[2]))
		}
	}

	if member := MatchMember(members, clause); member != nil {
		if name := activityName(clause, member.Name); len(name) > 2 {
			return u.storeActivityClause(ctx, clause, weekStart, member, name)
		}
	}

	return entity.ParsedItem{
		Type:    "note",
		Details: clause,
		Line:    clause,
	}
}

func (u *ResponseParserUsecase) storeTravelClause(ctx context.Context, clause, weekStart string, member *entity.FamilyMember, destination string) entity.ParsedItem {
	item := entity.ParsedItem{
		Type:    "travel",
		Member:  member.Name,
		Details: destination,
		Date:    weekStart,
		Line:    clause,
	}

	travel := entity.Travel{
		MemberID:      member.ID,
		Destination:   destination,
		DepartureDate: weekStart,
		ReturnDate:    addDays(weekStart, 6),
		Notes:         fmt.Sprintf("From weekly survey: %s", clause),
		Source:        entity.SourceSurvey,
	}
	if err := u.travelRepo.Create(ctx, &travel); err != nil {
		u.logger.Error("Failed to store travel from survey", "clause", clause, "error", err)
		u.metrics.ErrorsCount.WithLabelValues("survey_travel").Inc()
		item.Error = err.Error()
		return item
	}

	u.metrics.TripsImported.Inc()
	return item
}

func (u *ResponseParserUsecase) storeActivityClause(ctx context.Context, clause, weekStart string, member *entity.FamilyMember, name string) entity.ParsedItem {
	// Weekend activities land on Saturday of the target week.
	date := addDays(weekStart, 5)
	item := entity.ParsedItem{
		Type:    "activity",
		Member:  member.Name,
		Details: name,
		Date:    date,
		Line:    clause,
	}

	activity, err := u.activityRepo.FindByMemberAndName(ctx, member.ID, name)
	if err != nil {
		item.Error = err.Error()
		return item
	}
	if activity == nil {
		activity = &entity.Activity{
			MemberID: member.ID,
			Name:     name,
			Type:     "other",
		}
		if err := u.activityRepo.Create(ctx, activity); err != nil {
			u.logger.Error("Failed to create activity from survey", "clause", clause, "error", err)
			u.metrics.ErrorsCount.WithLabelValues("survey_activity").Inc()
			item.Error = err.Error()
			return item
		}
	}

	instance := entity.ActivityInstance{
		ActivityID: activity.ID,
		Date:       date,
		Status:     entity.InstanceScheduled,
		Source:     entity.SourceSurvey,
	}
	if err := u.activityRepo.CreateInstance(ctx, &instance); err != nil {
		u.logger.Error("Failed to create activity instance from survey", "clause", clause, "error", err)
		u.metrics.ErrorsCount.WithLabelValues("survey_activity").Inc()
		item.Error = err.Error()
	}
	return item
}

// exactMember requires a full case-insensitive name match, unlike MatchMember.
func exactMember(members []entity.FamilyMember, name string) *entity.FamilyMember {
	for i := range members {
		if strings.EqualFold(members[i].Name, name) {
			return &members[i]
		}
	}
	return nil
}

// activityName reduces a clause to its activity by dropping the member name
// and schedule filler words.
func activityName(clause, memberName string) string {
	memberLower := strings.ToLower(memberName)
	words := strings.Fields(clause)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		cleaned := strings.ToLower(strings.Trim(w, ".!?"))
		if cleaned == memberLower || fillerWords[cleaned] {
			continue
		}
		kept = append(kept, strings.Trim(w, ".!?"))
	}
	return strings.Join(kept, " ")
}
