package usecase

import (
	"sort"
	"strings"

	"homeops-service/internal/domain/entity"
)

// MatchMember resolves a free-text name against the household roster.
// An exact case-insensitive match on the full text wins over a member whose
// name merely appears inside it; among substring matches the lowest-id member
// wins, so results are stable regardless of input order. Returns nil when
// nothing matches.
func MatchMember(members []entity.FamilyMember, text string) *entity.FamilyMember {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	ordered := make([]entity.FamilyMember, len(members))
	copy(ordered, members)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	lowered := strings.ToLower(strings.TrimSpace(text))

	for i := range ordered {
		if strings.ToLower(ordered[i].Name) == lowered {
			return &ordered[i]
		}
	}
	for i := range ordered {
		if strings.Contains(lowered, strings.ToLower(ordered[i].Name)) {
			return &ordered[i]
		}
	}
	return nil
}
