package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"homeops-service/internal/domain/entity"
)

func TestMatchMemberExactBeatsSubstring(t *testing.T) {
	// "Sam" is a substring of "Samantha"; an exact match must win even when
	// the longer name has a lower id.
	members := []entity.FamilyMember{
		{ID: 1, Name: "Samantha"},
		{ID: 2, Name: "Sam"},
	}

	got := MatchMember(members, "Sam")
	if assert.NotNil(t, got) {
		assert.Equal(t, uint(2), got.ID)
	}
}

func TestMatchMemberCaseInsensitive(t *testing.T) {
	members := []entity.FamilyMember{{ID: 1, Name: "Ivan"}}

	got := MatchMember(members, "IVAN")
	if assert.NotNil(t, got) {
		assert.Equal(t, "Ivan", got.Name)
	}
}

func TestMatchMemberSubstringInText(t *testing.T) {
	members := []entity.FamilyMember{
		{ID: 1, Name: "Ivan"},
		{ID: 2, Name: "Sara"},
	}

	got := MatchMember(members, "Sara Denver trip")
	if assert.NotNil(t, got) {
		assert.Equal(t, "Sara", got.Name)
	}
}

func TestMatchMemberSubstringLowestID(t *testing.T) {
	// Both names appear in the text; the lowest id wins regardless of the
	// order members arrive in.
	members := []entity.FamilyMember{
		{ID: 2, Name: "Sara"},
		{ID: 1, Name: "Ivan"},
	}

	got := MatchMember(members, "Ivan and Sara in Paris")
	if assert.NotNil(t, got) {
		assert.Equal(t, uint(1), got.ID)
	}
}

func TestMatchMemberNoMatch(t *testing.T) {
	members := []entity.FamilyMember{{ID: 1, Name: "Ivan"}}

	assert.Nil(t, MatchMember(members, "Zelda"))
	assert.Nil(t, MatchMember(members, ""))
	assert.Nil(t, MatchMember(members, "   "))
}

func TestMatchMemberEmptyRoster(t *testing.T) {
	assert.Nil(t, MatchMember(nil, "Ivan"))
}
