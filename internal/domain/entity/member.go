package entity

import "time"

// Family member roles
const (
	RoleParent = "parent"
	RoleChild  = "child"
	RoleOther  = "other"
)

// FamilyMember represents a household member. Name is the display key used
// for matching free-text name tokens and is unique case-insensitively.
type FamilyMember struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
