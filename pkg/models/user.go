package models

import (
	"time"
)

// Plan represents a subscription tier. An empty Plan means the user
// registered but has not selected one yet.
type Plan string

const (
	PlanNone     Plan = ""
	PlanBasic    Plan = "BASIC"
	PlanStandard Plan = "STANDARD"
	PlanPro      Plan = "PRO"
)

// Valid reports whether p is a selectable plan.
func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanStandard, PlanPro:
		return true
	}
	return false
}

// UserStatus represents account status. An inactive account cannot log in
// but its record stays readable and writable for admin tooling.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is the persisted record for one registered account. The normalized
// email is the primary key; the whole record is stored as a single JSON blob
// under a per-user key.
type User struct {
	Email            string             `json:"email"`
	PasswordHash     string             `json:"passwordHash,omitempty"`
	Plan             Plan               `json:"plan,omitempty"`
	GeneratedContent []GeneratedContent `json:"generatedContent"`
	DailySocialPost  *DailySocialPost   `json:"dailySocialPost,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	IsAdmin          bool               `json:"isAdmin"`
	Status           UserStatus         `json:"status"`

	// SchemaVersion tracks which migrations have been applied to the
	// persisted blob. Zero means a legacy record.
	SchemaVersion int `json:"schemaVersion,omitempty"`
}

// DailySocialPost holds at most one generated social post per calendar day.
type DailySocialPost struct {
	Date    string            `json:"date"` // YYYY-MM-DD
	Content SocialPostContent `json:"content"`
}

// SocialPostContent is the generated text and image for a daily post.
type SocialPostContent struct {
	Text        string `json:"text"`
	ImagePrompt string `json:"imagePrompt"`
	ImageURL    string `json:"imageUrl"`
}

// Session is the lightweight pointer to the currently authenticated user.
// Only the email is persisted; the authoritative record is always re-read
// from the store.
type Session struct {
	Email string `json:"email"`
}
