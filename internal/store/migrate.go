package store

import (
	"time"

	"github.com/tahsinkabir/marketmind/pkg/models"
)

// schemaVersion is the version written on every record. Records carrying a
// lower version pass through the migration chain on read.
const schemaVersion = 2

// A migration normalizes a record from one schema version to the next. Each
// step must be pure apart from the supplied time and idempotent, so replaying
// the chain over an already-migrated record changes nothing.
type migration func(user *models.User, now time.Time)

// Chain entry i migrates version i to version i+1.
var migrations = []migration{
	migrateAudienceSets,    // v0 -> v1
	migrateAccountDefaults, // v1 -> v2
}

// migrate brings user up to the current schema version in place.
func (s *UserRecordStore) migrate(user *models.User) {
	if user.SchemaVersion >= schemaVersion {
		return
	}

	now := s.clock.Now()
	for v := user.SchemaVersion; v < schemaVersion; v++ {
		migrations[v](user, now)
	}
	user.SchemaVersion = schemaVersion
}

// migrateAudienceSets converts the legacy single-avatar targeting shape into
// CoreAudienceSets and backfills list and timestamp defaults on content
// entries.
func migrateAudienceSets(user *models.User, now time.Time) {
	for i := range user.GeneratedContent {
		content := &user.GeneratedContent[i]

		if content.AudienceAvatar != nil && len(content.CoreAudienceSets) == 0 {
			avatar := content.AudienceAvatar
			reasoning := content.AudienceReasoning
			if reasoning == "" {
				reasoning = "Default audience based on product info."
			}

			content.CoreAudienceSets = []models.CoreAudienceSet{{
				Title:        "Primary Target Audience",
				Reasoning:    reasoning,
				Age:          defaultString(avatar.Age, "18-65+"),
				Gender:       defaultString(avatar.Gender, "Any"),
				Location:     defaultString(avatar.Location, "Bangladesh"),
				Relationship: wrapScalar(avatar.Relationship),
				Education:    wrapScalar(avatar.Education),
				Profession:   wrapScalar(avatar.Profession),
				Interests:    defaultList(avatar.Interest),
				Behaviors:    defaultList(avatar.Behavior),
			}}
		}

		if content.CustomAudienceSuggestions == nil {
			content.CustomAudienceSuggestions = []models.AudienceSuggestion{}
		}
		if content.LookalikeAudienceSuggestions == nil {
			content.LookalikeAudienceSuggestions = []models.AudienceSuggestion{}
		}
		if content.CreatedAt.IsZero() {
			content.CreatedAt = now
		}
	}
}

// migrateAccountDefaults backfills account-level fields added after the
// earliest records were written.
func migrateAccountDefaults(user *models.User, now time.Time) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func wrapScalar(value string) []string {
	if value == "" {
		return []string{}
	}
	return []string{value}
}

func defaultList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
