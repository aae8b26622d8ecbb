package store

import (
	"github.com/tahsinkabir/marketmind/pkg/models"
)

// RetentionDays returns the content retention window for a plan. An
// unselected plan gets the BASIC window.
func RetentionDays(plan models.Plan) int {
	switch plan {
	case models.PlanStandard:
		return 90
	case models.PlanPro:
		return 180
	default:
		return 30
	}
}

// applyRetention filters generated content down to entries whose creation
// time is on or after the plan's cutoff. This is a view-time filter: read
// paths apply it, mutation paths never do, so pruned entries stay in the
// stored blob and reappear after a plan upgrade.
func (s *UserRecordStore) applyRetention(user *models.User) {
	if len(user.GeneratedContent) == 0 {
		return
	}

	cutoff := s.clock.Now().AddDate(0, 0, -RetentionDays(user.Plan))

	kept := make([]models.GeneratedContent, 0, len(user.GeneratedContent))
	for _, content := range user.GeneratedContent {
		if !content.CreatedAt.Before(cutoff) {
			kept = append(kept, content)
		}
	}
	user.GeneratedContent = kept
}
