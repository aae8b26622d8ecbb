// Package account implements plan selection, content history updates, and
// the admin operations over user accounts.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tahsinkabir/marketmind/internal/analytics"
	"github.com/tahsinkabir/marketmind/internal/logging"
	"github.com/tahsinkabir/marketmind/internal/store"
	"github.com/tahsinkabir/marketmind/pkg/models"
)

var (
	ErrInvalidPlan   = errors.New("invalid plan")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidIndex  = errors.New("content index out of range")
	ErrAdminAccount  = errors.New("admin accounts cannot be modified")
)

const (
	msgNewContent    = "নতুন মার্কেটিং কনটেন্ট তৈরি করেছেন।"
	msgNewSocialPost = "নতুন সোশ্যাল পোস্ট তৈরি করেছেন।"
)

// Service manages account state changes. All mutations go through the record
// store so pruned history is never dropped by a write.
type Service struct {
	store     *store.UserRecordStore
	analytics analytics.Generator
	logger    *logging.Logger
}

func NewService(s *store.UserRecordStore, gen analytics.Generator, logger *logging.Logger) *Service {
	return &Service{store: s, analytics: gen, logger: logger}
}

// SelectPlan switches the user's subscription plan and records the upgrade.
func (s *Service) SelectPlan(ctx context.Context, email string, plan models.Plan) (*models.User, error) {
	if !plan.Valid() {
		return nil, ErrInvalidPlan
	}

	var oldPlan models.Plan
	err := s.store.Mutate(ctx, email, func(u *models.User) error {
		oldPlan = u.Plan
		u.Plan = plan
		return nil
	})
	if err != nil {
		return nil, err
	}

	from := string(oldPlan)
	if from == "" {
		from = "None"
	}
	message := fmt.Sprintf("%s থেকে %s প্ল্যানে আপগ্রেড করেছেন।", from, plan)
	if err := s.store.LogActivity(ctx, message, email); err != nil {
		s.logger.WithError(err).Warn("Failed to record plan change activity")
	}

	return s.store.GetUserByEmail(ctx, email)
}

// AddGeneratedContent prepends a content entry to the user's history. For
// STANDARD and PRO accounts every variation gets performance metrics.
func (s *Service) AddGeneratedContent(ctx context.Context, email string, content models.GeneratedContent) (*models.User, error) {
	if content.CreatedAt.IsZero() {
		content.CreatedAt = time.Now().UTC()
	}

	err := s.store.Mutate(ctx, email, func(u *models.User) error {
		analytics.Attach(s.analytics, u.Plan, &content)
		u.GeneratedContent = append([]models.GeneratedContent{content}, u.GeneratedContent...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.LogActivity(ctx, msgNewContent, email); err != nil {
		s.logger.WithError(err).Warn("Failed to record content activity")
	}

	return s.store.GetUserByEmail(ctx, email)
}

// UpdateGeneratedContent replaces the entry at index in the user's visible
// history. History is newest-first and retention prunes only the oldest
// entries, so a visible index addresses the same entry in the stored record.
func (s *Service) UpdateGeneratedContent(ctx context.Context, email string, index int, content models.GeneratedContent) (*models.User, error) {
	err := s.store.Mutate(ctx, email, func(u *models.User) error {
		if index < 0 || index >= len(u.GeneratedContent) {
			return ErrInvalidIndex
		}
		// The creation time addresses the entry under retention; an
		// update must not move it.
		content.CreatedAt = u.GeneratedContent[index].CreatedAt
		u.GeneratedContent[index] = content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetUserByEmail(ctx, email)
}

// AttachVideoScript stores a script on the content entry at index.
func (s *Service) AttachVideoScript(ctx context.Context, email string, index int, script models.VideoScript) (*models.User, error) {
	err := s.store.Mutate(ctx, email, func(u *models.User) error {
		if index < 0 || index >= len(u.GeneratedContent) {
			return ErrInvalidIndex
		}
		u.GeneratedContent[index].VideoScript = &script
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetUserByEmail(ctx, email)
}

// ToggleSavedVariation flips the saved flag on one variation of one entry.
func (s *Service) ToggleSavedVariation(ctx context.Context, email string, contentIndex, variationID int) (*models.User, error) {
	err := s.store.Mutate(ctx, email, func(u *models.User) error {
		if contentIndex < 0 || contentIndex >= len(u.GeneratedContent) {
			return ErrInvalidIndex
		}
		variations := u.GeneratedContent[contentIndex].Variations
		for i := range variations {
			if variations[i].ID == variationID {
				variations[i].IsSaved = !variations[i].IsSaved
				return nil
			}
		}
		return ErrInvalidIndex
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetUserByEmail(ctx, email)
}

// SetDailySocialPost stores the post for the day, or clears it when post is
// nil. Only a fresh post is worth an activity entry.
func (s *Service) SetDailySocialPost(ctx context.Context, email string, post *models.DailySocialPost) (*models.User, error) {
	err := s.store.Mutate(ctx, email, func(u *models.User) error {
		u.DailySocialPost = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	if post != nil {
		if err := s.store.LogActivity(ctx, msgNewSocialPost, email); err != nil {
			s.logger.WithError(err).Warn("Failed to record social post activity")
		}
	}

	return s.store.GetUserByEmail(ctx, email)
}

// ListUsers returns every account, admin view.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.GetAllUsers(ctx)
}

// SetUserPlan is the admin override for an account's plan. Admin accounts
// are immutable.
func (s *Service) SetUserPlan(ctx context.Context, email string, plan models.Plan) error {
	if plan != models.PlanNone && !plan.Valid() {
		return ErrInvalidPlan
	}

	err := s.store.Mutate(ctx, email, func(u *models.User) error {
		if u.IsAdmin {
			return ErrAdminAccount
		}
		u.Plan = plan
		return nil
	})
	if err != nil {
		return err
	}

	label := string(plan)
	if label == "" {
		label = "None"
	}
	message := fmt.Sprintf("অ্যাডমিন দ্বারা প্ল্যান পরিবর্তন করে '%s' করা হয়েছে।", label)
	if err := s.store.LogActivity(ctx, message, email); err != nil {
		s.logger.WithError(err).Warn("Failed to record admin plan change activity")
	}
	return nil
}

// SetUserStatus activates or deactivates an account. Admin accounts are
// immutable.
func (s *Service) SetUserStatus(ctx context.Context, email string, status models.UserStatus) error {
	if status != models.UserStatusActive && status != models.UserStatusInactive {
		return ErrInvalidStatus
	}

	err := s.store.Mutate(ctx, email, func(u *models.User) error {
		if u.IsAdmin {
			return ErrAdminAccount
		}
		u.Status = status
		return nil
	})
	if err != nil {
		return err
	}

	message := fmt.Sprintf("অ্যাডমিন দ্বারা স্ট্যাটাস পরিবর্তন করে '%s' করা হয়েছে।", status)
	if err := s.store.LogActivity(ctx, message, email); err != nil {
		s.logger.WithError(err).Warn("Failed to record admin status change activity")
	}
	return nil
}

// Activities returns the shared activity log, newest first.
func (s *Service) Activities(ctx context.Context) ([]models.ActivityLog, error) {
	return s.store.GetActivities(ctx)
}
