// Package store implements the user record store: the sole authority for
// reading, writing, migrating, and pruning user records over a key-value
// substrate. Everything else in the service talks to user data through it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tahsinkabir/marketmind/internal/kv"
	"github.com/tahsinkabir/marketmind/pkg/models"
)

const (
	userKeyPrefix = "marketmind:user:"
	sessionKey    = "marketmind:session"
	activityKey   = "marketmind:activity"

	// activityLogCap bounds the global activity log; oldest entries are
	// dropped silently on overflow.
	activityLogCap = 100
)

var (
	// ErrNotFound is returned when no record exists for an email. Malformed
	// stored data is reported the same way, never as a decode error.
	ErrNotFound = errors.New("user not found")

	// ErrAlreadyExists is returned by CreateUser for a taken email.
	ErrAlreadyExists = errors.New("user already exists")
)

// UserRecordStore is a keyed, versioned, policy-applying persistence layer
// for user records. Reads apply schema migration and then the plan-based
// retention policy; retention is a view-time filter and is never persisted
// by the store itself.
type UserRecordStore struct {
	kv    kv.Store
	clock Clock
	ids   IDGenerator
}

// New creates a store over the given substrate.
func New(kvs kv.Store) *UserRecordStore {
	return &UserRecordStore{kv: kvs, clock: RealClock{}, ids: UUIDGenerator{}}
}

// NewWithClock creates a store with an injected clock and ID generator.
func NewWithClock(kvs kv.Store, clock Clock, ids IDGenerator) *UserRecordStore {
	return &UserRecordStore{kv: kvs, clock: clock, ids: ids}
}

// NormalizeEmail returns the canonical identity for an email address. The
// normalized form is the storage key suffix and the value stored on records.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func userKey(email string) string {
	return userKeyPrefix + NormalizeEmail(email)
}

// getRaw reads and migrates a record without applying retention. Mutation
// paths use it so view-time pruning never leaks into a write.
func (s *UserRecordStore) getRaw(ctx context.Context, email string) (*models.User, error) {
	data, err := s.kv.Get(ctx, userKey(email))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		// Malformed stored data is treated as absent.
		return nil, ErrNotFound
	}

	s.migrate(&user)
	return &user, nil
}

// GetUserByEmail returns the record for email with migration and retention
// applied. All list-typed fields on the result are non-nil.
func (s *UserRecordStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.getRaw(ctx, email)
	if err != nil {
		return nil, err
	}

	s.applyRetention(user)
	ensureLists(user)
	return user, nil
}

// GetAllUsers enumerates every stored user record, applying the same
// migration and retention as GetUserByEmail. Corrupt or foreign keys under
// the user namespace are skipped, not fatal.
func (s *UserRecordStore) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	keys, err := s.kv.Keys(ctx, userKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate user records: %w", err)
	}

	users := make([]*models.User, 0, len(keys))
	for _, key := range keys {
		email := strings.TrimPrefix(key, userKeyPrefix)
		user, err := s.GetUserByEmail(ctx, email)
		if err != nil {
			continue
		}
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

// CreateUser atomically creates a record for email with no plan, an empty
// content list, and active status. Returns ErrAlreadyExists for a taken
// email.
func (s *UserRecordStore) CreateUser(ctx context.Context, email string, isAdmin bool) (*models.User, error) {
	user := &models.User{
		Email:            NormalizeEmail(email),
		Plan:             models.PlanNone,
		GeneratedContent: []models.GeneratedContent{},
		CreatedAt:        s.clock.Now(),
		IsAdmin:          isAdmin,
		Status:           models.UserStatusActive,
		SchemaVersion:    schemaVersion,
	}

	data, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user record: %w", err)
	}

	created, err := s.kv.SetNX(ctx, userKey(email), data)
	if err != nil {
		return nil, fmt.Errorf("failed to create user record: %w", err)
	}
	if !created {
		return nil, ErrAlreadyExists
	}

	return user, nil
}

// UpdateUser overwrites the stored record for user.Email unconditionally
// (last-writer-wins). IsAdmin and CreatedAt are preserved from the stored
// record; they are set at creation and never altered by update paths. The
// session pointer holds only the email, so the active session observes the
// new record on its next read without extra bookkeeping.
func (s *UserRecordStore) UpdateUser(ctx context.Context, user *models.User) error {
	record := *user
	record.Email = NormalizeEmail(record.Email)

	if existing, err := s.getRaw(ctx, record.Email); err == nil {
		record.IsAdmin = existing.IsAdmin
		record.CreatedAt = existing.CreatedAt
	}
	record.SchemaVersion = schemaVersion

	data, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}
	if err := s.kv.Set(ctx, userKey(record.Email), data); err != nil {
		return fmt.Errorf("failed to write user record: %w", err)
	}
	return nil
}

// Mutate applies fn to the raw (migrated, unpruned) record for email and
// writes the result back. Because fn sees the unpruned record, content hidden
// by the current plan's retention window survives the write and reappears
// after a plan upgrade. IsAdmin, CreatedAt, and Email cannot be changed
// through this path.
func (s *UserRecordStore) Mutate(ctx context.Context, email string, fn func(*models.User) error) error {
	user, err := s.getRaw(ctx, email)
	if err != nil {
		return err
	}

	frozenEmail := user.Email
	frozenAdmin := user.IsAdmin
	frozenCreated := user.CreatedAt

	if err := fn(user); err != nil {
		return err
	}

	user.Email = frozenEmail
	user.IsAdmin = frozenAdmin
	user.CreatedAt = frozenCreated
	user.SchemaVersion = schemaVersion

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}
	if err := s.kv.Set(ctx, userKey(email), data); err != nil {
		return fmt.Errorf("failed to write user record: %w", err)
	}
	return nil
}

// GetCurrentUser resolves the session pointer and re-reads the authoritative
// record by email; it never replays a cached copy. A corrupt session pointer
// is cleared and reported as not found.
func (s *UserRecordStore) GetCurrentUser(ctx context.Context) (*models.User, error) {
	data, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil || session.Email == "" {
		_ = s.ClearCurrentUser(ctx)
		return nil, ErrNotFound
	}

	return s.GetUserByEmail(ctx, session.Email)
}

// SetCurrentUser persists the lightweight session pointer for user. A nil
// user clears the session. The full record is untouched.
func (s *UserRecordStore) SetCurrentUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return s.ClearCurrentUser(ctx)
	}

	data, err := json.Marshal(models.Session{Email: NormalizeEmail(user.Email)})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKey, data); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// ClearCurrentUser removes the session pointer.
func (s *UserRecordStore) ClearCurrentUser(ctx context.Context) error {
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// LogActivity appends an entry to the front of the global activity log and
// truncates it to the most recent entries.
func (s *UserRecordStore) LogActivity(ctx context.Context, message, email string) error {
	activities, err := s.GetActivities(ctx)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	entry := models.ActivityLog{
		ID:        fmt.Sprintf("%d-%s", now.UnixNano(), s.ids.New()),
		Timestamp: now,
		UserEmail: NormalizeEmail(email),
		Message:   message,
	}

	updated := append([]models.ActivityLog{entry}, activities...)
	if len(updated) > activityLogCap {
		updated = updated[:activityLogCap]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("failed to encode activity log: %w", err)
	}
	if err := s.kv.Set(ctx, activityKey, data); err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}
	return nil
}

// GetActivities returns the activity log, newest first. A missing or
// malformed log reads as empty.
func (s *UserRecordStore) GetActivities(ctx context.Context) ([]models.ActivityLog, error) {
	data, err := s.kv.Get(ctx, activityKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []models.ActivityLog{}, nil
		}
		return nil, fmt.Errorf("failed to read activity log: %w", err)
	}

	var activities []models.ActivityLog
	if err := json.Unmarshal(data, &activities); err != nil {
		return []models.ActivityLog{}, nil
	}
	return activities, nil
}

// Ping checks the substrate.
func (s *UserRecordStore) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// ensureLists guarantees list-typed fields are present on a returned record.
func ensureLists(user *models.User) {
	if user.GeneratedContent == nil {
		user.GeneratedContent = []models.GeneratedContent{}
	}
	for i := range user.GeneratedContent {
		content := &user.GeneratedContent[i]
		if content.Variations == nil {
			content.Variations = []models.MarketingVariation{}
		}
		if content.CoreAudienceSets == nil {
			content.CoreAudienceSets = []models.CoreAudienceSet{}
		}
		if content.CustomAudienceSuggestions == nil {
			content.CustomAudienceSuggestions = []models.AudienceSuggestion{}
		}
		if content.LookalikeAudienceSuggestions == nil {
			content.LookalikeAudienceSuggestions = []models.AudienceSuggestion{}
		}
	}
}
