package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahsinkabir/marketmind/internal/kv"
	"github.com/tahsinkabir/marketmind/pkg/models"
)

// fakeClock returns a fixed, adjustable time.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// seqIDs returns "id-1", "id-2", ...
type seqIDs struct {
	n int
}

func (g *seqIDs) New() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func newTestStore() (*UserRecordStore, kv.Store, *fakeClock) {
	kvs := kv.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return NewWithClock(kvs, clock, &seqIDs{}), kvs, clock
}

func daysAgo(clock *fakeClock, days int) time.Time {
	return clock.now.AddDate(0, 0, -days)
}

func TestCreateUser(t *testing.T) {
	s, _, clock := newTestStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "a@x.com", false)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, models.PlanNone, user.Plan)
	assert.Equal(t, models.UserStatusActive, user.Status)
	assert.False(t, user.IsAdmin)
	assert.NotNil(t, user.GeneratedContent)
	assert.Empty(t, user.GeneratedContent)
	assert.True(t, user.CreatedAt.Equal(clock.now))

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestCreateUserDuplicate(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "a@x.com", false)
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "a@x.com", false)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// Create-if-absent is keyed on the normalized email
	_, err = s.CreateUser(ctx, "  A@X.COM ", false)
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	s, _, _ := newTestStore()

	_, err := s.GetUserByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserByEmailCorruptRecord(t *testing.T) {
	s, kvs, _ := newTestStore()
	ctx := context.Background()

	// Malformed stored data reads as absent, never as a decode error
	require.NoError(t, kvs.Set(ctx, userKey("bad@x.com"), []byte("{not json")))

	_, err := s.GetUserByEmail(ctx, "bad@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmailNormalization(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "  Alice@Example.COM ", false)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	got, err := s.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestRoundTrip(t *testing.T) {
	s, _, clock := newTestStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "a@x.com", false)
	require.NoError(t, err)

	user, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	user.Plan = models.PlanBasic
	user.GeneratedContent = []models.GeneratedContent{{
		CreatedAt:                    daysAgo(clock, 5),
		Variations:                   []models.MarketingVariation{{ID: 1, Hook: "hook", Body: "body", CTA: "cta"}},
		CoreAudienceSets:             []models.CoreAudienceSet{},
		CustomAudienceSuggestions:    []models.AudienceSuggestion{},
		LookalikeAudienceSuggestions: []models.AudienceSuggestion{},
	}}
	require.NoError(t, s.UpdateUser(ctx, user))

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	// Entry is within the 30-day BASIC window, so the read matches the write
	assert.Equal(t, models.PlanBasic, got.Plan)
	require.Len(t, got.GeneratedContent, 1)
	assert.Equal(t, "hook", got.GeneratedContent[0].Variations[0].Hook)
	assert.True(t, got.GeneratedContent[0].CreatedAt.Equal(daysAgo(clock, 5)))
}

func TestUpdateUserPreservesAdminAndCreation(t *testing.T) {
	s, _, clock := newTestStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "admin@app.com", true)
	require.NoError(t, err)
	require.True(t, created.IsAdmin)

	// A later write that tries to flip isAdmin or backdate the account is
	// silently corrected against the stored record.
	clock.now = clock.now.Add(time.Hour)
	stale := *created
	stale.IsAdmin = false
	stale.CreatedAt = clock.now
	stale.Plan = models.PlanPro
	require.NoError(t, s.UpdateUser(ctx, &stale))

	got, err := s.GetUserByEmail(ctx, "admin@app.com")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin, "isAdmin must never be flipped by an update")
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	assert.Equal(t, models.PlanPro, got.Plan)
}

func TestMutatePreservesIdentityFields(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "admin@app.com", true)
	require.NoError(t, err)

	err = s.Mutate(ctx, "admin@app.com", func(u *models.User) error {
		u.IsAdmin = false
		u.Email = "hijacked@x.com"
		u.Status = models.UserStatusInactive
		return nil
	})
	require.NoError(t, err)

	got, err := s.GetUserByEmail(ctx, "admin@app.com")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
	assert.Equal(t, "admin@app.com", got.Email)
	assert.Equal(t, models.UserStatusInactive, got.Status)
}

func TestMutateNotFound(t *testing.T) {
	s, _, _ := newTestStore()

	err := s.Mutate(context.Background(), "ghost@x.com", func(u *models.User) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllUsersSkipsCorrupt(t *testing.T) {
	s, kvs, _ := newTestStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "a@x.com", false)
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, "b@x.com", false)
	require.NoError(t, err)

	// A corrupt blob under the user namespace is skipped, not fatal
	require.NoError(t, kvs.Set(ctx, userKeyPrefix+"broken@x.com", []byte("garbage")))

	users, err := s.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@x.com", users[0].Email)
	assert.Equal(t, "b@x.com", users[1].Email)
}

func TestSessionConsistency(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "a@x.com", false)
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentUser(ctx, created))

	// Mutate the authoritative record after the session was set
	require.NoError(t, s.Mutate(ctx, "a@x.com", func(u *models.User) error {
		u.Plan = models.PlanPro
		return nil
	}))

	// GetCurrentUser must re-read, not replay the object passed to
	// SetCurrentUser
	current, err := s.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", current.Email)
	assert.Equal(t, models.PlanPro, current.Plan)
}

func TestGetCurrentUserNoSession(t *testing.T) {
	s, _, _ := newTestStore()

	_, err := s.GetCurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCorruptSessionCleared(t *testing.T) {
	s, kvs, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, kvs.Set(ctx, sessionKey, []byte("{broken")))

	_, err := s.GetCurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	// The corrupt pointer was removed as a side effect
	_, err = kvs.Get(ctx, sessionKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestClearCurrentUser(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "a@x.com", false)
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentUser(ctx, user))

	require.NoError(t, s.ClearCurrentUser(ctx))

	_, err = s.GetCurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetCurrentUserNilClears(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "a@x.com", false)
	require.NoError(t, err)
	require.NoError(t, s.SetCurrentUser(ctx, user))
	require.NoError(t, s.SetCurrentUser(ctx, nil))

	_, err = s.GetCurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityLogOrder(t *testing.T) {
	s, _, clock := newTestStore()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		clock.now = clock.now.Add(time.Minute)
		require.NoError(t, s.LogActivity(ctx, fmt.Sprintf("message %d", i), "b@x.com"))
	}

	activities, err := s.GetActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 3)

	// Newest first
	assert.Equal(t, "message 3", activities[0].Message)
	assert.Equal(t, "message 2", activities[1].Message)
	assert.Equal(t, "message 1", activities[2].Message)
	assert.Equal(t, "b@x.com", activities[0].UserEmail)
}

func TestActivityLogCap(t *testing.T) {
	s, _, clock := newTestStore()
	ctx := context.Background()

	for i := 1; i <= 150; i++ {
		clock.now = clock.now.Add(time.Second)
		require.NoError(t, s.LogActivity(ctx, fmt.Sprintf("message %d", i), "b@x.com"))
	}

	activities, err := s.GetActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 100)

	// The 100 most recent survive, newest first; the 50 oldest are gone
	assert.Equal(t, "message 150", activities[0].Message)
	assert.Equal(t, "message 51", activities[99].Message)
	for _, a := range activities {
		assert.NotEqual(t, "message 50", a.Message)
	}
}

func TestGetActivitiesEmpty(t *testing.T) {
	s, _, _ := newTestStore()

	activities, err := s.GetActivities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestGetActivitiesCorruptLog(t *testing.T) {
	s, kvs, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, kvs.Set(ctx, activityKey, []byte("not json")))

	activities, err := s.GetActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, activities)
}
