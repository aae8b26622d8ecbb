package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahsinkabir/marketmind/internal/account"
	"github.com/tahsinkabir/marketmind/internal/advisor"
	"github.com/tahsinkabir/marketmind/internal/analytics"
	"github.com/tahsinkabir/marketmind/internal/auth"
	"github.com/tahsinkabir/marketmind/internal/kv"
	"github.com/tahsinkabir/marketmind/internal/logging"
	"github.com/tahsinkabir/marketmind/internal/middleware"
	"github.com/tahsinkabir/marketmind/internal/store"
	"github.com/tahsinkabir/marketmind/pkg/models"
)

const testAdminEmail = "admin@marketmind.app"

// fakeModel replays a canned JSON response instead of calling Gemini.
type fakeModel struct {
	response   string
	imageBytes []byte
}

func (f *fakeModel) GenerateJSON(_ context.Context, _ string, _ *advisor.ImageInput, out any) error {
	return json.Unmarshal([]byte(f.response), out)
}

func (f *fakeModel) GenerateImage(_ context.Context, _ string) ([]byte, error) {
	return f.imageBytes, nil
}

func newTestAPI(t *testing.T) (*gin.Engine, *fakeModel) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetJWTSecret("test-secret")

	logger, err := logging.NewDefaultLogger()
	require.NoError(t, err)

	s := store.New(kv.NewMemoryStore())
	model := &fakeModel{}

	api := &API{
		store:   s,
		auth:    auth.NewService(s, logger, testAdminEmail, time.Hour),
		account: account.NewService(s, analytics.NewRandomGenerator(1), logger),
		advisor: advisor.NewService(model, logger),
		logger:  logger,
		limiter: middleware.NewRateLimiter(1000, 2000),
	}
	return setupRouter(api), model
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func testProduct() models.ProductInfo {
	return models.ProductInfo{
		Name:        "Herbal Tea",
		Description: "Organic herbal tea blend",
		Price:       "450",
		Currency:    "BDT",
		Category:    "Health & Wellness",
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(t, router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    " User@Example.COM ",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user@example.com", resp.User.Email)
	assert.Empty(t, resp.User.PasswordHash)
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterDuplicateEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)
	registerUser(t, router, "user@example.com", "secret1")

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    "user@example.com",
		"password": "another1",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)
	registerUser(t, router, "user@example.com", "secret1")

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestAPI(t)
	registerUser(t, router, "user@example.com", "secret1")

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresAuth(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)
	token := registerUser(t, router, "user@example.com", "secret1")

	w := doRequest(t, router, http.MethodGet, "/api/v1/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "user@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestSelectPlanEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)
	token := registerUser(t, router, "user@example.com", "secret1")

	w := doRequest(t, router, http.MethodPost, "/api/v1/me/plan", gin.H{"plan": "PRO"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, models.PlanPro, user.Plan)
}

func TestSelectPlanInvalid(t *testing.T) {
	router, _ := newTestAPI(t)
	token := registerUser(t, router, "user@example.com", "secret1")

	w := doRequest(t, router, http.MethodPost, "/api/v1/me/plan", gin.H{"plan": "ENTERPRISE"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateContentEndpoint(t *testing.T) {
	router, model := newTestAPI(t)
	token := registerUser(t, router, "user@example.com", "secret1")

	w := doRequest(t, router, http.MethodPost, "/api/v1/me/plan", gin.H{"plan": "STANDARD"}, token)
	require.Equal(t, http.StatusOK, w.Code)

	model.response = `{
		"variations": [
			{"id": 1, "formula_name": "AIDA", "hook": "h1", "body": "b1", "cta": "c1"},
			{"id": 2, "formula_name": "PAS", "hook": "h2", "body": "b2", "cta": "c2"},
			{"id": 3, "formula_name": "BAB", "hook": "h3", "body": "b3", "cta": "c3"}
		],
		"coreAudienceSets": [{"title": "Set A"}, {"title": "Set B"}],
		"audienceReasoning": "reasoning"
	}`

	w = doRequest(t, router, http.MethodPost, "/api/v1/generate/content", gin.H{
		"productInfo": testProduct(),
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Content models.GeneratedContent `json:"content"`
		User    models.User             `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Content.Variations, 3)
	assert.Len(t, resp.Content.CoreAudienceSets, 2)
	require.Len(t, resp.User.GeneratedContent, 1)
	assert.Empty(t, resp.User.PasswordHash)
}

func TestGenerateContentPlanGating(t *testing.T) {
	router, model := newTestAPI(t)
	token := registerUser(t, router, "user@example.com", "secret1")

	// Fresh accounts have no plan, which gets the BASIC limits
	model.response = `{
		"variations": [
			{"id": 1, "formula_name": "AIDA", "hook": "h1", "body": "b1", "cta": "c1"},
			{"id": 2, "formula_name": "PAS", "hook": "h2", "body": "b2", "cta": "c2"}
		],
		"coreAudienceSets": [{"title": "Set A"}, {"title": "Set B"}],
		"audienceReasoning": "reasoning"
	}`

	w := doRequest(t, router, http.MethodPost, "/api/v1/generate/content", gin.H{
		"productInfo": testProduct(),
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Content models.GeneratedContent `json:"content"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Content.Variations, 1)
	assert.Len(t, resp.Content.CoreAudienceSets, 1)
}

func TestUpdateContentInvalidIndex(t *testing.T) {
	router, _ := newTestAPI(t)
	token := registerUser(t, router, "user@example.com", "secret1")

	w := doRequest(t, router, http.MethodPut, "/api/v1/content/5", models.GeneratedContent{}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateImageEndpoint(t *testing.T) {
	router, model := newTestAPI(t)
	token := registerUser(t, router, "user@example.com", "secret1")

	model.imageBytes = []byte("jpeg-bytes")

	w := doRequest(t, router, http.MethodPost, "/api/v1/generate/image", gin.H{
		"prompt": "a tea cup",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ImageBase64 string `json:"imageBase64"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ImageBase64)
}

func TestAdminForbiddenForRegularUser(t *testing.T) {
	router, _ := newTestAPI(t)
	token := registerUser(t, router, "user@example.com", "secret1")

	w := doRequest(t, router, http.MethodGet, "/api/v1/admin/users", nil, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminListUsers(t *testing.T) {
	router, _ := newTestAPI(t)
	registerUser(t, router, "user@example.com", "secret1")
	adminToken := registerUser(t, router, testAdminEmail, "secret1")

	w := doRequest(t, router, http.MethodGet, "/api/v1/admin/users", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Users []models.User `json:"users"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	for _, u := range resp.Users {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestAdminSetPlan(t *testing.T) {
	router, _ := newTestAPI(t)
	userToken := registerUser(t, router, "user@example.com", "secret1")
	adminToken := registerUser(t, router, testAdminEmail, "secret1")

	w := doRequest(t, router, http.MethodPut, "/api/v1/admin/users/user@example.com/plan", gin.H{"plan": "PRO"}, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/v1/me", nil, userToken)
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, models.PlanPro, user.Plan)
}

func TestAdminSetStatus(t *testing.T) {
	router, _ := newTestAPI(t)
	registerUser(t, router, "user@example.com", "secret1")
	adminToken := registerUser(t, router, testAdminEmail, "secret1")

	w := doRequest(t, router, http.MethodPut, "/api/v1/admin/users/user@example.com/status", gin.H{"status": "inactive"}, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The deactivated account can no longer log in
	w = doRequest(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "secret1",
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminActivityFeed(t *testing.T) {
	router, _ := newTestAPI(t)
	registerUser(t, router, "user@example.com", "secret1")
	adminToken := registerUser(t, router, testAdminEmail, "secret1")

	w := doRequest(t, router, http.MethodGet, "/api/v1/admin/activities", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Activities []models.ActivityLog `json:"activities"`
		Total      int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total, "both registrations were logged")
}
