package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/tavola/internal/cache"
	"github.com/example/tavola/internal/config"
	"github.com/example/tavola/internal/database"
	"github.com/example/tavola/internal/handlers"
	"github.com/example/tavola/internal/models"
	"github.com/example/tavola/internal/utils"
)

type stubStorage struct{}

func (stubStorage) Upload(_ context.Context, filename, _ string, _ []byte) (string, error) {
	return "https://cdn.example.com/partners/" + filename, nil
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		TokenExpires:      time.Hour,
		CacheTTL:          5 * time.Minute,
		ContactRateLimit:  3,
		ContactRateWindow: 10 * time.Minute,
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	Register(app, db, cfg, cache.NewMemory(cfg.CacheTTL), stubStorage{}, zerolog.Nop())
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func adminToken(t *testing.T, app *fiber.App, db *gorm.DB) string {
	t.Helper()
	require.NoError(t, database.SeedAdmin(db, "admin@example.com", "s3cret-pass"))

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "admin@example.com",
		"password": "s3cret-pass",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPublicContactFormStoresSubmission(t *testing.T) {
	app, db := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/public/contact", fiber.Map{
		"name":    "Alessandro",
		"email":   " Chef@Example.COM ",
		"subject": "Kitchen workflow",
		"message": "We need help streamlining our dinner service.",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var stored []models.ContactSubmission
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "chef@example.com", stored[0].Email)
	assert.NotEmpty(t, stored[0].IPAddress)
	assert.False(t, stored[0].SubmittedAt.IsZero())
}

func TestPublicContactFormValidationErrors(t *testing.T) {
	app, db := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/public/contact", fiber.Map{
		"name":    "Al",
		"email":   "bad-email",
		"subject": "Hi",
		"message": "",
	}, "")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok, "validation response carries field errors")
	assert.NotContains(t, fields, "name", `"Al" is two characters and passes`)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "subject")
	assert.Contains(t, fields, "message")

	var count int64
	require.NoError(t, db.Model(&models.ContactSubmission{}).Count(&count).Error)
	assert.Zero(t, count, "nothing is stored on validation failure")
}

func TestPublicContactFormRateLimit(t *testing.T) {
	app, _ := newTestApp(t)

	valid := fiber.Map{
		"name":    "Alessandro",
		"email":   "chef@example.com",
		"subject": "Kitchen workflow",
		"message": "We need help streamlining our dinner service.",
	}

	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/public/contact", valid, "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, "submission %d", i+1)
	}

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/public/contact", valid, "")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	app, db := newTestApp(t)

	resp, _ := doJSON(t, app, fiber.MethodGet, "/api/admin/dashboard", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/admin/dashboard", nil, "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token := adminToken(t, app, db)
	resp, body := doJSON(t, app, fiber.MethodGet, "/api/admin/dashboard", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestLoginRecordsSecurityEvents(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, database.SeedAdmin(db, "admin@example.com", "s3cret-pass"))

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "admin@example.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "admin@example.com",
		"password": "s3cret-pass",
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var events []models.SecurityEvent
	require.NoError(t, db.Order("created_at asc").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventLoginFailed, events[0].EventType)
	assert.Equal(t, models.EventLoginSuccess, events[1].EventType)
	for _, e := range events {
		assert.NotContains(t, e.EmailHash, "@", "raw email is never stored")
		assert.Len(t, e.EmailHash, 64)
	}
}

func TestReviewRatingValidationOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	token := adminToken(t, app, db)

	for _, rating := range []int{0, 6} {
		resp, body := doJSON(t, app, fiber.MethodPost, "/api/admin/reviews/", fiber.Map{
			"user_name": "Ana",
			"comment":   "Great service",
			"rating":    rating,
		}, token)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "rating %d", rating)
		fields := body["fields"].(map[string]interface{})
		assert.Contains(t, fields, "rating")
	}

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/admin/reviews/", fiber.Map{
		"user_name": "Ana",
		"comment":   "Great service",
		"rating":    5,
	}, token)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestContentSectionLifecycle(t *testing.T) {
	app, db := newTestApp(t)
	token := adminToken(t, app, db)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/admin/content-sections/", fiber.Map{
		"section_key": "hero_banner",
		"title":       "Welcome",
		"content":     "We help restaurants run better.",
	}, token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	id := data["id"].(string)

	// Public lookup by key works.
	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/public/content-sections/hero_banner", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Duplicate keys are rejected.
	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/admin/content-sections/", fiber.Map{
		"section_key": "hero_banner",
	}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Delete removes it from both list and key lookup.
	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/admin/content-sections/"+id, nil, token)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/public/content-sections/hero_banner", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/public/content-sections", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])
}

func TestPartnerReorderOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	token := adminToken(t, app, db)

	for i, name := range []string{"a", "b", "c"} {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/admin/partners/", fiber.Map{
			"partner_name": name + name,
			"logo_url":     fmt.Sprintf("https://cdn.example.com/%s.png", name),
		}, token)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, "partner %d", i)
	}

	resp, body := doJSON(t, app, fiber.MethodPut, "/api/admin/partners/reorder", fiber.Map{
		"source":      0,
		"destination": 2,
	}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].([]interface{})
	require.Len(t, data, 3)
	last := data[2].(map[string]interface{})
	assert.Equal(t, "aa", last["partner_name"])
	assert.Equal(t, float64(2), last["display_order"])

	var stored []models.Partner
	require.NoError(t, db.Order("display_order asc").Find(&stored).Error)
	for i, p := range stored {
		assert.Equal(t, i, p.DisplayOrder)
	}
}

func TestCSVExport(t *testing.T) {
	app, db := newTestApp(t)
	token := adminToken(t, app, db)

	require.NoError(t, db.Create(&models.Review{UserName: "Ana", Comment: "Top", Rating: 5}).Error)

	req := httptest.NewRequest(fiber.MethodGet, "/api/admin/export/reviews", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "reviews.csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "user_name")
	assert.Contains(t, string(raw), "Ana")
}

func TestNonAdminUserIsForbidden(t *testing.T) {
	app, db := newTestApp(t)

	// An account without the admin role can log in but not reach /admin.
	hash, err := utils.HashPassword("pass-word")
	require.NoError(t, err)
	user := models.User{Email: "viewer@example.com", DisplayName: "Viewer", PasswordHash: hash}
	require.NoError(t, db.Create(&user).Error)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "viewer@example.com",
		"password": "pass-word",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := body["token"].(string)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/admin/dashboard", nil, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
