package store

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/devportfolio/devportfolio/internal/auth"
	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/db/controller/snapshot"
	"github.com/devportfolio/devportfolio/internal/portfolio"
)

const testSecret = "shared-secret"

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, secret string) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(Models()...))

	cfg := &config.Config{Store: config.Store{Port: 8000, JWTSecret: secret}}

	s, err := New(cfg, db)
	require.NoError(t, err)

	s.now = func() time.Time { return fixedNow }

	return s, db
}

func do(t *testing.T, h http.Handler, method, path, body, token string) (int, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, r)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec.Code, rec.Body.String()
}

func TestNewWithoutDB(t *testing.T) {
	_, err := New(&config.Config{}, nil)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestSeed(t *testing.T) {
	s, db := newTestServer(t, "")

	require.False(t, snapshot.Exists(db))
	require.NoError(t, s.Seed())
	require.True(t, snapshot.Exists(db))

	var r snapshot.Record
	require.NoError(t, r.Load(db))
	assert.Len(t, r.Projects, 3)

	// a second seed keeps what is stored
	r.Projects = r.Projects[:1]
	require.NoError(t, r.Save(db, fixedNow))
	require.NoError(t, s.Seed())

	require.NoError(t, r.Load(db))
	assert.Len(t, r.Projects, 1)
}

func TestReadRoutes(t *testing.T) {
	s, _ := newTestServer(t, "")
	require.NoError(t, s.Seed())

	h := s.Routes()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "root",
			path:       "/",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"message":"Portfolio API is running!"`},
		},
		{
			name:       "health",
			path:       "/health",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"status":"healthy"`, `"data_exists":true`},
		},
		{
			name:       "portfolio",
			path:       "/api/portfolio",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"personalInfo"`, `"lastUpdated":"2026-05-04T10:00:00Z"`},
		},
		{
			name:       "projects",
			path:       "/api/projects",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"title":"Automated CI/CD Pipeline"`},
		},
		{
			name:       "project by id",
			path:       "/api/projects/2",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"title":"Infrastructure as Code"`},
		},
		{
			name:       "unknown project",
			path:       "/api/projects/99",
			wantStatus: http.StatusNotFound,
			wantBody:   []string{`"error":"Project not found"`},
		},
		{
			name:       "skills",
			path:       "/api/skills",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"Containerization":[{"name":"Docker","level":85}`},
		},
		{
			name:       "personal info",
			path:       "/api/personal-info",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"name":"Alex Kumar"`},
		},
		{
			name:       "stats",
			path:       "/api/stats",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"totalProjects":3`, `"featuredProjects":2`, `"skillCategories":4`},
		},
		{
			name:       "checkalive",
			path:       "/checkalive",
			wantStatus: http.StatusOK,
			wantBody:   []string{"OK"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, h, http.MethodGet, tt.path, "", "")

			assert.Equal(t, tt.wantStatus, status)

			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestPortfolioBeforeSeed(t *testing.T) {
	s, _ := newTestServer(t, "")

	status, body := do(t, s.Routes(), http.MethodGet, "/api/portfolio", "", "")
	require.Equal(t, http.StatusOK, status)

	got, err := portfolio.Decode([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, portfolio.Sample(), got)
	assert.NotContains(t, body, "lastUpdated")

	_, body = do(t, s.Routes(), http.MethodGet, "/health", "", "")
	assert.Contains(t, body, `"data_exists":false`)
}

func TestUpdatePortfolio(t *testing.T) {
	s, db := newTestServer(t, testSecret)
	h := s.Routes()

	snap := portfolio.Default()
	snap.PersonalInfo.Name = "Jane Doe"
	snap.Projects = []portfolio.Project{{ID: "7", Title: "Edge Proxy"}}

	payload, err := json.Marshal(snap)
	require.NoError(t, err)

	token, err := auth.SignToken(testSecret, auth.IssuerWeb, time.Now())
	require.NoError(t, err)

	t.Run("without token", func(t *testing.T) {
		status, _ := do(t, h, http.MethodPost, "/api/portfolio", string(payload), "")
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, snapshot.Exists(db))
	})

	t.Run("invalid body", func(t *testing.T) {
		status, body := do(t, h, http.MethodPost, "/api/portfolio", "not json", token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body, "Invalid portfolio data")
	})

	t.Run("null body", func(t *testing.T) {
		status, _ := do(t, h, http.MethodPost, "/api/portfolio", "null", token)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, snapshot.Exists(db))
	})

	t.Run("with token", func(t *testing.T) {
		status, body := do(t, h, http.MethodPost, "/api/portfolio", string(payload), token)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `"message":"Portfolio updated successfully"`)

		var r snapshot.Record
		require.NoError(t, r.Load(db))
		assert.Equal(t, "Jane Doe", r.PersonalInfo.Name)
		require.NotNil(t, r.LastUpdated)
		assert.True(t, fixedNow.Equal(*r.LastUpdated))

		status, body = do(t, h, http.MethodGet, "/api/projects/7", "", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `"title":"Edge Proxy"`)
	})
}

func TestContact(t *testing.T) {
	s, _ := newTestServer(t, testSecret)
	h := s.Routes()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid",
			body:       `{"name":" Jane ","email":"jane@example.com","subject":"Hi","message":"Hello there"}`,
			wantStatus: http.StatusOK,
			wantBody:   "Thank you for your message! I'll get back to you soon.",
		},
		{
			name:       "bad email",
			body:       `{"name":"Jane","email":"not-an-email","subject":"Hi","message":"Hello"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "Invalid contact message",
		},
		{
			name:       "missing subject",
			body:       `{"name":"Jane","email":"jane@example.com","subject":"  ","message":"Hello"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "Invalid contact message",
		},
		{
			name:       "not json",
			body:       `name=Jane`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, h, http.MethodPost, "/api/contact", tt.body, "")
			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, body, tt.wantBody)
		})
	}

	status, _ := do(t, h, http.MethodGet, "/api/contact-messages", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	token, err := auth.SignToken(testSecret, auth.IssuerWeb, time.Now())
	require.NoError(t, err)

	status, body := do(t, h, http.MethodGet, "/api/contact-messages", "", token)
	require.Equal(t, http.StatusOK, status)

	var messages []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &messages))
	require.Len(t, messages, 1)
	assert.Equal(t, "Jane", messages[0]["name"])
	assert.Equal(t, "2026-05-04T10:00:00Z", messages[0]["timestamp"])
}
