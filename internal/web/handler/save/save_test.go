package save

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/web/handler/handlertest"
	"github.com/devportfolio/devportfolio/internal/web/session"
)

func post(t *testing.T, app *fiber.App, body string, cookie string) (int, Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out Response
	if resp.StatusCode != http.StatusUnauthorized {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}

	return resp.StatusCode, out
}

func TestPost(t *testing.T) {
	body, err := json.Marshal(portfolio.Sample())
	require.NoError(t, err)

	testCases := []struct {
		name        string
		up          *handlertest.Upstream
		body        string
		wantStatus  int
		wantSuccess bool
		wantStorage string
		wantMessage string
	}{
		{
			name:        "saved to backend",
			up:          handlertest.New(portfolio.Default()),
			body:        string(body),
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantStorage: StorageBackend,
			wantMessage: "Portfolio data saved permanently to backend",
		},
		{
			name:        "backend down",
			up:          handlertest.Down(),
			body:        string(body),
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantStorage: StorageLocal,
			wantMessage: "Data saved locally (backend not available)",
		},
		{
			name:        "malformed body",
			up:          handlertest.New(portfolio.Default()),
			body:        `{"projects":`,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to process save request",
		},
		{
			name:        "null body",
			up:          handlertest.New(portfolio.Default()),
			body:        `null`,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to process save request",
		},
		{
			name:        "array body",
			up:          handlertest.New(portfolio.Default()),
			body:        `[]`,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to process save request",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()

			var s Service
			require.NoError(t, s.Init(app, &config.Config{}, tc.up))

			status, out := post(t, app, tc.body, "")

			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantSuccess, out.Success)
			assert.Equal(t, tc.wantStorage, out.Storage)
			assert.Equal(t, tc.wantMessage, out.Message)

			switch tc.wantStorage {
			case StorageBackend:
				require.Len(t, tc.up.Saved, 1)
				assert.Equal(t, portfolio.Sample(), tc.up.Saved[0])
				assert.JSONEq(t, `{"message":"Portfolio updated successfully"}`, string(out.BackendResponse))
			case StorageLocal:
				assert.Equal(t, "Backend connection failed", out.Error)
			default:
				assert.NotEmpty(t, out.Error)
				assert.Empty(t, tc.up.Saved)
			}
		})
	}
}

func TestPostRequiresSession(t *testing.T) {
	session.Init(memory.New(), time.Minute)

	app := fiber.New()
	cfg := &config.Config{Admin: config.Admin{RequireAuth: true}}
	up := handlertest.New(portfolio.Default())

	var s Service
	require.NoError(t, s.Init(app, cfg, up))

	status, _ := post(t, app, `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = post(t, app, `{}`, "unknown-session")
	assert.Equal(t, http.StatusUnauthorized, status)

	data := &session.Data{}
	data.User.ID = 1
	data.User.Active = true
	require.NoError(t, data.Write("valid-session", time.Minute))

	status, out := post(t, app, `{}`, "valid-session")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, StorageBackend, out.Storage)
}
