package chi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devportfolio/devportfolio/internal/logger"
)

// captureStdout runs fn with os.Stdout redirected and returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w

	fn()

	os.Stdout = orig
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)

	return buf.String()
}

func TestAccessLog(t *testing.T) {
	cfg := Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			DisableCheckAlive:        true,
			Console:                  logger.Console{Enabled: true},
		},
		CheckAliveURI: "/checkalive",
	}

	testCases := []struct {
		name       string
		path       string
		wantStatus int
		wantLogged bool
	}{
		{name: "ok", path: "/api/projects?featured=1", wantStatus: http.StatusOK, wantLogged: true},
		{name: "not found", path: "/api/projects/9", wantStatus: http.StatusNotFound, wantLogged: true},
		{name: "checkalive skipped", path: "/checkalive", wantStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureStdout(t, func() {
				r := chi.NewRouter()
				r.Use(middleware.RequestID)
				r.Use(New(cfg))
				r.Get("/api/projects", func(w http.ResponseWriter, _ *http.Request) {
					_, _ = w.Write([]byte("[]"))
				})
				r.Get("/api/projects/{id}", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusNotFound)
				})
				r.Get("/checkalive", func(w http.ResponseWriter, _ *http.Request) {
					_, _ = w.Write([]byte("OK"))
				})

				rec := httptest.NewRecorder()
				r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
				assert.Equal(t, tc.wantStatus, rec.Code)
			})

			if !tc.wantLogged {
				assert.Empty(t, out)
				return
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &entry))

			assert.Equal(t, float64(tc.wantStatus), entry["status"])
			assert.Equal(t, tc.path, entry["URI"])
			assert.Equal(t, http.MethodGet, entry["method"])
			assert.NotEmpty(t, entry["request_id"])
		})
	}
}
