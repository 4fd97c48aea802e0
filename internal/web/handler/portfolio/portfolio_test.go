package portfolio

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/web/handler/handlertest"
)

func TestGet(t *testing.T) {
	stored := portfolio.Snapshot{
		PersonalInfo: portfolio.PersonalInfo{Name: "Jane Doe"},
		Projects:     []portfolio.Project{{ID: "7", Title: "Seven", Technologies: []string{}}},
		Skills:       []portfolio.Skill{},
	}

	testCases := []struct {
		name         string
		up           *handlertest.Upstream
		path         string
		wantSnapshot *portfolio.Snapshot
		wantProjects []portfolio.Project
	}{
		{name: "stored snapshot", up: handlertest.New(stored), path: Path, wantSnapshot: &stored},
		{name: "sample when backend is down", up: handlertest.Down(), path: Path, wantSnapshot: ptr(portfolio.Sample())},
		{name: "stored projects", up: handlertest.New(stored), path: ProjectsPath, wantProjects: stored.Projects},
		{name: "sample projects when backend is down", up: handlertest.Down(), path: ProjectsPath, wantProjects: portfolio.Sample().Projects},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()

			var s Service
			require.NoError(t, s.Init(app, tc.up))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))

			if tc.wantSnapshot != nil {
				var got portfolio.Snapshot
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
				assert.Equal(t, *tc.wantSnapshot, got)

				return
			}

			var got []portfolio.Project
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tc.wantProjects, got)
		})
	}
}

func TestInitRequiresUpstream(t *testing.T) {
	var s Service
	require.Error(t, s.Init(fiber.New(), nil))
}

func ptr[T any](v T) *T { return &v }
