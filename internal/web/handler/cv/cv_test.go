package cv

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devportfolio/devportfolio/internal/config"
	"github.com/devportfolio/devportfolio/internal/portfolio"
	"github.com/devportfolio/devportfolio/internal/web/handler/handlertest"
)

func TestGet(t *testing.T) {
	stored := portfolio.Sample()
	stored.PersonalInfo.Name = "Jane  Doe"

	testCases := []struct {
		name         string
		up           *handlertest.Upstream
		wantFilename string
		wantHeading  string
	}{
		{name: "stored snapshot", up: handlertest.New(stored), wantFilename: "Jane_Doe_CV.txt", wantHeading: "JANE  DOE"},
		{name: "backend down", up: handlertest.Down(), wantFilename: "Alex_Kumar_CV.txt", wantHeading: "ALEX KUMAR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			cfg := &config.Config{Webserver: config.Webserver{URL: "https://jane.dev"}}

			var s Service
			require.NoError(t, s.Init(app, cfg, tc.up))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/plain")
			assert.Equal(t, `attachment; filename="`+tc.wantFilename+`"`,
				resp.Header.Get(fiber.HeaderContentDisposition))
			assert.Contains(t, string(body), tc.wantHeading)
			assert.Contains(t, string(body), "Portfolio Website: https://jane.dev")
		})
	}
}
