package fiber_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devportfolio/devportfolio/internal/logger"
	adapter "github.com/devportfolio/devportfolio/internal/logger/adapter/fiber"
)

// accessLine is the subset of the access log line the tests look at.
type accessLine struct {
	IP     net.IP `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			DisableCheckAlive:        true,
			Console:                  logger.Console{Enabled: true},
		},
		CheckAliveURI: "/checkalive",
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		config adapter.Config
		want   *accessLine
	}{
		{
			name:   "no writers no output",
			method: fiber.MethodGet,
			path:   "/api/portfolio",
		},
		{
			name:   "portfolio read",
			method: fiber.MethodGet,
			path:   "/api/portfolio",
			config: consoleConfig(),
			want:   &accessLine{Status: fiber.StatusOK, URI: "/api/portfolio", Method: fiber.MethodGet},
		},
		{
			name:   "query string kept",
			method: fiber.MethodGet,
			path:   "/api/portfolio?fresh=1",
			config: consoleConfig(),
			want:   &accessLine{Status: fiber.StatusOK, URI: "/api/portfolio?fresh=1", Method: fiber.MethodGet},
		},
		{
			name:   "multi slash path kept as requested",
			method: fiber.MethodGet,
			path:   "//api/unknown",
			config: consoleConfig(),
			want: &accessLine{
				Status: fiber.StatusNotFound,
				URI:    "//api/unknown",
				Method: fiber.MethodGet,
				Error:  "Cannot GET //api/unknown",
			},
		},
		{
			name:   "handler error is logged",
			method: fiber.MethodPost,
			path:   "/api/admin/save",
			config: consoleConfig(),
			want: &accessLine{
				Status: fiber.StatusInternalServerError,
				URI:    "/api/admin/save",
				Method: fiber.MethodPost,
				Error:  "save failed",
			},
		},
		{
			name:   "checkalive skipped",
			method: fiber.MethodGet,
			path:   "/checkalive",
			config: consoleConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := serveAndCapture(t, tt.method, tt.path, tt.config)
			require.NoError(t, err)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var line accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &line))

			assert.Equal(t, "example.com", line.Host)
			assert.Equal(t, net.ParseIP("0.0.0.0"), line.IP)
			assert.Equal(t, tt.want.Method, line.Method)
			assert.Equal(t, tt.want.Status, line.Status)
			assert.Equal(t, tt.want.URI, line.URI)
			assert.Equal(t, tt.want.Error, line.Error)
		})
	}
}

func serveAndCapture(t *testing.T, method, target string, cfg adapter.Config) (string, error) {
	t.Helper()

	stdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(cfg))

	app.Get("/api/portfolio", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"projects": []string{}})
	})
	app.Post("/api/admin/save", func(_ *fiber.Ctx) error {
		return errors.New("save failed")
	})
	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_, err = app.Test(httptest.NewRequest(method, target, nil), 100000)

	_ = w.Close()
	os.Stdout = stdout

	return <-outC, err
}
