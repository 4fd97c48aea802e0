package logger

import (
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusHook(t *testing.T) {
	hook := NewPrometheusHook("store")
	l := zerolog.New(io.Discard).Hook(hook)

	warnBefore := testutil.ToFloat64(logStatements.WithLabelValues("store", "warn"))

	l.Warn().Msg("one")
	l.Warn().Msg("two")
	l.Log().Msg("no level")

	assert.InDelta(t, warnBefore+2, testutil.ToFloat64(logStatements.WithLabelValues("store", "warn")), 0)

	// a second hook shares the registered counter
	NewPrometheusHook("hook-test").Run(nil, zerolog.ErrorLevel, "")
	assert.InDelta(t, 1, testutil.ToFloat64(logStatements.WithLabelValues("hook-test", "error")), 0)
}
