package observability

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tenderdesk/procurement-service/internal/config"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/admin/item/:id", "PATCH", 200, 10*time.Millisecond)
	m.RecordRequest("/admin/item/:id", "PATCH", 200, 30*time.Millisecond)
	m.RecordError("/admin/item/:id", "PATCH", "NO_OP_TRANSITION")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/admin/item/:id|PATCH|200"])
	assert.Equal(t, int64(20), snap.AvgLatencyMS["/admin/item/:id|PATCH|200"])
	assert.Equal(t, int64(1), snap.Errors["/admin/item/:id|PATCH|NO_OP_TRANSITION"])

	snap.Requests["/admin/item/:id|PATCH|200"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Requests["/admin/item/:id|PATCH|200"])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/member/item/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusForbidden).SendString("no")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/member/item/31", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	_, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/member/item/31", fields["path"])
	assert.Equal(t, "/member/item/:id", fields["route"])
	assert.Equal(t, int64(403), fields["status"])
	assert.Equal(t, int64(418), entries[1].ContextMap()["status"])

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Requests["/member/item/:id|GET|403"])
	assert.Equal(t, int64(1), snap.Requests["/boom|GET|418"])
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "DEBUG"}, config.AppConfig{Name: "procurement-service", Env: "production"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "nonsense"}, config.AppConfig{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
}
