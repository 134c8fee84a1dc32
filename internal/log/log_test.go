package log

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestFieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		c.Locals("requestid", "rid-1")
		c.Locals("user_id", "u-1")
		Audit(c, "thing.changed", map[string]any{"id": 7})
		Security(c, "thing.denied", nil)
		Error(c, "thing.failed", errors.New("boom"), nil)
		return c.SendStatus(fiber.StatusNoContent)
	})
	_, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)

	all := logs.All()
	require.Len(t, all, 3)

	audit := all[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, all[0].Level)
	assert.Equal(t, "thing.changed", audit["action"])
	assert.Equal(t, "rid-1", audit["req_id"])
	assert.Equal(t, "u-1", audit["user_id"])
	assert.Equal(t, "/x", audit["path"])
	assert.Equal(t, map[string]any{"id": 7, "kind": "audit"}, audit["fields"])

	assert.Equal(t, zapcore.WarnLevel, all[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, all[2].Level)
	assert.Equal(t, "boom", all[2].ContextMap()["error"])
}

func TestAuditDoesNotMutateCallerFields(t *testing.T) {
	Set(zap.New(zapcore.NewNopCore()))
	t.Cleanup(func() { Set(nil) })

	f := map[string]any{"a": 1}
	Audit(nil, "x", f)
	assert.NotContains(t, f, "kind")
}

func TestInitBuildsLogger(t *testing.T) {
	t.Cleanup(func() { Set(nil) })
	l, err := Init(Options{Level: "debug", File: t.TempDir() + "/app.log"})
	require.NoError(t, err)
	assert.Same(t, l, L())
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
