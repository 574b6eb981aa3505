package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogOrderEvent(t *testing.T) {
	// Log ra stdout để test không tạo thư mục logs
	cfg := DefaultConfig()
	cfg.Output = "stdout"
	require.NoError(t, Init(cfg))

	hook := logrustest.NewLocal(GetAuditLogger())
	defer hook.Reset()

	app := fiber.New()
	app.Post("/orders", func(c fiber.Ctx) error {
		LogOrderEvent("order_submitted", "ORD42", c, nil)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/orders", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	entries := hook.AllEntries()
	require.Len(t, entries, 1)

	// Action giữ nguyên tên sự kiện, không bị ghép thêm tiền tố
	assert.Equal(t, "order_submitted", entries[0].Data["action"])

	details, ok := entries[0].Data["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ORD42", details["order_id"])
}
