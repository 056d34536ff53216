package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DIMO-Network/myriota-webhook/internal/config"
	"github.com/DIMO-Network/myriota-webhook/internal/controllers/messages"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettings(t *testing.T) *config.Settings {
	t.Helper()
	settings := &config.Settings{
		MessagesFile: filepath.Join(t.TempDir(), "data", "myriota_messages.json"),
	}
	settings.ApplyDefaults()
	return settings
}

func TestCreateServers_Routes(t *testing.T) {
	t.Parallel()
	settings := newTestSettings(t)
	app, err := CreateServers(settings, zerolog.Nop())
	require.NoError(t, err)

	t.Run("health", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
		_, err = time.Parse(time.RFC3339Nano, body["timestamp"])
		assert.NoError(t, err)
	})

	t.Run("readiness does not write", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, messages.WebhookPath, nil))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		_, err = os.Stat(settings.MessagesFile)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("receive list clear", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, messages.WebhookPath, strings.NewReader(`{"foo":"bar"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		var ack messages.ReceiveResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
		_ = resp.Body.Close()
		assert.Equal(t, "success", ack.Status)
		assert.Equal(t, 1, ack.MessageID)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/messages", nil))
		require.NoError(t, err)
		var list messages.ListResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		_ = resp.Body.Close()
		require.Equal(t, 1, list.TotalMessages)
		assert.Equal(t, ack.ReceivedAt, list.Messages[0].ReceivedAt)

		resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/clear", nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/messages", nil))
		require.NoError(t, err)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		_ = resp.Body.Close()
		assert.Equal(t, 0, list.TotalMessages)
	})
}

func TestCreateServers_Swagger(t *testing.T) {
	t.Parallel()
	app, err := CreateServers(newTestSettings(t), zerolog.Nop())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "Myriota Webhook Receiver", doc.Info.Title)
	require.Contains(t, doc.Paths, messages.WebhookPath)
	assert.Contains(t, doc.Paths[messages.WebhookPath], "post")
	assert.Contains(t, doc.Paths, "/messages")
	assert.Contains(t, doc.Paths, "/clear")
}

func TestCreateServers_CorruptLog(t *testing.T) {
	t.Parallel()
	settings := newTestSettings(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(settings.MessagesFile), 0o755))
	require.NoError(t, os.WriteFile(settings.MessagesFile, []byte("{{{"), 0o644))

	app, err := CreateServers(settings, zerolog.Nop())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/messages", nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list messages.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 0, list.TotalMessages)
}

func TestCreateFiberApp_RecoversPanics(t *testing.T) {
	t.Parallel()
	app := CreateFiberApp(zerolog.Nop(), nil)
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
