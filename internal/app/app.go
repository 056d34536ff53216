package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/DIMO-Network/myriota-webhook/docs" // Import Swagger docs
	"github.com/DIMO-Network/myriota-webhook/internal/config"
	"github.com/DIMO-Network/myriota-webhook/internal/controllers/messages"
	"github.com/DIMO-Network/myriota-webhook/internal/messagelog"
	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
)

// CreateServers opens the message log described by settings and builds the fiber app around it.
func CreateServers(settings *config.Settings, logger zerolog.Logger) (*fiber.App, error) {
	if err := os.MkdirAll(filepath.Dir(settings.MessagesFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create message log directory: %w", err)
	}
	store := messagelog.NewStore(settings.MessagesFile, settings.RetentionCap, &logger)

	snap, err := store.Inspect()
	if err != nil {
		return nil, fmt.Errorf("failed to read message log: %w", err)
	}
	logger.Info().
		Str("path", store.Path()).
		Stringer("state", snap.State).
		Int("messages", len(snap.Records)).
		Int("retention_cap", settings.RetentionCap).
		Msg("Message log opened")

	messageLog := messagelog.NewCachedLog(store, settings.ListCacheTTL)
	return CreateFiberApp(logger, messageLog), nil
}

// CreateFiberApp sets up the API routes.
func CreateFiberApp(logger zerolog.Logger, messageLog messages.MessageLog) *fiber.App {
	logger.Info().Msg("Starting Myriota webhook receiver...")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fibercommon.ErrorHandler(c, err)
		},
		DisableStartupMessage: true,
	})
	app.Use(fibercommon.ContextLoggerMiddleware)
	app.Use(fiberrecover.New())

	messagesController := messages.NewMessagesController(messageLog)
	logger.Info().Msg("Registering routes...")

	app.Get("/", messagesController.Home)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	app.Get(messages.WebhookPath, messagesController.Ready)
	app.Post(messages.WebhookPath, messagesController.ReceiveMessage)

	app.Get("/messages", messagesController.ListMessages)

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/clear", messagesController.ClearMessages)
	app.Post("/clear", messagesController.ClearMessages)

	return app
}
