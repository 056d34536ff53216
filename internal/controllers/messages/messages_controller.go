//go:generate go tool mockgen -source=messages_controller.go -destination=messages_controller_mock_test.go -package=messages
package messages

import (
	"time"

	"github.com/DIMO-Network/myriota-webhook/internal/messagelog"
	"github.com/DIMO-Network/myriota-webhook/internal/metrics"
	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// WebhookPath is where Myriota delivers messages.
const WebhookPath = "/webhook/myriota"

// MessageLog is the persisted log of received messages.
type MessageLog interface {
	Load() ([]messagelog.Record, error)
	Append(payload any) (messagelog.Record, error)
	Clear() error
}

// MessagesController receives Myriota webhook messages and serves the stored log.
type MessagesController struct {
	log MessageLog
	now func() time.Time
}

// NewMessagesController creates a new MessagesController.
func NewMessagesController(log MessageLog) *MessagesController {
	return &MessagesController{
		log: log,
		now: time.Now,
	}
}

// Home renders the landing page with the endpoint list and the webhook URL to configure.
func (m *MessagesController) Home(c *fiber.Ctx) error {
	return renderPage(c, fiber.StatusOK, "index.html", indexPage{
		WebhookURL: c.BaseURL() + WebhookPath,
	})
}

// Ready godoc
// @Summary      Readiness check for the webhook endpoint
// @Tags         Messages
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /webhook/myriota [get]
func (m *MessagesController) Ready(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{
		Status:  "ready",
		Message: "Endpoint ready to receive Myriota POST requests",
	})
}

// ReceiveMessage godoc
// @Summary      Receive a Myriota message
// @Description  Captures headers, body, query and form of the request and appends it to the message log.
// @Description  A body that is not valid JSON is kept as raw data.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Success      200  {object}  ReceiveResponse
// @Failure      500  "Message could not be stored"
// @Router       /webhook/myriota [post]
func (m *MessagesController) ReceiveMessage(c *fiber.Ctx) error {
	logger := zerolog.Ctx(c.UserContext())
	capture := captureRequest(c, m.now())
	logger.Debug().Interface("payload", capture).Msg("Webhook request captured")

	rec, err := m.log.Append(capture)
	if err != nil {
		metrics.StorageFailures.WithLabelValues(metrics.OperationAppend).Inc()
		return richerrors.Error{
			ExternalMsg: "Failed to store message: " + err.Error(),
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	}
	metrics.MessagesReceived.Inc()
	logger.Info().Int("message_id", rec.ID).Msg("Webhook message stored")

	return c.JSON(ReceiveResponse{
		Status:     "success",
		Message:    "Data received successfully",
		MessageID:  rec.ID,
		ReceivedAt: rec.ReceivedAt,
	})
}

// ListMessages godoc
// @Summary      List received messages
// @Description  Returns the whole message log. Clients accepting text/html get a rendered page.
// @Tags         Messages
// @Produce      json,html
// @Success      200  {object}  ListResponse
// @Failure      500  "Message log could not be read"
// @Router       /messages [get]
func (m *MessagesController) ListMessages(c *fiber.Ctx) error {
	records, err := m.log.Load()
	if err != nil {
		metrics.StorageFailures.WithLabelValues(metrics.OperationLoad).Inc()
		return richerrors.Error{
			ExternalMsg: "Failed to read messages: " + err.Error(),
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	}

	if wantsHTML(c) {
		return renderPage(c, fiber.StatusOK, "messages.html", messagesPage{Messages: records})
	}
	return c.JSON(ListResponse{
		TotalMessages: len(records),
		Messages:      records,
	})
}

// ClearMessages godoc
// @Summary      Delete all received messages
// @Description  Unconditionally empties the message log. Intended for testing.
// @Tags         Messages
// @Produce      json,html
// @Success      200  {object}  StatusResponse
// @Failure      500  "Message log could not be cleared"
// @Router       /clear [get]
// @Router       /clear [post]
func (m *MessagesController) ClearMessages(c *fiber.Ctx) error {
	if err := m.log.Clear(); err != nil {
		metrics.StorageFailures.WithLabelValues(metrics.OperationClear).Inc()
		return richerrors.Error{
			ExternalMsg: "Failed to clear messages: " + err.Error(),
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	}
	metrics.LogClears.Inc()
	zerolog.Ctx(c.UserContext()).Info().Msg("Message log cleared")

	if wantsHTML(c) {
		return renderPage(c, fiber.StatusOK, "cleared.html", nil)
	}
	return c.JSON(StatusResponse{
		Status:  "cleared",
		Message: "All messages have been deleted",
	})
}
