package webhooksender

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/DIMO-Network/myriota-webhook/internal/controllers/messages"
	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// SendFailureCode marks errors where the message never reached the receiver or the receiver refused it.
	SendFailureCode = -1

	defaultSendTimeout = 30 * time.Second
	// rejectionBodyLimit caps how much of a refusal body ends up in the error.
	rejectionBodyLimit = 1024

	userAgent = "Myriota-Webhook-Test/1.0"
)

// Envelope is the body Myriota's cloud posts to a destination webhook.
type Envelope struct {
	ID          string `json:"Id"`
	EndpointRef string `json:"EndpointRef"`
	// Timestamp is in milliseconds since the epoch.
	Timestamp int64 `json:"Timestamp"`
	// Data is a JSON document holding the packets, encoded as a string.
	Data string `json:"Data"`
}

// Packet is a single uplink from a terminal.
type Packet struct {
	TerminalID string `json:"TerminalId"`
	Timestamp  int64  `json:"Timestamp"`
	// Value is the hex encoded payload.
	Value string `json:"Value"`
}

type packetData struct {
	Packets []Packet `json:"Packets"`
}

// NewTestEnvelope builds an envelope carrying one packet with value from terminalID.
func NewTestEnvelope(endpointRef, terminalID string, value []byte, now time.Time) (*Envelope, error) {
	ms := now.UnixMilli()
	data, err := json.Marshal(packetData{
		Packets: []Packet{{
			TerminalID: terminalID,
			Timestamp:  ms,
			Value:      hex.EncodeToString(value),
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal packets: %w", err)
	}
	return &Envelope{
		ID:          uuid.NewString(),
		EndpointRef: endpointRef,
		Timestamp:   ms,
		Data:        string(data),
	}, nil
}

// WebhookSender replays Myriota style deliveries against a running receiver.
type WebhookSender struct {
	client *http.Client
}

// NewWebhookSender returns a sender using client, or a client with a 30s timeout when client is nil.
func NewWebhookSender(client *http.Client) *WebhookSender {
	if client == nil {
		client = &http.Client{Timeout: defaultSendTimeout}
	}
	return &WebhookSender{client: client}
}

// SendMessage delivers payload to the receiver at receiverURL the way Myriota's
// cloud does and returns the acknowledgment the receiver wrote back.
func (w *WebhookSender) SendMessage(ctx context.Context, receiverURL string, payload any) (*messages.ReceiveResponse, error) {
	if _, err := url.ParseRequestURI(receiverURL); err != nil {
		return nil, richerrors.Error{
			Code: SendFailureCode,
			Err:  fmt.Errorf("receiver URL %q is not usable: %w", receiverURL, err),
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message for receiver: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, receiverURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build delivery request: %w", err)
	}
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderUserAgent, userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, richerrors.Error{
			Code: SendFailureCode,
			Err:  fmt.Errorf("receiver at %s unreachable: %w", req.URL.Host, err),
		}
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		reason, _ := io.ReadAll(io.LimitReader(resp.Body, rejectionBodyLimit))
		return nil, richerrors.Error{
			Code: SendFailureCode,
			Err:  fmt.Errorf("receiver rejected message with status %d: %s", resp.StatusCode, reason),
		}
	}

	var ack messages.ReceiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, fmt.Errorf("receiver acknowledgment is not JSON: %w", err)
	}
	return &ack, nil
}
