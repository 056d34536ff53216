package main

import (
	"context"
	"encoding/hex"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DIMO-Network/myriota-webhook/internal/services/webhooksender"
	"github.com/DIMO-Network/server-garage/pkg/logging"
)

// send-test-message posts a Myriota style envelope to a running receiver.
func main() {
	logger := logging.GetAndSetDefaultLogger("send-test-message")
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	target := flag.String("url", "http://localhost:5000/webhook/myriota", "receiver webhook URL")
	endpointRef := flag.String("endpoint-ref", "test-endpoint", "Myriota endpoint reference")
	terminalID := flag.String("terminal", "0000000001", "terminal id of the packet")
	value := flag.String("value", "48656c6c6f", "hex encoded packet value")
	count := flag.Int("count", 1, "number of messages to send")
	flag.Parse()

	raw, err := hex.DecodeString(*value)
	if err != nil {
		logger.Fatal().Err(err).Str("value", *value).Msg("Packet value is not valid hex")
	}

	sender := webhooksender.NewWebhookSender(nil)
	for i := 0; i < *count; i++ {
		envelope, err := webhooksender.NewTestEnvelope(*endpointRef, *terminalID, raw, time.Now())
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to build envelope")
		}
		ack, err := sender.SendMessage(ctx, *target, envelope)
		if err != nil {
			logger.Fatal().Err(err).Str("url", *target).Msg("Failed to send message")
		}
		logger.Info().
			Str("envelope_id", envelope.ID).
			Int("message_id", ack.MessageID).
			Str("received_at", ack.ReceivedAt).
			Msg("Message acknowledged")
	}
}
