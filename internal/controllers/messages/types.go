package messages

import "github.com/DIMO-Network/myriota-webhook/internal/messagelog"

// ReceiveResponse acknowledges a stored webhook message.
type ReceiveResponse struct {
	// Status is "success" when the message was stored.
	Status string `json:"status"`
	// Message is a human-readable confirmation.
	Message string `json:"message"`
	// MessageID is the id assigned to the stored message.
	MessageID int `json:"message_id"`
	// ReceivedAt is when the message was stored, ISO-8601.
	ReceivedAt string `json:"received_at"`
}

// StatusResponse is a status with a human-readable message.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListResponse is the JSON view of the message log.
type ListResponse struct {
	// TotalMessages is the number of records in the log.
	TotalMessages int `json:"total_messages"`
	// Messages are the records in append order.
	Messages []messagelog.Record `json:"messages"`
}
