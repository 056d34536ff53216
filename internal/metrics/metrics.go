// Package metrics holds the Prometheus collectors exposed on the monitoring server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "myriota_webhook"

var (
	// MessagesReceived counts messages persisted to the log.
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_received_total",
		Help:      "Number of webhook messages appended to the message log.",
	})

	// StorageFailures counts failed reads and writes of the message log, by operation.
	StorageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_failures_total",
		Help:      "Number of message log operations that failed.",
	}, []string{"operation"})

	// LogClears counts successful clears of the message log.
	LogClears = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "log_clears_total",
		Help:      "Number of times the message log was cleared.",
	})
)

// Operation labels for StorageFailures.
const (
	OperationAppend = "append"
	OperationLoad   = "load"
	OperationClear  = "clear"
)
