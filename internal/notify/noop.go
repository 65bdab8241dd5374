package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded events. It is used
// when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards events with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// Send logs and discards a single event.
func (n *NoOpNotifier) Send(_ context.Context, event *Event) error {
	n.log.Debug("notification discarded (no backend configured)",
		"kind", event.Kind,
		"sku", event.SKU,
		"account", event.Account,
	)
	return nil
}

// SendBatch logs and discards a batch of events.
func (n *NoOpNotifier) SendBatch(_ context.Context, events []Event, summary string) error {
	n.log.Debug("batch notification discarded (no backend configured)",
		"summary", summary,
		"count", len(events),
	)
	return nil
}
