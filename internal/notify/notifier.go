// Package notify defines the notification interface and implementations
// for listing lifecycle events.
package notify

import (
	"context"
	"time"
)

// EventKind classifies a notification.
type EventKind string

// Event kinds.
const (
	EventListed         EventKind = "listed"
	EventPublishFailed  EventKind = "publish_failed"
	EventPersistPending EventKind = "persist_pending"
	EventReauthRequired EventKind = "reauth_required"
	EventSyncFailed     EventKind = "sync_failed"
)

// Event contains the data needed to describe one listing or account event.
type Event struct {
	Kind        EventKind
	SKU         string
	Title       string
	Price       string
	Environment string
	Account     string
	ListingURL  string
	ImageURL    string
	Stage       string
	Error       string
	At          time.Time
}

// Notifier defines the interface for sending event notifications.
type Notifier interface {
	Send(ctx context.Context, event *Event) error
	SendBatch(ctx context.Context, events []Event, summary string) error
}
