// Package events publishes transaction lifecycle and notification events
// to the message bus. Publishing is fire-and-forget: a bus outage must
// never fail a transaction, so failures are logged and counted, not
// returned.
package events

import (
	"time"
)

// Event kinds
const (
	EventTypeCompleted = "COMPLETED"
	EventTypeFailed    = "FAILED"
)

// TransactionEvent announces a transaction reaching a terminal status.
type TransactionEvent struct {
	TransactionID       uint      `json:"transaction_id"`
	TransactionRef      string    `json:"transaction_ref"`
	SourceWalletID      *uint     `json:"source_wallet_id,omitempty"`
	DestinationWalletID *uint     `json:"destination_wallet_id,omitempty"`
	TransactionType     string    `json:"transaction_type"`
	Status              string    `json:"status"`
	Amount              float64   `json:"amount"`
	Currency            string    `json:"currency"`
	Timestamp           time.Time `json:"timestamp"`
	EventType           string    `json:"event_type"`
}

// NotificationEvent asks the notification service to contact a user.
type NotificationEvent struct {
	Recipient        string                 `json:"recipient"`
	NotificationType string                 `json:"notification_type"`
	Subject          string                 `json:"subject"`
	Message          string                 `json:"message"`
	TemplateData     map[string]interface{} `json:"template_data,omitempty"`
	Timestamp        time.Time              `json:"timestamp"`
}

// Publisher is the outbound edge to the event bus.
type Publisher interface {
	PublishTransactionEvent(event TransactionEvent)
	PublishNotificationEvent(event NotificationEvent)
}

// NoopPublisher drops all events. Used in tests and when the bus is
// disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransactionEvent(TransactionEvent)   {}
func (NoopPublisher) PublishNotificationEvent(NotificationEvent) {}
