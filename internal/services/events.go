package services

import (
	"log/slog"
)

// Catalog event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventReviewCreated  = "review.created"
	EventReviewUpdated  = "review.updated"
	EventReviewDeleted  = "review.deleted"
)

// EventPublisher delivers catalog change events to a broker.
type EventPublisher interface {
	PublishEvent(eventType string, payload any) error
}

// publish sends an event if a publisher is configured. Failures are logged
// and never fail the calling operation.
func publish(pub EventPublisher, logger *slog.Logger, eventType string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(eventType, payload); err != nil {
		logger.Warn("failed to publish catalog event", "event", eventType, "err", err)
	}
}
