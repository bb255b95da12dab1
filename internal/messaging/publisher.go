package messaging

import (
	"context"

	"github.com/ArgyPorgy/stx-names-indexer/internal/domain"
)

// Publisher defines the interface for publishing events to message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a reconciled username event to the message broker
	PublishEvent(ctx context.Context, event *domain.AppliedEvent) error
	// Close closes the connection
	Close()
}
