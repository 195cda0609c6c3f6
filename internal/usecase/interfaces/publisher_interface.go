package interfaces

import (
	"context"

	"venue_backoffice/internal/domain/entities"
)

//go:generate mockgen -source=publisher_interface.go -destination=mocks/mock_publisher.go -package=mock_interfaces

// IPublisher hands an outbox message to the delivery channel. Delivery is at
// least once; consumers deduplicate on the message id.
type IPublisher interface {
	Publish(ctx context.Context, msg entities.OutboxMessage) error
}
