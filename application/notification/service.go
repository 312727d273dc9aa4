package notification

import (
	"context"
	"fmt"

	"invoicing/domain/notification"
	"invoicing/domain/shared"
	"invoicing/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service translates delivery receipts into domain events.
type Service struct {
	publisher shared.DomainEventPublisher
}

func NewService(publisher shared.DomainEventPublisher) *Service {
	return &Service{publisher: publisher}
}

// Delivered publishes a ResourceDeliveredEvent for reference.
// reference must be a UUID; anything else fails with notification.ErrInvalidReference.
func (s *Service) Delivered(ctx context.Context, reference string) error {
	id, err := uuid.Parse(reference)
	if err != nil {
		return fmt.Errorf("%w: %q", notification.ErrInvalidReference, reference)
	}

	logger.FromContext(ctx).Debug("resource delivered", zap.String("reference", id.String()))

	return s.publisher.Publish(ctx, notification.NewResourceDeliveredEvent(id.String()))
}
