package notification

import (
	"time"

	"invoicing/domain/shared"
)

// ResourceDeliveredEventName is the bus key for ResourceDeliveredEvent.
const ResourceDeliveredEventName = "notification.resource_delivered"

// ResourceDeliveredEvent the delivery channel confirmed the notification for a resource.
type ResourceDeliveredEvent struct {
	resourceID string
	occurredOn time.Time
}

func NewResourceDeliveredEvent(resourceID string) *ResourceDeliveredEvent {
	return &ResourceDeliveredEvent{
		resourceID: resourceID,
		occurredOn: time.Now(),
	}
}

func (e *ResourceDeliveredEvent) EventName() string      { return ResourceDeliveredEventName }
func (e *ResourceDeliveredEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ResourceDeliveredEvent) GetAggregateID() string { return e.resourceID }
func (e *ResourceDeliveredEvent) ResourceID() string     { return e.resourceID }

var _ shared.DomainEvent = (*ResourceDeliveredEvent)(nil)
