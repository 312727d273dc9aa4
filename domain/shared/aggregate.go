package shared

// AggregateRoot is the entry point of an aggregate.
// It owns the consistency boundary: every change to entities inside the aggregate
// goes through the root, and repositories load and store the aggregate as a whole.
type AggregateRoot interface {
	// ID returns the globally unique identifier of the aggregate.
	ID() string
}

// Entity is an object identified by its ID rather than by its attributes.
// Two entities with equal attributes but different IDs are different entities.
type Entity interface {
	ID() string
}
