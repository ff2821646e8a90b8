package order

import (
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
)

// Snapshot is the subset of order state delivered to tracking subscribers
// on every committed change: lifecycle status, last known partner position
// and the delivery estimate. Snapshots are immutable copies; holders can
// never mutate the underlying order through one.
type Snapshot struct {
	OrderID    kernel.UUID
	Status     Status
	Location   *kernel.GeoPoint
	Eta        *time.Time
	ObservedAt *time.Time
}
