package ports

import (
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
)

// Subscription is a live feed of snapshots for a single order. Snapshots
// arrive on C in commit order for that order; there is no ordering
// guarantee across different orders. The channel is closed when the
// subscription is cancelled via NotificationChannel.Unsubscribe.
type Subscription struct {
	// OrderID is the order this subscription follows.
	OrderID kernel.UUID

	// C delivers committed snapshots. Consumers that fall too far behind
	// may be dropped by the publisher rather than blocking it.
	C <-chan order.Snapshot

	// handle identifies the subscription inside its channel implementation.
	Handle uint64
}

// NotificationChannel lets viewers follow committed changes to a single
// order: every lifecycle transition, accepted position report and ETA
// update produces one snapshot.
type NotificationChannel interface {
	// Subscribe registers a listener for the given order and returns the
	// subscription carrying its snapshot feed.
	Subscribe(orderID kernel.UUID) (*Subscription, error)

	// Unsubscribe cancels a subscription and closes its channel.
	// Unsubscribing twice is a no-op.
	Unsubscribe(sub *Subscription)
}

// SnapshotPublisher is the producer side of the notification channel.
// Command handlers publish a snapshot only after the corresponding
// transaction has durably committed, so subscribers never observe
// uncommitted state.
type SnapshotPublisher interface {
	Publish(snapshot order.Snapshot)
}
