// Package notify provides the in-process pub/sub hub that fans committed
// order snapshots out to tracking subscribers. Command handlers publish
// into the hub after their transaction commits; websocket sessions and
// other viewers subscribe per order.
package notify

import (
	"sync"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/core/ports"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this many snapshots behind starts losing the oldest ones
// rather than blocking the publisher.
const subscriberBuffer = 16

type subscriber struct {
	ch chan order.Snapshot
}

// Hub implements ports.NotificationChannel and ports.SnapshotPublisher
// with an in-memory per-order subscriber registry.
//
// Publish never blocks: delivery to each subscriber happens under the
// hub lock, which serializes publishes and preserves commit order per
// order without any per-subscriber goroutines.
type Hub struct {
	mu         sync.Mutex
	nextHandle uint64
	subs       map[string]map[uint64]*subscriber
}

// NewHub creates an empty notification hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[uint64]*subscriber),
	}
}

// Subscribe registers a listener for the given order.
func (h *Hub) Subscribe(orderID kernel.UUID) (*ports.Subscription, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextHandle++
	handle := h.nextHandle

	key := orderID.String()
	if h.subs[key] == nil {
		h.subs[key] = make(map[uint64]*subscriber)
	}

	sub := &subscriber{ch: make(chan order.Snapshot, subscriberBuffer)}
	h.subs[key][handle] = sub

	return &ports.Subscription{
		OrderID: orderID,
		C:       sub.ch,
		Handle:  handle,
	}, nil
}

// Unsubscribe cancels a subscription and closes its channel. Cancelling
// an already cancelled subscription is a no-op.
func (h *Hub) Unsubscribe(sub *ports.Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	key := sub.OrderID.String()
	registered, ok := h.subs[key][sub.Handle]
	if !ok {
		return
	}

	delete(h.subs[key], sub.Handle)
	if len(h.subs[key]) == 0 {
		delete(h.subs, key)
	}
	close(registered.ch)
}

// Publish fans the snapshot out to every subscriber of its order. When a
// subscriber's buffer is full the oldest snapshot is dropped to make room,
// so slow consumers lose history but always converge on the latest state.
func (h *Hub) Publish(snapshot order.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs[snapshot.OrderID.String()] {
		for {
			select {
			case sub.ch <- snapshot:
			default:
				select {
				case <-sub.ch:
				default:
				}
				continue
			}
			break
		}
	}
}
