// Package order implements the delivery order aggregate and its lifecycle.
//
// An order moves through a fixed state machine:
//
//	Pending ──> Assigned ──> InProgress ──> Delivered
//	   │            │
//	   └────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal: once reached, the order is frozen
// except for historical reads. Every mutation goes through a transition
// method on the aggregate, which checks the caller's authorization before
// the state rule so that unauthorized callers never learn the state-machine
// structure. The aggregate also owns partner position tracking: positions
// are accepted only while the order is Assigned or InProgress and only when
// they are not older than the last stored report.
package order
