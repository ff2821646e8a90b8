// Package queries contains read-only operations in the CQRS architecture.
// Query handlers bypass the domain aggregates and read projection rows
// straight from the database, returning plain response structs shaped for
// the caller. Authorization is still enforced: customers see their own
// orders, partners the orders assigned to them, administrators everything.
package queries
