// Package services contains stateless domain services that operate across
// aggregates: delivery pricing and ETA estimation. Both are pure functions
// over their inputs and a static tariff table; they hold no runtime state
// and are safe for concurrent use.
package services
