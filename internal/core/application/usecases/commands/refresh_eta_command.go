package commands

import (
	"errors"

	"swiftdrop/internal/pkg/guard"
)

var ErrRefreshEtaCommandIsNotConstructed = errors.New(
	"RefreshEtaCommand must be created via NewRefreshEtaCommand constructor",
)

// RefreshEtaCommand recomputes delivery estimates for all active orders.
// It carries no parameters; the handler discovers the affected orders
// itself.
type RefreshEtaCommand struct { //nolint:recvcheck //using for validation
	guard guard.ConstructorGuard
}

// NewRefreshEtaCommand creates a command to refresh delivery estimates.
func NewRefreshEtaCommand() (RefreshEtaCommand, error) {
	return RefreshEtaCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshEtaCommand) Validate() error {
	return c.guard.Validate(ErrRefreshEtaCommandIsNotConstructed)
}
