package kernel

import (
	"errors"
	"fmt"

	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

// Role represents the authorization role of an authenticated caller.
// Role is immutable for the lifetime of an identity and determines which
// order operations the caller may invoke.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer identifies an end customer who creates and cancels
	// their own orders.
	RoleCustomer

	// RolePartner identifies a delivery partner who accepts, progresses
	// and completes assigned orders and reports positions.
	RolePartner

	// RoleAdmin identifies an operator who may invoke any order operation.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RolePartner:  "partner",
		RoleAdmin:    "admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer: "customer",
		RolePartner:  "partner",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a role from its wire representation
// ("customer", "partner" or "admin").
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is one of customer, partner or admin.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role.
// It implements the fmt.Stringer interface and is safe to call on any value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// ErrActorIsNotConstructed is returned when attempting to use an improperly
// initialized Actor. Actors must be created via the NewActor constructor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor constructor")

// Actor is the authenticated caller identity consumed by domain operations.
// Identity is established by an external identity provider; the domain
// trusts the id and role it is given and performs authorization only.
//
// Actor is passed explicitly into every lifecycle and tracking call rather
// than being read from ambient state.
type Actor struct { //nolint:recvcheck //using for validation
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates an Actor with the given identity and role.
// Both must be valid; the identity provider guarantees their authenticity.
func NewActor(id UUID, role Role) (Actor, error) {
	actor := Actor{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(actor.setID(id), actor.setRole(role)); err != nil {
		return Actor{}, err
	}

	return actor, nil
}

// Validate checks if the Actor was properly constructed.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the caller's unique identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the caller's authorization role.
func (a Actor) Role() Role {
	return a.role
}

// IsAdmin reports whether the caller holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.role == RoleAdmin
}

// IsCustomer reports whether the caller holds the customer role.
func (a Actor) IsCustomer() bool {
	return a.role == RoleCustomer
}

// IsPartner reports whether the caller holds the partner role.
func (a Actor) IsPartner() bool {
	return a.role == RolePartner
}

// String returns a loggable representation of the actor.
func (a Actor) String() string {
	return fmt.Sprintf("Actor(%s,%s)", a.id, a.role)
}

func (a *Actor) setID(id UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
