package order

import (
	"errors"
	"fmt"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order represents a delivery order in the system. It is the aggregate root
// that manages the order lifecycle from creation through assignment, pickup
// and completion, and owns partner position tracking while the delivery is
// active.
//
// Order maintains these invariants:
//   - amount is set exactly once, at creation, and is strictly positive
//   - partnerID is unset while status is Pending and set exactly once on
//     the transition to Assigned
//   - status changes only along the edges defined by Status
//   - currentLocation is updated only while status is Assigned or
//     InProgress, and never moves backwards in observation time
//   - once a terminal status is reached the order is frozen
//
// All fields are private; mutation happens only through the transition
// methods, each of which checks the caller's authorization before the
// state rule.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	partnerID  *kernel.UUID

	pickupAddress   string
	deliveryAddress string
	vehicleClass    VehicleClass

	// amount is the total price in the smallest currency unit,
	// computed once at creation and never recomputed.
	amount int

	specialInstructions string
	status              Status

	currentLocation *kernel.GeoPoint
	positionAt      *time.Time

	createdAt time.Time
	eta       *time.Time

	// version is the optimistic concurrency token maintained by the
	// repository; the aggregate carries it but never changes it.
	version int64

	isConstructed bool
}

// NewOrder creates a new Order in Pending status.
//
// Parameters:
//   - id: unique identifier for the order
//   - customerID: the owning customer's identity
//   - pickupAddress, deliveryAddress: free-text location descriptors
//   - vehicleClass: requested vehicle category, fixed after creation
//   - amount: total price in the smallest currency unit, must be positive
//   - specialInstructions: optional free text, no lifecycle effect
//   - createdAt: creation timestamp
//
// All inputs are validated; the returned order has no partner assigned
// and is ready for persistence.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	pickupAddress string,
	deliveryAddress string,
	vehicleClass VehicleClass,
	amount int,
	specialInstructions string,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:              StatusPending,
		specialInstructions: specialInstructions,
		createdAt:           createdAt,
		version:             1,
		isConstructed:       true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setAddress("pickup address", &order.pickupAddress, pickupAddress),
		order.setAddress("delivery address", &order.deliveryAddress, deliveryAddress),
		order.setVehicleClass(vehicleClass),
		order.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation rules. The stored state is trusted but still checked for
// structural consistency (valid status, partner presence matching status).
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	partnerID *kernel.UUID,
	pickupAddress string,
	deliveryAddress string,
	vehicleClass VehicleClass,
	amount int,
	specialInstructions string,
	status Status,
	currentLocation *kernel.GeoPoint,
	positionAt *time.Time,
	createdAt time.Time,
	eta *time.Time,
	version int64,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		vehicleClass.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if partnerID == nil && status != StatusPending && status != StatusCancelled {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"partner", fmt.Errorf("status %s requires an assigned partner", status))
	}
	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return nil, err
		}
		if status == StatusPending {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"partner", errors.New("pending order cannot have an assigned partner"))
		}
	}
	if currentLocation != nil {
		if err := currentLocation.Validate(); err != nil {
			return nil, err
		}
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError(
			"order version", fmt.Errorf("%d is not a positive version", version))
	}

	return &Order{
		id:                  id,
		customerID:          customerID,
		partnerID:           partnerID,
		pickupAddress:       pickupAddress,
		deliveryAddress:     deliveryAddress,
		vehicleClass:        vehicleClass,
		amount:              amount,
		specialInstructions: specialInstructions,
		status:              status,
		currentLocation:     currentLocation,
		positionAt:          positionAt,
		createdAt:           createdAt,
		eta:                 eta,
		version:             version,
		isConstructed:       true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory function. Call it when receiving orders from external layers.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Partner returns the assigned partner's ID, or nil if unassigned.
func (o *Order) Partner() *kernel.UUID {
	return o.partnerID
}

// PickupAddress returns the free-text pickup location.
func (o *Order) PickupAddress() string {
	return o.pickupAddress
}

// DeliveryAddress returns the free-text delivery location.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// VehicleClass returns the vehicle category requested at creation.
func (o *Order) VehicleClass() VehicleClass {
	return o.vehicleClass
}

// Amount returns the price in the smallest currency unit.
func (o *Order) Amount() int {
	return o.amount
}

// SpecialInstructions returns the optional delivery note.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CurrentLocation returns the last accepted partner position, or nil if
// never reported.
func (o *Order) CurrentLocation() *kernel.GeoPoint {
	return o.currentLocation
}

// PositionObservedAt returns the observation timestamp of the last
// accepted position, or nil if never reported.
func (o *Order) PositionObservedAt() *time.Time {
	return o.positionAt
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Eta returns the estimated delivery time, or nil if not yet computed.
func (o *Order) Eta() *time.Time {
	return o.eta
}

// Version returns the optimistic concurrency token loaded from storage.
func (o *Order) Version() int64 {
	return o.version
}

// Assign moves the order from Pending to Assigned and records the partner.
//
// Authorization: the caller must hold the partner or admin role; anyone
// else receives ErrUnauthorized before any state information leaks.
//
// State rules, checked after authorization:
//   - terminal orders fail with ErrTerminalStateViolation
//   - an order that already has a partner fails with ErrAlreadyAssigned
//   - any status other than Pending fails with ErrInvalidTransition
//
// Status and partnerID are updated together; on any error the order is
// left untouched.
func (o *Order) Assign(actor kernel.Actor, partnerID kernel.UUID) error {
	if err := errors.Join(actor.Validate(), partnerID.Validate()); err != nil {
		return err
	}
	if !actor.IsPartner() && !actor.IsAdmin() {
		return fmt.Errorf("%w: role %s cannot assign orders", ErrUnauthorized, actor.Role())
	}

	if o.status.IsTerminal() {
		return fmt.Errorf("%w: cannot assign a %s order", ErrTerminalStateViolation, o.status)
	}
	if o.partnerID != nil {
		return fmt.Errorf("%w: partner %s", ErrAlreadyAssigned, o.partnerID)
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.partnerID = &partnerID
	return nil
}

// Start moves the order from Assigned to InProgress, marking that the
// partner has picked up the package.
//
// Authorization: the assigned partner or an admin. A partner who is not
// the assigned one receives ErrNotAssignedPartner; other roles receive
// ErrUnauthorized.
func (o *Order) Start(actor kernel.Actor) error {
	if err := o.authorizeAssignedPartner(actor, "start"); err != nil {
		return err
	}

	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete moves the order from InProgress to Delivered. Delivered is
// terminal; no further transitions are possible afterwards.
//
// Authorization: the assigned partner or an admin, as for Start.
func (o *Order) Complete(actor kernel.Actor) error {
	if err := o.authorizeAssignedPartner(actor, "complete"); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel withdraws the order before pickup. Permitted from Pending and
// Assigned only; once delivery is underway cancellation fails with
// ErrInvalidTransition.
//
// Authorization: the owning customer or an admin. Any other caller,
// including a different customer, receives ErrUnauthorized.
func (o *Order) Cancel(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !o.isOwner(actor) && !actor.IsAdmin() {
		return fmt.Errorf("%w: only the owning customer or an admin can cancel", ErrUnauthorized)
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ReportPosition records a partner position observation.
//
// Authorization: the assigned partner or an admin.
//
// Acceptance rules, checked after authorization:
//   - the order must be Assigned or InProgress, otherwise
//     ErrTrackingInactive
//   - observedAt must not be earlier than the stored observation,
//     otherwise ErrStalePosition; last-writer-wins by timestamp, not by
//     arrival order, so delayed reports never move the position backwards
func (o *Order) ReportPosition(actor kernel.Actor, position kernel.GeoPoint, observedAt time.Time) error {
	if err := o.authorizeAssignedPartner(actor, "report position for"); err != nil {
		return err
	}
	if err := position.Validate(); err != nil {
		return err
	}

	if !o.status.IsTrackable() {
		return fmt.Errorf("%w: order is %s", ErrTrackingInactive, o.status)
	}
	if o.positionAt != nil && observedAt.Before(*o.positionAt) {
		return fmt.Errorf("%w: observed %s, stored %s",
			ErrStalePosition, observedAt.Format(time.RFC3339Nano), o.positionAt.Format(time.RFC3339Nano))
	}

	o.currentLocation = &position
	o.positionAt = &observedAt
	return nil
}

// SetEta records an externally computed delivery estimate. ETA updates
// are refused once the order is terminal.
func (o *Order) SetEta(eta time.Time) error {
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: cannot update ETA of a %s order", ErrTerminalStateViolation, o.status)
	}

	o.eta = &eta
	return nil
}

// Snapshot returns the read-only view delivered to tracking subscribers.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		OrderID:    o.id,
		Status:     o.status,
		Location:   o.currentLocation,
		Eta:        o.eta,
		ObservedAt: o.positionAt,
	}
}

func (o *Order) isOwner(actor kernel.Actor) bool {
	return actor.IsCustomer() && actor.ID().IsEqual(o.customerID)
}

// authorizeAssignedPartner enforces the shared rule for partner-driven
// operations: admins always pass, the assigned partner passes, any other
// partner fails with ErrNotAssignedPartner, everyone else with
// ErrUnauthorized.
func (o *Order) authorizeAssignedPartner(actor kernel.Actor, operation string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsPartner() {
		return fmt.Errorf("%w: role %s cannot %s orders", ErrUnauthorized, actor.Role(), operation)
	}
	if o.partnerID == nil || !o.partnerID.IsEqual(actor.ID()) {
		return fmt.Errorf("%w: cannot %s order %s", ErrNotAssignedPartner, operation, o.id)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setAddress(name string, field *string, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*field = value
	return nil
}

func (o *Order) setVehicleClass(class VehicleClass) error {
	if err := class.Validate(); err != nil {
		return err
	}
	o.vehicleClass = class
	return nil
}

func (o *Order) setAmount(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%d is not greater than 0", amount))
	}
	o.amount = amount
	return nil
}
