package commands

import (
	"errors"

	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"
	"swiftdrop/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOnlyCustomersCreateOrders = errors.New("only customers can create orders")
)

// CreateOrderCommand represents a customer's request to book a delivery.
// Encapsulates the pickup and delivery addresses, the requested vehicle
// class and an optional delivery note. The price is not part of the
// command: it is computed server-side from a trusted distance source so
// the amount cannot be tampered with by the caller.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customer,
//	    "MG Road 1", "Church Street 15", order.VehicleBike, "call on arrival")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	actor               kernel.Actor
	pickupAddress       string
	deliveryAddress     string
	vehicleClass        order.VehicleClass
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to book a new delivery order.
// The actor must hold the customer role; both addresses are required and
// the vehicle class must be valid.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	pickupAddress string,
	deliveryAddress string,
	vehicleClass order.VehicleClass,
	specialInstructions string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setActor(actor),
		orderCommand.setAddress("pickup address", &orderCommand.pickupAddress, pickupAddress),
		orderCommand.setAddress("delivery address", &orderCommand.deliveryAddress, deliveryAddress),
		orderCommand.setVehicleClass(vehicleClass),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the customer booking the delivery.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// PickupAddress returns the free-text pickup location.
func (c CreateOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

// DeliveryAddress returns the free-text delivery location.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// VehicleClass returns the requested vehicle category.
func (c CreateOrderCommand) VehicleClass() order.VehicleClass {
	return c.vehicleClass
}

// SpecialInstructions returns the optional delivery note.
func (c CreateOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.IsCustomer() && !actor.IsAdmin() {
		return ErrOnlyCustomersCreateOrders
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setAddress(name string, field *string, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*field = value
	return nil
}

func (c *CreateOrderCommand) setVehicleClass(class order.VehicleClass) error {
	if err := class.Validate(); err != nil {
		return err
	}
	c.vehicleClass = class
	return nil
}
