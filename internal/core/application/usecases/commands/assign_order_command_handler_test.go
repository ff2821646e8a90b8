package commands_test

import (
	"testing"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAssignOrderCommandHandler(t *testing.T) {
	// Arrange
	mockFactory := new(MockOrderUoWFactory)
	mockPublisher := new(MockSnapshotPublisher)

	// Act
	handler, err := commands.NewAssignOrderCommandHandler(mockFactory, mockPublisher)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, handler)
}

func TestNewAssignOrderCommandHandler_NilDependencies(t *testing.T) {
	_, err := commands.NewAssignOrderCommandHandler(nil, nil)
	require.Error(t, err)
}

func TestAssignOrderCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	orderID := kernel.NewUUID()
	partner := testActor(t, kernel.RolePartner)
	pendingOrder := testPendingOrder(t, orderID, kernel.NewUUID())

	cmd, err := commands.NewAssignOrderCommand(orderID, partner, partner.ID())
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockPublisher := new(MockSnapshotPublisher)

	mock.InOrder(
		mockFactory.On("Create").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, orderID).Return(pendingOrder, nil).Once(),
		mockRepo.On("Update", ctx, pendingOrder).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockPublisher.On("Publish", mock.AnythingOfType("order.Snapshot")).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler, err := commands.NewAssignOrderCommandHandler(mockFactory, mockPublisher)
	require.NoError(t, err)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	assert.Equal(t, order.StatusAssigned, pendingOrder.Status())
	require.NotNil(t, pendingOrder.Partner())
	assert.True(t, pendingOrder.Partner().IsEqual(partner.ID()))
}

func TestAssignOrderCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	// Arrange
	ctx := t.Context()
	orderID := kernel.NewUUID()
	firstPartner := testActor(t, kernel.RolePartner)
	secondPartner := testActor(t, kernel.RolePartner)
	assignedOrder := testAssignedOrder(t, orderID, kernel.NewUUID(), firstPartner)

	cmd, err := commands.NewAssignOrderCommand(orderID, secondPartner, secondPartner.ID())
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockPublisher := new(MockSnapshotPublisher)

	mock.InOrder(
		mockFactory.On("Create").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, orderID).Return(assignedOrder, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler, err := commands.NewAssignOrderCommandHandler(mockFactory, mockPublisher)
	require.NoError(t, err)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert: no update, no commit, nothing published.
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrAlreadyAssigned)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	require.NotNil(t, assignedOrder.Partner())
	assert.True(t, assignedOrder.Partner().IsEqual(firstPartner.ID()))
}

func TestAssignOrderCommandHandler_Handle_CustomerUnauthorized(t *testing.T) {
	// Arrange
	ctx := t.Context()
	orderID := kernel.NewUUID()
	customer := testActor(t, kernel.RoleCustomer)
	pendingOrder := testPendingOrder(t, orderID, customer.ID())

	cmd, err := commands.NewAssignOrderCommand(orderID, customer, kernel.NewUUID())
	require.NoError(t, err)

	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockPublisher := new(MockSnapshotPublisher)

	mock.InOrder(
		mockFactory.On("Create").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, orderID).Return(pendingOrder, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler, err := commands.NewAssignOrderCommandHandler(mockFactory, mockPublisher)
	require.NoError(t, err)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrUnauthorized)
	assert.Equal(t, order.StatusPending, pendingOrder.Status())
	mockPublisher.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_VersionConflict(t *testing.T) {
	// Arrange
	ctx := t.Context()
	orderID := kernel.NewUUID()
	partner := testActor(t, kernel.RolePartner)
	pendingOrder := testPendingOrder(t, orderID, kernel.NewUUID())

	cmd, err := commands.NewAssignOrderCommand(orderID, partner, partner.ID())
	require.NoError(t, err)

	conflictErr := errs.NewConflictError("order", orderID.String())
	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockPublisher := new(MockSnapshotPublisher)

	mock.InOrder(
		mockFactory.On("Create").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, orderID).Return(pendingOrder, nil).Once(),
		mockRepo.On("Update", ctx, pendingOrder).Return(conflictErr).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler, err := commands.NewAssignOrderCommandHandler(mockFactory, mockPublisher)
	require.NoError(t, err)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert: a concurrent writer won; the caller gets a conflict to retry.
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_NotFound(t *testing.T) {
	// Arrange
	ctx := t.Context()
	orderID := kernel.NewUUID()
	partner := testActor(t, kernel.RolePartner)

	cmd, err := commands.NewAssignOrderCommand(orderID, partner, partner.ID())
	require.NoError(t, err)

	notFoundErr := errs.NewObjectNotFoundError("order", orderID.String())
	mockRepo := new(MockOrderRepository)
	mockUoW := new(MockOrderUoW)
	mockFactory := new(MockOrderUoWFactory)
	mockPublisher := new(MockSnapshotPublisher)

	mock.InOrder(
		mockFactory.On("Create").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("OrderRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, orderID).Return(nil, notFoundErr).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler, err := commands.NewAssignOrderCommandHandler(mockFactory, mockPublisher)
	require.NoError(t, err)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	mockPublisher.AssertExpectations(t)
}
