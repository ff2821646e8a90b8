package queries_test

import (
	"context"
	"testing"
	"time"

	"swiftdrop/internal/adapters/out/postgres/orderrepo"
	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// nopAggregateTracker satisfies the repository's tracker dependency for
// query tests, which do not care about tracked aggregates.
type nopAggregateTracker struct{}

func (nopAggregateTracker) TrackAggregate(kernel.UUID, any) {}

// OrderQueriesIntegrationTestSuite exercises the read-side handlers
// against a real PostgreSQL container seeded through the repository.
type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
	suite.repo = orderrepo.NewGormOrderRepository(db, nopAggregateTracker{})
}

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderQueriesIntegrationTestSuite) actor(role kernel.Role) kernel.Actor {
	actor, err := kernel.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return actor
}

func (suite *OrderQueriesIntegrationTestSuite) seedOrder(customerID kernel.UUID, createdAt time.Time) *order.Order {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID,
		"MG Road 1", "Church Street 15",
		order.VehicleBike, 93, "ring twice", createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_OwnerReadsOwnOrder() {
	ctx := context.Background()
	customer := suite.actor(kernel.RoleCustomer)
	seeded := suite.seedOrder(customer.ID(), time.Now().UTC().Truncate(time.Microsecond))

	query, err := queries.NewGetOrderQuery(seeded.ID(), customer)
	suite.Require().NoError(err)

	handler := queries.NewGetOrderQueryHandler(suite.db)
	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(resp.ID.IsEqual(seeded.ID()))
	suite.True(resp.CustomerID.IsEqual(customer.ID()))
	suite.Equal(order.StatusPending, resp.Status)
	suite.Equal(order.VehicleBike, resp.VehicleClass)
	suite.Equal(93, resp.Amount)
	suite.Equal("ring twice", resp.SpecialInstructions)
	suite.Nil(resp.PartnerID)
	suite.Nil(resp.Location)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_StrangerRejected() {
	ctx := context.Background()
	owner := suite.actor(kernel.RoleCustomer)
	stranger := suite.actor(kernel.RoleCustomer)
	seeded := suite.seedOrder(owner.ID(), time.Now().UTC().Truncate(time.Microsecond))

	query, err := queries.NewGetOrderQuery(seeded.ID(), stranger)
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, order.ErrUnauthorized)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_NotFound() {
	ctx := context.Background()
	admin := suite.actor(kernel.RoleAdmin)

	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), admin)
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrders_RoleScoping() {
	ctx := context.Background()
	customer := suite.actor(kernel.RoleCustomer)
	partner := suite.actor(kernel.RolePartner)
	admin := suite.actor(kernel.RoleAdmin)

	base := time.Now().UTC().Truncate(time.Microsecond)
	mine := suite.seedOrder(customer.ID(), base.Add(-2*time.Hour))
	foreign := suite.seedOrder(kernel.NewUUID(), base.Add(-time.Hour))

	// Assign the foreign order to the partner.
	suite.Require().NoError(foreign.Assign(partner, partner.ID()))
	suite.Require().NoError(suite.repo.Update(ctx, foreign))

	handler := queries.NewGetOrdersQueryHandler(suite.db)

	customerQuery, err := queries.NewGetOrdersQuery(customer)
	suite.Require().NoError(err)
	customerOrders, err := handler.Handle(ctx, customerQuery)
	suite.Require().NoError(err)
	suite.Require().Len(customerOrders, 1)
	suite.True(customerOrders[0].ID.IsEqual(mine.ID()))

	partnerQuery, err := queries.NewGetOrdersQuery(partner)
	suite.Require().NoError(err)
	partnerOrders, err := handler.Handle(ctx, partnerQuery)
	suite.Require().NoError(err)
	suite.Require().Len(partnerOrders, 1)
	suite.True(partnerOrders[0].ID.IsEqual(foreign.ID()))

	adminQuery, err := queries.NewGetOrdersQuery(admin)
	suite.Require().NoError(err)
	adminOrders, err := handler.Handle(ctx, adminQuery)
	suite.Require().NoError(err)
	suite.Len(adminOrders, 2)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrders_NewestFirst() {
	ctx := context.Background()
	customer := suite.actor(kernel.RoleCustomer)

	base := time.Now().UTC().Truncate(time.Microsecond)
	older := suite.seedOrder(customer.ID(), base.Add(-2*time.Hour))
	newer := suite.seedOrder(customer.ID(), base.Add(-time.Hour))

	query, err := queries.NewGetOrdersQuery(customer)
	suite.Require().NoError(err)

	orders, err := queries.NewGetOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	suite.True(orders[0].ID.IsEqual(newer.ID()))
	suite.True(orders[1].ID.IsEqual(older.ID()))
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrderPosition_ReflectsLatestReport() {
	ctx := context.Background()
	customer := suite.actor(kernel.RoleCustomer)
	partner := suite.actor(kernel.RolePartner)
	seeded := suite.seedOrder(customer.ID(), time.Now().UTC().Truncate(time.Microsecond))

	suite.Require().NoError(seeded.Assign(partner, partner.ID()))
	position, err := kernel.NewGeoPoint(12.9716, 77.5946)
	suite.Require().NoError(err)
	observedAt := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(seeded.ReportPosition(partner, position, observedAt))
	suite.Require().NoError(suite.repo.Update(ctx, seeded))

	query, err := queries.NewGetOrderPositionQuery(seeded.ID(), customer)
	suite.Require().NoError(err)

	resp, err := queries.NewGetOrderPositionQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(resp.OrderID.IsEqual(seeded.ID()))
	suite.Equal(order.StatusAssigned, resp.Status)
	suite.Require().NotNil(resp.Location)
	suite.InDelta(12.9716, resp.Location.Lat(), 1e-9)
	suite.Require().NotNil(resp.ObservedAt)
	suite.True(resp.ObservedAt.Equal(observedAt))
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}
