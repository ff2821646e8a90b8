package cmd

import (
	"time"

	"swiftdrop/internal/adapters/in/http"
	"swiftdrop/internal/adapters/out/geo"
	"swiftdrop/internal/adapters/out/notify"
	"swiftdrop/internal/adapters/out/postgres"
	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/application/usecases/queries"
	"swiftdrop/internal/core/ports"

	"gorm.io/gorm"
)

const defaultJWTExpiry = 24 * time.Hour

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	distance   ports.DistanceCalculator
	hub        *notify.Hub
	auth       *http.JWTService
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	geoClient, err := geo.NewClient(config.GeoAPIURL, config.GeoAPIKey)
	if err != nil {
		return CompositionRoot{}, err
	}

	expiry := defaultJWTExpiry
	if config.JWTExpiry != "" {
		expiry, err = time.ParseDuration(config.JWTExpiry)
		if err != nil {
			return CompositionRoot{}, err
		}
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		distance:   geoClient,
		hub:        notify.NewHub(),
		auth:       http.NewJWTService(config.JWTSecret, expiry),
	}, nil
}

func (c *CompositionRoot) NotificationChannel() ports.NotificationChannel {
	return c.hub
}

func (c *CompositionRoot) JWTService() *http.JWTService {
	return c.auth
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.distance, c.hub)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() (commands.StartDeliveryCommandHandler, error) {
	return commands.NewStartDeliveryCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() (commands.CompleteDeliveryCommandHandler, error) {
	return commands.NewCompleteDeliveryCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() (commands.CancelOrderCommandHandler, error) {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateReportPositionCommandHandler() (commands.ReportPositionCommandHandler, error) {
	return commands.NewReportPositionCommandHandler(c.orderUoWFactory(), c.hub)
}

func (c *CompositionRoot) CreateRefreshEtaCommandHandler() commands.RefreshEtaCommandHandler {
	return commands.NewRefreshEtaCommandHandler(c.orderUoWFactory(), c.distance, c.hub)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderPositionQueryHandler() queries.GetOrderPositionQueryHandler {
	return queries.NewGetOrderPositionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
