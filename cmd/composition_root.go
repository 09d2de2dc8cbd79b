package cmd

import (
	"log/slog"

	httpadapter "ordertrack/internal/adapters/in/http"
	"ordertrack/internal/adapters/out/postgres"
	"ordertrack/internal/core/application/dispatch"
	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/application/usecases/queries"
	"ordertrack/internal/core/domain/model/events"
	"ordertrack/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and the event dispatcher together.
// All construction happens here so the rest of the code stays free of
// dependency plumbing.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateUpsertOrderCommandHandler() commands.UpsertOrderCommandHandler {
	return commands.NewUpsertOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(
		c.orderUoWFactory(), c.config.PaymentMismatchThreshold, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByCustomerQueryHandler() queries.GetOrdersByCustomerQueryHandler {
	return queries.NewGetOrdersByCustomerQueryHandler(c.gormDB)
}

// CreateDispatcher builds the event dispatcher with every canonical event
// bound. Returns an error when a handler is missing, which the caller treats
// as fatal.
func (c *CompositionRoot) CreateDispatcher() (*dispatch.Dispatcher, error) {
	dispatcher := dispatch.NewDispatcher(c.logger)

	statusHandler := c.CreateUpdateOrderStatusCommandHandler()
	eventHandlers := dispatch.NewOrderEventHandlers(&statusHandler)
	eventHandlers.RegisterAll(dispatcher)

	if err := dispatcher.EnsureRegistered(events.AllEventTypes()...); err != nil {
		return nil, err
	}

	return dispatcher, nil
}

// CreateHTTPServer builds the API server on top of the dispatcher and the
// command/query handlers.
func (c *CompositionRoot) CreateHTTPServer(dispatcher *dispatch.Dispatcher) *httpadapter.Server {
	upsertHandler := c.CreateUpsertOrderCommandHandler()

	return httpadapter.NewServer(
		&upsertHandler,
		dispatcher,
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
		c.CreateGetOrdersByStatusQueryHandler(),
		c.CreateGetOrdersByCustomerQueryHandler(),
		c.config.OrderIDPrefix,
	)
}

// CreateJobManager builds the background jobs on top of the dispatcher.
func (c *CompositionRoot) CreateJobManager(dispatcher *dispatch.Dispatcher) *jobs.JobManager {
	staleOrderJob := jobs.NewStaleOrderJob(
		postgres.NewGormUnitOfWorkFactory(c.gormDB),
		dispatcher,
		c.config.StaleOrderTTL,
		c.logger,
	)

	return jobs.NewJobManager(staleOrderJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
