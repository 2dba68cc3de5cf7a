package cmd

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	httpin "fulfillment/internal/adapters/in/http"
	catalogout "fulfillment/internal/adapters/out/catalog"
	paymentout "fulfillment/internal/adapters/out/payment"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/cache"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"
	"fulfillment/internal/notifications"
	"fulfillment/internal/payments"
	"fulfillment/internal/pkg/keymutex"
)

// CompositionRoot wires adapters into use case handlers. Handlers are built
// per call; the shared pieces (DB pool, broker, locks, payment processor) are
// built once here.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	sequence   *postgres.GormOrderNumberSequence
	catalog    *catalogout.GormCatalogGateway
	broker     notifications.Broker
	locks      *keymutex.KeyMutex
	scorer     services.StaffScorer
	processor  *payments.Processor
	logger     *slog.Logger
}

// NewCompositionRoot assembles the shared infrastructure of the service.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	broker notifications.Broker,
	store cache.Store,
	logger *slog.Logger,
) CompositionRoot {
	gateway := paymentout.NewSimulatedGateway(config.PaymentLatency, logger)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		sequence:   postgres.NewGormOrderNumberSequence(gormDB),
		catalog:    catalogout.NewGormCatalogGateway(gormDB, store, logger),
		broker:     broker,
		locks:      keymutex.New(),
		scorer:     services.NewStaffScorer(),
		processor:  payments.NewProcessor(gateway, config.PaymentTimeout, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	confirm := c.CreateConfirmPaymentCommandHandler()
	initiator := &asyncPaymentInitiator{
		processor: c.processor,
		confirm:   confirm,
		logger:    c.logger,
	}

	return commands.NewSubmitOrderCommandHandler(
		f, c.sequence, c.catalog, initiator, c.broker, c.config.TaxRate, c.logger)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.scorer, c.locks, c.broker, c.logger)
}

func (c *CompositionRoot) CreateDispatchBacklogCommandHandler() commands.DispatchBacklogCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchBacklogCommandHandler(f, c.locks, c.broker, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})

	dispatcher := c.CreateDispatchBacklogCommandHandler()
	return commands.NewTransitionOrderCommandHandler(f, &dispatcher, c.broker, c.logger)
}

func (c *CompositionRoot) CreateSetStaffAvailabilityCommandHandler() commands.SetStaffAvailabilityCommandHandler {
	var f commands.StaffUoWFactory = FuncStaffUoWFactory(func() commands.StaffUoW {
		return c.uowFactory.Create()
	})

	dispatcher := c.CreateDispatchBacklogCommandHandler()
	return commands.NewSetStaffAvailabilityCommandHandler(f, &dispatcher, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f, c.broker, c.logger)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBacklogQueryHandler() queries.GetBacklogQueryHandler {
	return queries.NewGetBacklogQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.sequence, c.config.SequenceRetentionDays, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateSetStaffAvailabilityCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetBacklogQueryHandler(),
		c.broker,
		c.logger,
	)
}

// asyncPaymentInitiator bridges order submission to the payment processor:
// it starts the charge and applies the outcome through ConfirmPayment once
// the task resolves.
type asyncPaymentInitiator struct {
	processor *payments.Processor
	confirm   commands.ConfirmPaymentCommandHandler
	logger    *slog.Logger
}

func (i *asyncPaymentInitiator) InitiatePayment(orderID kernel.UUID, amount kernel.Money) {
	task := i.processor.Start(orderID, amount)

	go func() {
		outcome := <-task.Done()

		cmd, err := commands.NewConfirmPaymentCommand(outcome.OrderID, outcome.Err == nil)
		if err != nil {
			i.logger.Error("Failed to build payment confirmation",
				"order_id", outcome.OrderID.String(), "error", err)
			return
		}

		if err := i.confirm.Handle(context.Background(), cmd); err != nil {
			i.logger.Error("Failed to apply payment outcome",
				"order_id", outcome.OrderID.String(), "error", err)
		}
	}()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStaffUoWFactory func() commands.StaffUoW

func (f FuncStaffUoWFactory) Create() commands.StaffUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
