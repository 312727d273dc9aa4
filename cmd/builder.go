package cmd

import (
	"context"
	"fmt"
	"net/http"

	"invoicing/api"
	"invoicing/api/health"
	apiinvoice "invoicing/api/invoice"
	apinotification "invoicing/api/notification"
	invoiceapp "invoicing/application/invoice"
	notificationapp "invoicing/application/notification"
	"invoicing/config"
	"invoicing/domain/invoice"
	"invoicing/domain/notification"
	"invoicing/domain/shared"
	infranotification "invoicing/infrastructure/notification"
	"invoicing/infrastructure/persistence/memory"
	"invoicing/infrastructure/persistence/mysql"
	"invoicing/infrastructure/persistence/retry"
	"invoicing/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder assembles an App from configuration. Repository and driver
// default to what the config selects and can be replaced before Build.
type AppBuilder struct {
	cfg         *config.Config
	invoiceRepo invoice.Repository
	driver      notification.Driver
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithInvoiceRepository skips database setup and uses repo instead.
func (b *AppBuilder) WithInvoiceRepository(repo invoice.Repository) *AppBuilder {
	b.invoiceRepo = repo
	return b
}

// WithDriver skips notification driver setup and uses driver instead.
func (b *AppBuilder) WithDriver(driver notification.Driver) *AppBuilder {
	b.driver = driver
	return b
}

// Build wires every component. On error, whatever was already opened is closed.
func (b *AppBuilder) Build(ctx context.Context) (_ *App, err error) {
	app := &App{config: b.cfg}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	checks := make(map[string]health.CheckFunc)

	invoiceRepo := b.invoiceRepo
	if invoiceRepo == nil {
		var db *gorm.DB
		invoiceRepo, db, err = b.initRepository(ctx)
		if err != nil {
			return nil, err
		}
		if db != nil {
			app.db = db
			checks["database"] = func(ctx context.Context) error { return mysql.Ping(ctx, db) }
		}
	}

	driver := b.driver
	if driver == nil {
		var closeDriver func() error
		driver, closeDriver, err = infranotification.NewDriver(ctx, b.cfg.Notification)
		if err != nil {
			return nil, fmt.Errorf("failed to create notification driver: %w", err)
		}
		app.closers = append(app.closers, closeDriver)
	}
	logger.Info("Notification driver ready", zap.String("driver", driver.Name()))

	bus := shared.NewEventBus()
	if err = invoiceapp.NewDeliveredListener(invoiceRepo).Subscribe(bus); err != nil {
		return nil, fmt.Errorf("failed to subscribe delivered listener: %w", err)
	}

	invoiceService := invoiceapp.NewApplicationService(invoiceRepo, notificationapp.NewFacade(driver))
	notificationService := notificationapp.NewService(bus)

	if kafkaCfg := b.cfg.Notification.Kafka; kafkaCfg.ReceiptsEnabled {
		app.consumer = infranotification.NewReceiptConsumer(
			kafkaCfg.Brokers, kafkaCfg.GroupID, kafkaCfg.DeliveredTopic, notificationService.Delivered)
		logger.Info("Delivery receipt consumer configured",
			zap.Strings("brokers", kafkaCfg.Brokers),
			zap.String("topic", kafkaCfg.DeliveredTopic))
	}

	router := api.NewRouter(b.cfg,
		health.NewController(b.cfg, checks),
		apiinvoice.NewController(invoiceService),
		apinotification.NewController(notificationService),
	)
	router.SetupRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return app, nil
}

func (b *AppBuilder) initRepository(ctx context.Context) (invoice.Repository, *gorm.DB, error) {
	if b.cfg.Database.Type != "mysql" {
		logger.Info("Using in-memory persistence layer")
		return memory.NewInvoiceRepository(), nil, nil
	}

	logger.Info("Using MySQL/GORM persistence layer")

	db, err := mysql.FromAppConfig(b.cfg.Database, b.cfg.Log.Level).Connect()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	if err := mysql.Ping(ctx, db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if b.cfg.Database.MigrateOnStart {
		if err := mysql.Migrate(ctx, db); err != nil {
			closeDB(db)
			return nil, nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return mysql.NewInvoiceRepository(db, retry.FromAppConfig(b.cfg.Database.Retry)), db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
