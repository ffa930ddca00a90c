// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "daily-broadcast/internal/api"
	"daily-broadcast/internal/api/handler"
	"daily-broadcast/internal/clock"
	"daily-broadcast/internal/config"
	"daily-broadcast/internal/metrics"
	"daily-broadcast/internal/repository"
	"daily-broadcast/internal/repository/memory"
	"daily-broadcast/internal/repository/postgres"
	"daily-broadcast/internal/service"
	"daily-broadcast/internal/util"
	"daily-broadcast/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config  *config.AppConfig
	Logger  *slog.Logger
	Clock   clock.Clock
	Metrics *metrics.Metrics

	// Record store; exactly one of Store and DB is set, depending on the driver.
	Store *memory.Store
	DB    *sqlx.DB

	// Repositories
	BroadcastRepository repository.BroadcastRepository
	WalletRepository    repository.WalletRepository
	AdViewRepository    repository.AdViewRepository

	// Services
	BroadcastService service.BroadcastService
	WalletService    service.WalletService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components. A Clock set before the
// call is kept, which lets tests pin "now".
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "store", cfg.StoreDriver, "timezone", cfg.Location.String())

	if app.Clock == nil {
		app.Clock = clock.Real{Location: cfg.Location}
	}
	if cfg.MetricsEnabled {
		app.Metrics = metrics.New()
	}

	// 3. Initialize the record store and its repositories
	if err := app.initRepositories(ctx); err != nil {
		return err
	}
	app.Logger.Info("Repositories initialized.")

	// 4. Initialize Services
	app.BroadcastService = service.NewBroadcastService(app.BroadcastRepository, app.Clock, cfg.Location, app.Metrics)
	app.WalletService = service.NewWalletService(app.WalletRepository, app.AdViewRepository, app.Clock, app.Metrics)
	app.Logger.Info("Services initialized.")

	// 5. Initialize HTTP Handlers and Router
	broadcastHandler := handler.NewBroadcastHandler(app.BroadcastService, app.Logger)
	walletHandler := handler.NewWalletHandler(app.WalletService, app.Logger)
	app.HTTPHandler = router.NewRouter(broadcastHandler, walletHandler, app.Metrics, cfg.RequestTimeout, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

func (app *Application) initRepositories(ctx context.Context) error {
	switch app.Config.StoreDriver {
	case config.StorePostgres:
		database, err := db.NewPostgresDB(ctx, app.Config.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = database
		app.Logger.Info("Database connection established.")

		if err := postgres.Migrate(ctx, database); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		app.BroadcastRepository = postgres.NewBroadcastRepository(database)
		app.WalletRepository = postgres.NewWalletRepository(database)
		app.AdViewRepository = postgres.NewAdViewRepository(database)
	default:
		app.Store = memory.NewStore()
		app.BroadcastRepository = memory.NewBroadcastRepository(app.Store)
		app.WalletRepository = memory.NewWalletRepository(app.Store)
		app.AdViewRepository = memory.NewAdViewRepository(app.Store)
	}
	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	if app.Store != nil {
		broadcasts, wallets, views := app.Store.Counts()
		app.Logger.Info("Discarding in-memory records.", "broadcasts", broadcasts, "wallets", wallets, "views", views)
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
