package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/asset"
	assetPostgres "github.com/vyrtus/helpdesk/internal/asset/postgres"
	"github.com/vyrtus/helpdesk/internal/auth"
	authPostgres "github.com/vyrtus/helpdesk/internal/auth/postgres"
	"github.com/vyrtus/helpdesk/internal/client"
	clientPostgres "github.com/vyrtus/helpdesk/internal/client/postgres"
	"github.com/vyrtus/helpdesk/internal/core/events"
	"github.com/vyrtus/helpdesk/internal/ticket"
	ticketPostgres "github.com/vyrtus/helpdesk/internal/ticket/postgres"
	"github.com/vyrtus/helpdesk/internal/transport/rest"
	"github.com/vyrtus/helpdesk/internal/transport/swagger"
	"github.com/vyrtus/helpdesk/internal/user"
	userPostgres "github.com/vyrtus/helpdesk/internal/user/postgres"
	"github.com/vyrtus/helpdesk/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Config, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Environment)
	appLogger := logger.L()

	if err := swagger.ValidateSpec(context.Background(), config.Server.OpenAPIPath); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	bus := events.NewEventBus(appLogger)
	registerAuditSubscribers(bus, appLogger)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGenerator, appLogger)
	authHandler := auth.NewHandler(authService)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, appLogger)
	userHandler := user.NewHandler(userService)

	assetRepo := assetPostgres.NewAssetRepository(gormDB)
	assetService := asset.NewService(assetRepo, appLogger)
	assetHandler := asset.NewHandler(assetService)

	ticketRepo := ticketPostgres.NewTicketRepository(gormDB)
	ticketService := ticket.NewService(ticketRepo, assetService, bus, appLogger)
	ticketHandler := ticket.NewHandler(ticketService)

	clientRepo := clientPostgres.NewClientRepository(gormDB)
	clientService := client.NewService(clientRepo, appLogger)
	clientHandler := client.NewHandler(clientService)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
		Handlers: rest.Handlers{
			Auth:   authHandler,
			User:   userHandler,
			Ticket: ticketHandler,
			Asset:  assetHandler,
			Client: clientHandler,
		},
	}, nil
}

// registerAuditSubscribers attaches the audit trail consumers. Delivery is
// async and best effort; the mutation that raised the event has already
// been committed.
func registerAuditSubscribers(bus *events.EventBus, log *slog.Logger) {
	bus.Subscribe(events.TicketCreated, func(ctx context.Context, e events.Event) error {
		log.Info("audit: ticket created",
			"event_id", e.EventID(),
			"session_user", internal.UserIDFromContext(ctx),
			"payload", e.Payload())
		return nil
	})
	bus.Subscribe(events.TicketStatusChanged, func(ctx context.Context, e events.Event) error {
		log.Info("audit: ticket status changed",
			"event_id", e.EventID(),
			"session_user", internal.UserIDFromContext(ctx),
			"payload", e.Payload())
		return nil
	})
}

// initDB opens the raw connection through pgx's database/sql driver.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already opened *sql.DB so both share a
// single connection pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}
