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
	"github.com/zeitwerk/zeitwerk/internal"
	"github.com/zeitwerk/zeitwerk/internal/auth"
	authPostgres "github.com/zeitwerk/zeitwerk/internal/auth/postgres"
	"github.com/zeitwerk/zeitwerk/internal/balance"
	balancePostgres "github.com/zeitwerk/zeitwerk/internal/balance/postgres"
	"github.com/zeitwerk/zeitwerk/internal/group"
	groupPostgres "github.com/zeitwerk/zeitwerk/internal/group/postgres"
	"github.com/zeitwerk/zeitwerk/internal/holiday"
	holidayPostgres "github.com/zeitwerk/zeitwerk/internal/holiday/postgres"
	"github.com/zeitwerk/zeitwerk/internal/project"
	projectPostgres "github.com/zeitwerk/zeitwerk/internal/project/postgres"
	"github.com/zeitwerk/zeitwerk/internal/report"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
	timeentryPostgres "github.com/zeitwerk/zeitwerk/internal/timeentry/postgres"
	"github.com/zeitwerk/zeitwerk/internal/transport/rest"
	"github.com/zeitwerk/zeitwerk/internal/user"
	userPostgres "github.com/zeitwerk/zeitwerk/internal/user/postgres"
	"github.com/zeitwerk/zeitwerk/pkg/logger"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, cfg.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	userRepo := userPostgres.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, deps.Logger, cfg.Security.BCryptCost)
	userHandler := user.NewHandler(userService)

	entryRepo := timeentryPostgres.NewTimeEntryRepository(deps.GormDB)
	entryService := timeentry.NewService(entryRepo, deps.Logger)
	entryHandler := timeentry.NewHandler(entryService)

	balanceRepo := balancePostgres.NewBalanceRepository(deps.GormDB)
	balanceService := balance.NewService(balanceRepo, deps.Logger)
	balanceHandler := balance.NewHandler(balanceService)

	reportService := report.NewService(entryRepo, deps.Logger)
	reportHandler := report.NewHandler(reportService)

	projectRepo := projectPostgres.NewProjectRepository(deps.GormDB)
	projectService := project.NewService(projectRepo, deps.Logger)
	projectHandler := project.NewHandler(projectService)

	groupRepo := groupPostgres.NewGroupRepository(deps.GormDB)
	groupService := group.NewService(groupRepo, deps.Logger)
	groupHandler := group.NewHandler(groupService)

	holidayRepo := holidayPostgres.NewHolidayRepository(deps.GormDB)
	holidayService := holiday.NewService(holidayRepo, deps.Logger)
	holidayHandler := holiday.NewHandler(holidayService)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, rest.Handlers{
		Auth:      authHandler,
		User:      userHandler,
		TimeEntry: entryHandler,
		Balance:   balanceHandler,
		Report:    reportHandler,
		Project:   projectHandler,
		Group:     groupHandler,
		Holiday:   holidayHandler,
	}, cfg.Server.AllowedOrigins, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB initializes the database connection
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
