package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleaning-marketplace-api/internal/controller"
	"cleaning-marketplace-api/internal/metrics"
	"cleaning-marketplace-api/internal/realtime"
	"cleaning-marketplace-api/internal/repo"
	"cleaning-marketplace-api/internal/service"
	"cleaning-marketplace-api/pkg/config"
	"cleaning-marketplace-api/pkg/http_server"
	"cleaning-marketplace-api/pkg/logger"
	"cleaning-marketplace-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func runMigrations(postgresDB *postgres.Postgres, sourceUrl string, log *zap.Logger) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database.DB, &pgmigrate.Config{})
	if err != nil {
		log.Fatal("migration driver init failed", zap.Error(err))
	}

	migrations, err := migrate.NewWithDatabaseInstance(sourceUrl, "postgres", driver)
	if err != nil {
		log.Fatal("migration setup failed", zap.Error(err))
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Info("no change made by migration scripts")
		} else {
			log.Fatal("migration failed", zap.Error(err))
		}
	}
}

func newPublisher(cfg config.RedisConfig, log *zap.Logger) realtime.Publisher {
	if !cfg.Enabled {
		log.Info("redis disabled, realtime events stay in process")
		return realtime.NewMemoryBus()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	publisher, err := realtime.NewRedisPublisher(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		log.Warn("redis unreachable, falling back to in-process events", zap.Error(err))
		return realtime.NewMemoryBus()
	}

	return publisher
}

func Run() {
	cfg := config.Load()

	logger.Init(cfg.Server.Env, cfg.Log.Level)
	log := logger.Get()
	defer func() { _ = log.Sync() }()

	metrics.Init(cfg.Metrics.Prefix)

	log.Info("connecting database", zap.String("address", cfg.Server.Address))
	postgresDB, err := postgres.NewDB(cfg.Database.URL)
	if err != nil {
		log.Fatal("error occurred while connecting to db", zap.Error(err))
	}
	defer postgresDB.Close()

	postgresDB.Database.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	postgresDB.Database.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	postgresDB.Database.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	log.Info("running migrations")
	runMigrations(postgresDB, cfg.Database.MigrationsPath, log)

	publisher := newPublisher(cfg.Redis, log)
	defer func() { _ = publisher.Close() }()
	emitter := realtime.NewEmitter(publisher, log)

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(service.ServicesDependencies{
		Repos:         repositories,
		Emitter:       emitter,
		DefaultFeeBps: cfg.Platform.DefaultFeeBps,
	})

	handler := echo.New()
	handler.HideBanner = true
	handler.Use(logger.Middleware(log))
	handler.Use(metrics.Middleware())
	handler.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	log.Info("setup routes")
	controller.SetupRoutesHandlers(handler, services)

	log.Info("starting server", zap.String("address", cfg.Server.Address))
	httpServer := http_server.New(handler, cfg.Server.Address, cfg.Server.ShutdownTimeout)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("got signal", zap.String("signal", s.String()))
	case err = <-httpServer.Notify():
		log.Error("server notify", zap.Error(err))
	}

	log.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		log.Error("shutdown error", zap.Error(err))
		return
	}
	log.Info("successful shutdown")
}
