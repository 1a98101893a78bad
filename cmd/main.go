package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/sunshade_report_system/internal/config"
	v1 "github.com/shenikar/sunshade_report_system/internal/handler/http/v1"
	"github.com/shenikar/sunshade_report_system/internal/handler/web"
	"github.com/shenikar/sunshade_report_system/internal/mailer"
	"github.com/shenikar/sunshade_report_system/internal/metrics"
	"github.com/shenikar/sunshade_report_system/internal/repository"
	"github.com/shenikar/sunshade_report_system/internal/service"
	"github.com/shenikar/sunshade_report_system/pkg/logger"
	"github.com/shenikar/sunshade_report_system/pkg/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/sunshade_report_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Sunshade Report System API
// @version 1.0
// @description Fault reports for municipal sunshades (그늘막).
// @host localhost:8080
// @BasePath /api/v1
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// newAssetSource выбирает источник справочника по DATASET_SOURCE
func newAssetSource(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repository.AssetSource, func(), error) {
	if cfg.DatasetSource != config.DatasetSourcePostgres {
		log.WithField("path", cfg.DatasetPath).Info("Using xlsx asset dataset")
		return repository.NewXLSXSource(cfg.DatasetPath), func() {}, nil
	}

	if err := runMigrations(cfg, log); err != nil {
		return nil, nil, err
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Successfully connected to PostgreSQL")
	return repository.NewPostgresSource(dbpool), dbpool.Close, nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics.Register()

	// Инициализация источника справочника
	source, closeSource, err := newAssetSource(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize asset source: %v", err)
	}
	defer closeSource()

	// Инициализация репозиториев
	assetRepo := repository.NewAssetCatalog(source)

	// Справочник грузится лениво; здесь только предупреждаем, если он уже недоступен
	if _, err := assetRepo.LoadAssets(ctx); err != nil {
		log.WithError(err).Warn("Asset dataset is not available yet")
	}

	// Инициализация сервисов
	notifier := mailer.NewSMTPNotifier(cfg, log)
	reportService := service.NewReportService(assetRepo, notifier, log)

	// Инициализация хэндлеров
	webHandler := web.NewHandler(reportService, log, cfg)
	apiHandler := v1.NewHandler(reportService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.SetHTMLTemplate(web.Templates())
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	webHandler.RegisterRoutes(router)

	api := router.Group("/api/v1")
	api.Use(cors.New(corsConfig(cfg)))
	apiHandler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	return corsCfg
}
