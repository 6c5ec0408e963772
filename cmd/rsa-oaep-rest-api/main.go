// cmd/rsa-oaep-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	v1 "github.com/Photic23/rsa-oaep/internal/api/rest/v1"
	"github.com/Photic23/rsa-oaep/internal/app"
	"github.com/Photic23/rsa-oaep/internal/domain/files"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/connector"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/persistence"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
	"github.com/Photic23/rsa-oaep/internal/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// An empty path searches ./configs and the working directory
	cfg, err := config.InitializeAppConfig(os.Getenv(config.EnvPrefix + "_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps, err := initializeDependencies(cfg, registry, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn("failed to close database: ", err)
		}
	}()

	return startServerWithGracefulShutdown(cfg, deps, registry, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	services *appServices
}

type appServices struct {
	cryptoKeyGeneration keys.CryptoKeyGenerationService
	cryptoKeyDownload   keys.CryptoKeyDownloadService
	cryptoKeyMetadata   keys.CryptoKeyMetadataService
	fileEncryption      files.FileEncryptionService
	fileDecryption      files.FileDecryptionService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.AppConfig, registry prometheus.Registerer, log logger.Logger) (*appDependencies, error) {
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	storageLog := logger.WithComponent(log, logger.ComponentStorage)
	cryptoKeyRepo, err := persistence.NewGormCryptoKeyRepository(db, storageLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key repository: %w", err)
	}

	vaultConnector, err := connector.NewVaultConnector(context.Background(), &cfg.KeyConnector, storageLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault connector: %w", err)
	}
	log.Info("Key connector ", cfg.KeyConnector.CloudProvider, " initialized successfully")

	m, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	services, err := initializeApplicationServices(cfg, vaultConnector, cryptoKeyRepo, m, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:       db,
		services: services,
	}, nil
}

// initializeApplicationServices sets up the cryptographic components and the services built on them
func initializeApplicationServices(
	cfg *config.AppConfig,
	vaultConn keys.VaultConnector,
	keyRepo keys.CryptoKeyRepository,
	m *metrics.Metrics,
	log logger.Logger,
) (*appServices, error) {
	cryptoLog := logger.WithComponent(log, logger.ComponentCryptography)
	keysLog := logger.WithComponent(log, logger.ComponentKeys)
	filesLog := logger.WithComponent(log, logger.ComponentFiles)

	keyEngine, err := cryptography.NewRSAKeyEngine(nil, cryptoLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create key engine: %w", err)
	}

	oaepProcessor, err := cryptography.NewOAEPProcessor(nil, cryptoLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAEP processor: %w", err)
	}

	fileProcessor, err := cryptography.NewFileProcessor(keyEngine, oaepProcessor, cfg.Crypto.LabelBytes(), cryptoLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create file processor: %w", err)
	}

	generationService, err := app.NewCryptoKeyGenerationService(vaultConn, keyRepo, keyEngine, &cfg.Crypto, m, keysLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key generation service: %w", err)
	}

	downloadService, err := app.NewCryptoKeyDownloadService(vaultConn, keyRepo, keysLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key download service: %w", err)
	}

	metadataService, err := app.NewCryptoKeyMetadataService(vaultConn, keyRepo, keysLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto key metadata service: %w", err)
	}

	encryptionService, err := app.NewFileEncryptionService(vaultConn, keyRepo, fileProcessor, m, filesLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create file encryption service: %w", err)
	}

	decryptionService, err := app.NewFileDecryptionService(vaultConn, keyRepo, fileProcessor, m, filesLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create file decryption service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		cryptoKeyGeneration: generationService,
		cryptoKeyDownload:   downloadService,
		cryptoKeyMetadata:   metadataService,
		fileEncryption:      encryptionService,
		fileDecryption:      decryptionService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.AppConfig, deps *appDependencies, gatherer prometheus.Gatherer, log logger.Logger) error {
	log = logger.WithComponent(log, logger.ComponentHTTP)

	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = cfg.Server.MaxUploadSize

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: !allowsAnyOrigin(cfg.Server.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	v1.SetupRoutes(r,
		deps.services.cryptoKeyGeneration,
		deps.services.cryptoKeyDownload,
		deps.services.cryptoKeyMetadata,
		deps.services.fileEncryption,
		deps.services.fileDecryption,
		cfg.Server.MaxUploadSize,
	)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Starting server on port ", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// browsers reject credentialed requests answered with a wildcard origin
func allowsAnyOrigin(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
