package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/newsletter-server/internal/api/http/router"
	httpServer "github.com/dtroode/newsletter-server/internal/api/http/server"
	"github.com/dtroode/newsletter-server/internal/config"
	"github.com/dtroode/newsletter-server/internal/email"
	"github.com/dtroode/newsletter-server/internal/events"
	"github.com/dtroode/newsletter-server/internal/logger"
	"github.com/dtroode/newsletter-server/internal/metrics"
	"github.com/dtroode/newsletter-server/internal/model"
	"github.com/dtroode/newsletter-server/internal/repository/postgres"
	"github.com/dtroode/newsletter-server/internal/server"
	"github.com/dtroode/newsletter-server/internal/service"
	storage "github.com/dtroode/newsletter-server/internal/storage/minio"
	"github.com/dtroode/newsletter-server/internal/telemetry"
	"github.com/dtroode/newsletter-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// .env is optional, real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	tokenGenerator := token.NewGenerator(nil)

	emailSender, err := newEmailSender(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize email client", "error", err)
	}

	publisher, closeBus, err := newEventPublisher(cfg.NATS, logger)
	if err != nil {
		logger.Fatal("failed to connect to event bus", "error", err)
	}
	defer closeBus()

	appMetrics := metrics.New()

	subscriptionService := service.NewSubscription(
		subscriptionRepo,
		tokenGenerator,
		emailSender,
		publisher,
		appMetrics,
		service.SubscriptionConfig{
			BaseURL:         cfg.BaseURL,
			DatabaseTimeout: cfg.Database.Timeout,
			EmailTimeout:    cfg.Email.Timeout,
		},
		logger,
	)

	r := router.New(subscriptionService, appMetrics, cfg.HTTP.RequestTimeout, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("error during tracer shutdown", "error", err)
	}
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// newEmailSender picks the configured transport and, when object storage is
// configured, archives every delivered message.
func newEmailSender(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.EmailSender, error) {
	var sender model.EmailSender

	switch cfg.Email.Transport {
	case config.EmailTransportSMTP:
		sender = email.NewSMTPClient(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.Sender,
			cfg.Email.SMTPUsername, cfg.Email.SMTPPassword)
	default:
		if cfg.Email.APIToken == "" {
			sender = email.NewLogSender(logger)
		} else {
			sender = email.NewAPIClient(cfg.Email.APIBaseURL, cfg.Email.Sender, cfg.Email.APIToken, cfg.Email.Timeout)
		}
	}

	if cfg.Storage.Endpoint == "" {
		return sender, nil
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	return email.NewArchivingSender(sender, storageClient, cfg.Email.Sender, cfg.Email.ArchivePrefix, logger), nil
}

func newEventPublisher(cfg config.NATS, logger *logger.Logger) (model.EventPublisher, func(), error) {
	if cfg.URL == "" {
		logger.Info("event bus not configured, events are discarded")
		return events.Noop{}, func() {}, nil
	}

	bus, err := events.New(cfg.URL, cfg.Stream)
	if err != nil {
		return nil, nil, err
	}
	return bus, bus.Close, nil
}
