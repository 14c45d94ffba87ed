// Command server runs the booking backend HTTP API.
//
// Startup order: env + config, logging, database (with migrations and
// catalog seeding), tracing, integrations (SendGrid, Stripe), then the
// Gin engine. Shutdown drains in-flight requests before flushing traces.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pestward/go-booking-backend/internal/config"
	"github.com/pestward/go-booking-backend/internal/domain"
	httpapi "github.com/pestward/go-booking-backend/internal/http"
	"github.com/pestward/go-booking-backend/internal/mail"
	"github.com/pestward/go-booking-backend/internal/observability"
	"github.com/pestward/go-booking-backend/internal/payments"
	"github.com/pestward/go-booking-backend/internal/repo"
	"github.com/pestward/go-booking-backend/internal/services"
	"github.com/pestward/go-booking-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// seedCatalogRepo adapts the repo free functions for the one-off catalog
// seeding done at startup. The HTTP layer wires its own adapters.
type seedCatalogRepo struct{}

func (seedCatalogRepo) ListActiveServices(ctx context.Context, db *gorm.DB) ([]domain.Service, error) {
	return repo.ListActiveServices(ctx, db)
}

func (seedCatalogRepo) CountServices(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountServices(ctx, db)
}

func (seedCatalogRepo) CreateService(ctx context.Context, db *gorm.DB, s domain.Service) (*domain.Service, error) {
	return repo.CreateService(ctx, db, s)
}

func main() {
	// .env is optional; real deployments inject environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.InitLogging(cfg.LogLevel, cfg.LogPretty)
	log.Info().Str("version", version).Str("gin_mode", cfg.GinMode).Msg("starting booking backend")

	gin.SetMode(cfg.GinMode)

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := services.NewCatalogService(db, seedCatalogRepo{}).EnsureSeeded(seedCtx); err != nil {
		cancelSeed()
		log.Fatal().Err(err).Msg("seed service catalog")
	}
	cancelSeed()

	shutdownOTel, err := observability.SetupOTel(context.Background(), cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("set up tracing")
	}

	mailer := mail.NewSendGridMailer(cfg.Mail.SendGridKey, cfg.Mail.FromName, cfg.Mail.FromEmail, cfg.Mail.Sandbox)
	checkout := payments.NewStripeCheckout(cfg.Stripe.APIKey, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)

	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, mailer, checkout, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, draining")

	drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		log.Error().Err(err).Msg("drain http server")
	}
	if err := shutdownOTel(drainCtx); err != nil {
		log.Error().Err(err).Msg("flush traces")
	}
	log.Info().Msg("stopped")
}
