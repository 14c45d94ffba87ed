// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, identity, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/pestward/go-booking-backend/internal/config"
	"github.com/pestward/go-booking-backend/internal/domain"
	"github.com/pestward/go-booking-backend/internal/http/handlers"
	"github.com/pestward/go-booking-backend/internal/http/middleware"
	"github.com/pestward/go-booking-backend/internal/mail"
	"github.com/pestward/go-booking-backend/internal/payments"
	"github.com/pestward/go-booking-backend/internal/repo"
	"github.com/pestward/go-booking-backend/internal/services"
)

// bookingRepoShim adapts the repository free functions to the
// services.BookingRepo interface. This keeps services decoupled from the
// concrete repo package while reusing the existing functions.
type bookingRepoShim struct{}

func (bookingRepoShim) GetService(ctx context.Context, db *gorm.DB, id string) (*domain.Service, error) {
	return repo.GetService(ctx, db, id)
}

func (bookingRepoShim) BookedTimes(ctx context.Context, db *gorm.DB, date string) ([]string, error) {
	return repo.BookedTimes(ctx, db, date)
}

func (bookingRepoShim) CreateAppointment(ctx context.Context, db *gorm.DB, appt domain.Appointment) (*domain.Appointment, error) {
	return repo.CreateAppointment(ctx, db, appt)
}

func (bookingRepoShim) CountAppointments(ctx context.Context, db *gorm.DB, clientID string) (int64, error) {
	return repo.CountAppointments(ctx, db, clientID)
}

func (bookingRepoShim) ListAppointmentsPage(ctx context.Context, db *gorm.DB, clientID string, offset, limit int) ([]domain.Appointment, error) {
	return repo.ListAppointmentsPage(ctx, db, clientID, offset, limit)
}

func (bookingRepoShim) CancelAppointment(ctx context.Context, db *gorm.DB, id, clientID string) error {
	return repo.CancelAppointment(ctx, db, id, clientID)
}

func (bookingRepoShim) InsertAudit(ctx context.Context, db *gorm.DB, actorID, action, detail string) error {
	return repo.InsertAudit(ctx, db, actorID, action, detail)
}

// catalogRepoShim adapts the repository free functions to services.CatalogRepo.
type catalogRepoShim struct{}

func (catalogRepoShim) ListActiveServices(ctx context.Context, db *gorm.DB) ([]domain.Service, error) {
	return repo.ListActiveServices(ctx, db)
}

func (catalogRepoShim) CountServices(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountServices(ctx, db)
}

func (catalogRepoShim) CreateService(ctx context.Context, db *gorm.DB, s domain.Service) (*domain.Service, error) {
	return repo.CreateService(ctx, db, s)
}

// verificationRepoShim adapts the repository free functions to
// services.VerificationRepo.
type verificationRepoShim struct{}

func (verificationRepoShim) CreateCode(ctx context.Context, db *gorm.DB, email, code, purpose string, expiresAt time.Time) (*domain.VerificationCode, error) {
	return repo.CreateCode(ctx, db, email, code, purpose, expiresAt)
}

func (verificationRepoShim) FindRedeemableCode(ctx context.Context, db *gorm.DB, email, code, purpose string, now time.Time) (*domain.VerificationCode, error) {
	return repo.FindRedeemableCode(ctx, db, email, code, purpose, now)
}

func (verificationRepoShim) MarkCodeUsed(ctx context.Context, db *gorm.DB, id string, now time.Time) error {
	return repo.MarkCodeUsed(ctx, db, id, now)
}

func (verificationRepoShim) AdminExists(ctx context.Context, db *gorm.DB) (bool, error) {
	return repo.AdminExists(ctx, db)
}

func (verificationRepoShim) CreateRole(ctx context.Context, db *gorm.DB, userID, role string) (*domain.UserRole, error) {
	return repo.CreateRole(ctx, db, userID, role)
}

func (verificationRepoShim) InsertAdminAudit(ctx context.Context, db *gorm.DB, actorID, action, detail string) error {
	return repo.InsertAdminAudit(ctx, db, actorID, action, detail)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), identity, rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Identity: resolve the upstream-verified caller
//  4. Logger: structured access logs (with the caller id)
//  5. Recovery: capture panics after logger
//  6. Body size limiter, gzip
//  7. Metrics
//  8. Token-bucket rate limiter (per user/IP, whole surface)
//  9. CORS and security headers
//
// The stricter fixed-window attempt limiter applies only to the verification
// endpoints, keyed the same way.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, mailer mail.Mailer, checkout payments.Checkout, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Resolve caller identity before logging so logs carry it
	r.Use(middleware.Identity())

	// 4) Structured logging (sensitive query params masked)
	r.Use(middleware.Logger())

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Global body size limit (1 MiB) and response compression
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps
		// tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "X-User-Role"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "X-User-Role"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeBadRequest, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db/integrations
	bookingSvc := services.NewBookingService(db, bookingRepoShim{})
	catalogSvc := services.NewCatalogService(db, catalogRepoShim{})
	verifySvc := services.NewVerificationService(db, verificationRepoShim{}, mailer)
	assistSvc := services.NewAssistantService(cfg.AssistantThreshold)
	checkoutSvc := services.NewCheckoutService(checkout)

	h := handlers.New(bookingSvc, catalogSvc, verifySvc, assistSvc, checkoutSvc)

	// Fixed-window attempt limiter for the verification endpoints only.
	fw := middleware.NewFixedWindowLimiter(cfg.VerifyWindow, cfg.VerifyMaxAttempts, middleware.KeyByUserOrIP())

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Catalog
		api.GET("/services", h.ListServices)

		// Appointments
		api.GET("/appointments/slots", h.GetSlots)
		api.POST("/appointments", h.BookAppointment)
		api.GET("/appointments", h.ListAppointments)
		api.DELETE("/appointments/:id", h.CancelAppointment)

		// Verification (code-guessing protection)
		verification := api.Group("/verification", fw.Handler())
		verification.POST("/codes", h.IssueCode)
		verification.POST("/redeem", h.RedeemCode)

		// Assistant
		api.POST("/assistant/message", h.AskAssistant)

		// Checkout
		api.GET("/checkout/plans", h.ListPlans)
		api.POST("/checkout/sessions", h.CreateCheckoutSession)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
