package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/medimeet/booking-api/internal/api/handler"
	"github.com/medimeet/booking-api/internal/api/middleware"
	"github.com/medimeet/booking-api/internal/core/domain"
	"github.com/medimeet/booking-api/internal/core/ports"
	"github.com/medimeet/booking-api/internal/core/service"
	"github.com/medimeet/booking-api/internal/infrastructure/db/postgres"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, views ports.ViewInvalidator, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("booking"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	slotRepo := postgres.NewAvailabilityRepository(pool)
	apptRepo := postgres.NewAppointmentRepository(pool)

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	availabilityService := service.NewAvailabilityService(userRepo, slotRepo, views, log)
	appointmentService := service.NewAppointmentService(userRepo, apptRepo, slotRepo, views, log)

	authHandler := handler.NewAuthHandler(authService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)

	auth := middleware.Auth(jwtSecret)
	doctorOnly := middleware.RequireRole(domain.RoleDoctor)
	patientOnly := middleware.RequireRole(domain.RolePatient)
	anyParty := middleware.RequireRole(domain.RoleDoctor, domain.RolePatient)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Availability (doctor only) ---
	availability := e.Group("/v1/availability", auth, doctorOnly)
	availability.GET("", availabilityHandler.List)
	availability.PUT("", availabilityHandler.Replace)

	// --- Appointments ---
	appointments := e.Group("/v1/appointments", auth)
	appointments.GET("", appointmentHandler.List, anyParty)
	appointments.POST("", appointmentHandler.Book, patientOnly)
	appointments.POST("/:id/cancel", appointmentHandler.Cancel, anyParty)
	appointments.POST("/:id/complete", appointmentHandler.Complete, doctorOnly)
	appointments.PUT("/:id/notes", appointmentHandler.AddNotes, doctorOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
