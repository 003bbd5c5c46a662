package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"slotbook/internal/caching"
	"slotbook/internal/handlers"
	"slotbook/internal/jobs/background"
	"slotbook/internal/middleware"
	"slotbook/internal/notify"
	"slotbook/internal/repositories"
	"slotbook/internal/services"
	"slotbook/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// Identity provider used by the login flow
	identityVerifyURL := os.Getenv("IDENTITY_VERIFY_URL")
	if identityVerifyURL == "" {
		log.Fatal("IDENTITY_VERIFY_URL environment variable is required")
	}

	// Email configuration; reminders are disabled when the key is missing
	resendAPIKey := os.Getenv("RESEND_API_KEY")
	senderEmail := os.Getenv("SENDER_EMAIL")
	if senderEmail == "" {
		senderEmail = "noreply@slotbook.app"
	}
	if resendAPIKey == "" {
		log.Printf("WARNING: RESEND_API_KEY not set, reminder emails are disabled")
	}

	// Create repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	serviceRepo := repositories.NewServiceRepo(pool)
	employeeRepo := repositories.NewEmployeeRepo(pool)
	blockedTimeRepo := repositories.NewBlockedTimeRepo(pool)
	appointmentRepo := repositories.NewAppointmentRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	mailer := notify.NewResendMailer(resendAPIKey, senderEmail)
	verifier := services.NewHTTPIdentityVerifier(identityVerifyURL)

	tenantSvc := services.NewTenantService(tenantRepo, cacheSvc)
	authSvc := services.NewAuthService(userRepo, cacheSvc, verifier)
	catalogSvc := services.NewCatalogService(serviceRepo)
	employeeSvc := services.NewEmployeeService(employeeRepo)
	availabilitySvc := services.NewAvailabilityService(serviceRepo, appointmentRepo, blockedTimeRepo)
	appointmentSvc := services.NewAppointmentService(appointmentRepo, serviceRepo, employeeRepo, blockedTimeRepo)
	blockedTimeSvc := services.NewBlockedTimeService(blockedTimeRepo, appointmentRepo, employeeRepo)
	reportSvc := services.NewReportService(appointmentRepo)
	reminderSvc := services.NewReminderService(appointmentRepo, employeeRepo, tenantRepo, mailer)

	// Create handlers
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)
	authHandlers := handlers.NewAuthHandlers(authSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	serviceHandlers := handlers.NewServiceHandlers(catalogSvc)
	employeeHandlers := handlers.NewEmployeeHandlers(employeeSvc)
	blockedTimeHandlers := handlers.NewBlockedTimeHandlers(blockedTimeSvc)
	appointmentHandlers := handlers.NewAppointmentHandlers(appointmentSvc, availabilitySvc, reminderSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)

	// Background jobs
	jobScheduler := background.NewJobScheduler(reminderSvc, tenantRepo)
	if err := jobScheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer jobScheduler.Stop()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
	}))
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no tenant, no auth)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	// API routes: session first so a logged-in user pins the tenant, then
	// host-based resolution for everyone else
	api := e.Group("/api")
	api.Use(middleware.Session(authSvc))
	api.Use(middleware.TenantResolver(tenantSvc))

	api.GET("", healthHandlers.Banner)

	// Authentication
	api.POST("/auth/session", authHandlers.Login, middleware.RateLimit(cacheSvc, 10, time.Minute))
	api.GET("/auth/me", authHandlers.Me, middleware.RequireSession())
	api.POST("/auth/logout", authHandlers.Logout)

	// Tenant
	api.GET("/tenant", tenantHandlers.GetTenant)
	api.PUT("/tenant", tenantHandlers.UpdateTenant, middleware.RequireAdmin())

	// Service catalog
	api.GET("/services", serviceHandlers.ListServices)
	api.GET("/services/all", serviceHandlers.ListAllServices, middleware.RequireAdmin())
	api.GET("/services/:id", serviceHandlers.GetService)
	api.POST("/services", serviceHandlers.CreateService, middleware.RequireAdmin())
	api.PUT("/services/:id", serviceHandlers.UpdateService, middleware.RequireAdmin())
	api.DELETE("/services/:id", serviceHandlers.DeleteService, middleware.RequireAdmin())

	// Employees
	api.GET("/employees", employeeHandlers.ListEmployees)
	api.GET("/employees/all", employeeHandlers.ListAllEmployees, middleware.RequireAdmin())
	api.GET("/employees/:id", employeeHandlers.GetEmployee)
	api.POST("/employees", employeeHandlers.CreateEmployee, middleware.RequireAdmin())
	api.PUT("/employees/:id", employeeHandlers.UpdateEmployee, middleware.RequireAdmin())
	api.DELETE("/employees/:id", employeeHandlers.DeleteEmployee, middleware.RequireAdmin())

	// Blocked times
	api.GET("/blocked-times", blockedTimeHandlers.ListBlockedTimes, middleware.RequireAdmin())
	api.POST("/blocked-times", blockedTimeHandlers.CreateBlockedTime, middleware.RequireAdmin())
	api.PUT("/blocked-times/:id", blockedTimeHandlers.UpdateBlockedTime, middleware.RequireAdmin())
	api.DELETE("/blocked-times/:id", blockedTimeHandlers.DeleteBlockedTime, middleware.RequireAdmin())

	// Appointments
	api.GET("/appointments", appointmentHandlers.ListAppointments, middleware.RequireSession())
	api.GET("/appointments/available-slots", appointmentHandlers.AvailableSlots)
	api.POST("/appointments", appointmentHandlers.CreateAppointment)
	api.POST("/appointments/send-daily-reminders", appointmentHandlers.SendDailyReminders, middleware.RequireAdmin())
	api.GET("/appointments/:id", appointmentHandlers.GetAppointment)
	api.PUT("/appointments/:id/status", appointmentHandlers.UpdateStatus, middleware.RequireAdmin())
	api.PUT("/appointments/:id/reschedule", appointmentHandlers.Reschedule)
	api.DELETE("/appointments/:id", appointmentHandlers.CancelAppointment)
	api.DELETE("/appointments/:id/purge", appointmentHandlers.PurgeAppointment, middleware.RequireAdmin())
	api.POST("/appointments/:id/send-reminder", appointmentHandlers.SendReminder, middleware.RequireAdmin())

	// Reports
	api.GET("/reports/revenue", reportHandlers.RevenueReport, middleware.RequireAdmin())

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("Slotbook server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
