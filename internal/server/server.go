// Package server assembles repositories, services and handlers into the HTTP router.
package server

import (
	"context"
	"net/http"
	"time"

	"tutorhub/internal/config"
	"tutorhub/internal/middleware"
	"tutorhub/internal/modules/admin"
	"tutorhub/internal/modules/auth"
	"tutorhub/internal/modules/booking"
	"tutorhub/internal/modules/notification"
	"tutorhub/internal/modules/payment"
	"tutorhub/internal/modules/review"
	"tutorhub/internal/modules/student"
	"tutorhub/internal/modules/tutor"
	"tutorhub/internal/pkg/jwt"
	"tutorhub/internal/pkg/keylock"
	"tutorhub/internal/pkg/response"
	"tutorhub/internal/pkg/validator"
	"tutorhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentGateway charges and refunds bookings.
type PaymentGateway interface {
	payment.Provider
	booking.Refunder
}

type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	// Locker defaults to an in-process locker.
	Locker keylock.Locker
	// Payments is nil when no provider is configured. The payment routes
	// are not mounted then and cancellations skip refunds.
	Payments PaymentGateway
}

type Server struct {
	Engine   *gin.Engine
	Auth     *auth.Service
	Bookings *booking.Service
	Hub      *notification.Hub
	Registry *prometheus.Registry
}

func New(d Deps) (*Server, error) {
	if err := validator.RegisterGinTags(); err != nil {
		return nil, err
	}
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	locker := d.Locker
	if locker == nil {
		locker = keylock.NewLocal()
	}
	cfg := d.Config

	// repositories
	students := repository.NewStudentRepository(d.DB)
	tutors := repository.NewTutorRepository(d.DB)
	admins := repository.NewAdminRepository(d.DB)
	bookings := repository.NewBookingRepository(d.DB)
	reviews := repository.NewReviewRepository(d.DB)
	stats := repository.NewStatsRepository(d.DB)

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := notification.NewHub(log.Named("ws"))

	var refunder booking.Refunder
	if d.Payments != nil {
		refunder = d.Payments
	}

	// services
	authService := auth.NewService(students, tutors, admins, jwtService, cfg.BcryptCost, log.Named("auth"))
	bookingService := booking.NewService(bookings, tutors, locker, hub, refunder, log.Named("booking"))
	reviewService := review.NewService(
		reviews,
		review.NewAggregator(reviews, locker),
		tutors,
		bookings,
		cfg.ReviewRequiresCompletedBooking,
		log.Named("review"),
	)
	studentService := student.NewService(students, bookings)
	tutorService := tutor.NewService(tutors, bookings)
	adminService := admin.NewService(tutors, stats, log.Named("admin"))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/healthz", healthz(d.DB))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	authGroup := api.Group("/auth", middleware.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst, log).Middleware())
	auth.NewHandler(authService).RegisterRoutes(authGroup)

	public := api.Group("")
	protected := api.Group("", middleware.JWTAuth(jwtService))
	adminGroup := protected.Group("/admin", middleware.AdminOnly())

	student.NewHandler(studentService).RegisterRoutes(protected)
	tutor.NewHandler(tutorService).RegisterRoutes(public, protected)
	booking.NewHandler(bookingService).RegisterRoutes(public, protected)
	review.NewHandler(reviewService).RegisterRoutes(public, protected)
	admin.NewHandler(adminService).RegisterRoutes(adminGroup)
	notification.NewHandler(hub, jwtService, cfg.CORSAllowedOrigins, log.Named("ws")).RegisterRoutes(public)

	if d.Payments != nil {
		paymentService := payment.NewService(bookings, tutors, d.Payments, bookingService, cfg.PaymentCurrency, log.Named("payment"))
		payment.NewHandler(paymentService).RegisterRoutes(public, protected)
	} else {
		log.Info("payments disabled, STRIPE_SECRET_KEY is not set")
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return &Server{
		Engine:   r,
		Auth:     authService,
		Bookings: bookingService,
		Hub:      hub,
		Registry: registry,
	}, nil
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
