package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/marketplace-api/internal/handler"
	availabilityH "github.com/jwalitptl/marketplace-api/internal/handler/availability"
	authH "github.com/jwalitptl/marketplace-api/internal/handler/auth"
	bookingH "github.com/jwalitptl/marketplace-api/internal/handler/booking"
	catalogH "github.com/jwalitptl/marketplace-api/internal/handler/catalog"
	reviewH "github.com/jwalitptl/marketplace-api/internal/handler/review"
	"github.com/jwalitptl/marketplace-api/internal/middleware"
	"github.com/jwalitptl/marketplace-api/internal/model"
)

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authHandler  *authH.Handler
	catalog      *catalogH.Handler
	availability *availabilityH.Handler
	booking      *bookingH.Handler
	review       *reviewH.Handler
	h            *handler.Handler
	slotCache    *middleware.SlotCache
	metrics      *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
	SlotCacheTTL  time.Duration
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authHandler *authH.Handler,
	catalog *catalogH.Handler,
	availability *availabilityH.Handler,
	booking *bookingH.Handler,
	review *reviewH.Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		authHandler:  authHandler,
		catalog:      catalog,
		availability: availability,
		booking:      booking,
		review:       review,
		h:            h,
		metrics:      initRouterMetrics(config.MetricsPrefix),
	}

	if config.SlotCacheTTL > 0 {
		r.slotCache = middleware.NewSlotCache(config.SlotCacheTTL)
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: 30 * time.Second}),
		middleware.RequestID(),
		middleware.Validation(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)
	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.authHandler.RegisterRoutes(rg)
	r.catalog.RegisterPublicRoutes(rg)
	r.review.RegisterPublicRoutes(rg)
	r.availability.RegisterPublicRoutes(rg, r.slotCache)
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	requireProvider := r.auth.RequireRole(model.RoleProvider)
	requireAdmin := r.auth.RequireRole(model.RoleAdmin)

	provider := rg.Group("")
	provider.Use(requireProvider)
	r.availability.RegisterRoutes(provider)

	r.catalog.RegisterRoutes(rg, requireProvider, requireAdmin)
	r.booking.RegisterRoutes(rg, requireProvider)
	r.review.RegisterRoutes(rg, requireAdmin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
