package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odontoweb/records-api/internal/handler"
	"github.com/odontoweb/records-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORSConfig     middleware.CORSConfig
	RequestTimeout time.Duration
	MetricsPrefix  string
}

type Router struct {
	engine  *gin.Engine
	healthH *handler.HealthHandler
	metrics *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(healthH *handler.HealthHandler, config Config, handlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:  engine,
		healthH: healthH,
		metrics: initRouterMetrics(config.MetricsPrefix),
	}

	timeout := config.RequestTimeout
	if timeout == 0 {
		timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: timeout}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	if config.RateLimitRPS > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   config.RateLimitRPS,
			Burst: config.RateLimitBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	r.setupHealthCheck()

	api := engine.Group("/api/v1")
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return r
}

func (r *Router) setupHealthCheck() {
	health := r.engine.Group("/health")
	{
		health.GET("/live", r.healthH.LivenessCheck)
		health.GET("/ready", r.healthH.ReadinessCheck)
	}
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "records_api"
	}
	return &routerMetrics{
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
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	prometheus.MustRegister(r.metrics.requestDuration, r.metrics.requestTotal, r.metrics.errorTotal)

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
