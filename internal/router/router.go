package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/bookwell/booking-api/internal/handler"
	"github.com/bookwell/booking-api/internal/middleware"
)

// Handler registers a group of routes on the authenticated API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	h       *handler.Handler
	metrics *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "booking_api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booking_api",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"method", "route", "status"}),
	}
}

func NewRouter(auth *middleware.AuthMiddleware, h *handler.Handler, log zerolog.Logger, cfg Config, apiHandlers ...Handler) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:  engine,
		auth:    auth,
		h:       h,
		metrics: newRouterMetrics(),
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.CORSConfig))
	engine.Use(r.observe())

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  cfg.RateLimit,
		Burst: cfg.RateBurst,
	})
	engine.Use(limiter.RateLimit())

	engine.GET("/healthz", h.HealthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	api.Use(auth.Authenticate())
	for _, ah := range apiHandlers {
		ah.RegisterRoutes(api)
	}

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, route, status).
			Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, route, status).Inc()
	}
}
