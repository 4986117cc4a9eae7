package delivery

import (
	"time"

	"adsplanner/internal/delivery/middleware"
	"adsplanner/internal/usecase"
	"adsplanner/pkg/logger"
	"adsplanner/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig holds the transport limits applied by the middleware chain
type RouterConfig struct {
	RequestTimeout     time.Duration
	RateLimitPerSecond float64
	RateLimitBurst     int
	// Gatherer backs /metrics; defaults to the global registry
	Gatherer prometheus.Gatherer
}

type HTTPRouter struct {
	handlers *HTTPHandlers
	config   RouterConfig
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewHTTPRouter(handlers *HTTPHandlers, config RouterConfig, logger *logger.Logger, metrics *metrics.Metrics) *HTTPRouter {
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}
	return &HTTPRouter{
		handlers: handlers,
		config:   config,
		logger:   logger,
		metrics:  metrics,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	if r.config.RequestTimeout > 0 {
		router.Use(middleware.Timeout(r.config.RequestTimeout))
	}
	if r.config.RateLimitPerSecond > 0 {
		router.Use(middleware.RateLimit(r.config.RateLimitPerSecond, r.config.RateLimitBurst))
	}

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}

	router.Use(cors.New(config))

	h := r.handlers

	// Health endpoint
	router.GET("/health", h.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", h.GetAPIInfo)
		v1.GET("", h.GetAPIInfo)

		importGroup := v1.Group("/import")
		{
			importGroup.POST("", h.Import)
			importGroup.POST("/remote", h.ImportRemote)
		}

		campaigns := v1.Group("/campaigns")
		{
			campaigns.GET("", h.ListCampaigns)
			campaigns.POST("", h.CreateCampaign)
			campaigns.PATCH("/:id", h.UpdateCampaign)
			campaigns.DELETE("/:id", h.DeleteEntity(usecase.KindCampaign))
			campaigns.GET("/:id/ad-groups", h.ListAdGroupsByCampaign)
		}

		adGroups := v1.Group("/ad-groups")
		{
			adGroups.GET("", h.ListAdGroups)
			adGroups.POST("", h.CreateAdGroup)
			adGroups.DELETE("/:id", h.DeleteEntity(usecase.KindAdGroup))
			adGroups.GET("/:id/keywords", h.ListKeywordsByAdGroup)
			adGroups.GET("/:id/ads", h.ListAdsByAdGroup)
		}

		keywords := v1.Group("/keywords")
		{
			keywords.GET("", h.ListKeywords)
			keywords.POST("", h.CreateKeyword)
			keywords.DELETE("/:id", h.DeleteEntity(usecase.KindKeyword))
		}

		ads := v1.Group("/ads")
		{
			ads.GET("", h.ListAds)
			ads.POST("", h.CreateAd)
			ads.DELETE("/:id", h.DeleteEntity(usecase.KindAd))
		}

		v1.POST("/entities/delete", h.DeleteEntities)

		lists := v1.Group("/negative-lists")
		{
			lists.GET("", h.ListNegativeLists)
			lists.POST("", h.CreateNegativeList)
			lists.GET("/:id", h.GetNegativeList)
			lists.PUT("/:id", h.UpdateNegativeList)
			lists.DELETE("/:id", h.DeleteNegativeList)
			lists.POST("/:id/campaigns/:campaignId/toggle", h.ToggleNegativeListCampaign)
		}

		v1.GET("/conflicts", h.GetConflicts)
		v1.GET("/summary", h.GetSummary)
		v1.GET("/export", h.Export)
		v1.POST("/sync/push", h.SyncPush)
		v1.POST("/reset", h.Reset)
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler(r.config.Gatherer))

	return router
}
