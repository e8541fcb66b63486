package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "carbonfront/docs" // register swagger spec
	"carbonfront/internal/config"
	"carbonfront/internal/handler"
	"carbonfront/internal/middleware"
	"carbonfront/internal/session"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	logger *zap.Logger,
	store *session.Store,
	pageH *handler.PageHandler,
	singleH *handler.SingleHandler,
	bulkH *handler.BulkHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks and operational endpoints (no session)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	secure := cfg.Server.Environment == "production"
	withSession := middleware.Session(store, cfg.Session.CookieName, secure)

	// Server-rendered pages
	pages := r.Group("")
	pages.Use(withSession)
	pages.GET("/", pageH.Index)

	single := pages.Group("/pdf-processor")
	single.GET("", pageH.SinglePage)
	single.POST("", pageH.SubmitSingle)
	single.POST("/columns", pageH.UpdateColumns)
	single.GET("/download", pageH.DownloadSingle)
	single.POST("/reset", pageH.ResetSingle)

	bulk := pages.Group("/bulk-processing")
	bulk.GET("", pageH.BulkPage)
	bulk.POST("", pageH.SubmitBulk)
	bulk.GET("/download", pageH.DownloadBulk)
	bulk.POST("/reset", pageH.ResetBulk)

	// JSON API
	v1 := r.Group("/api/v1")
	v1.Use(withSession)

	api := v1.Group("/single")
	api.POST("", singleH.Submit)
	api.GET("", singleH.Get)
	api.DELETE("", singleH.Reset)
	api.PATCH("/columns/:key", singleH.UpdateColumn)
	api.POST("/columns/all", singleH.SetAllColumns)
	api.GET("/export", singleH.Export)

	v1.POST("/bulk", bulkH.Submit)

	return r
}
