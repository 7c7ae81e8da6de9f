package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-console/config"
	"github.com/ikkim/catalog-console/internal/app/controller"
	"github.com/ikkim/catalog-console/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	sessionController  *controller.SessionController
	composerController *controller.ComposerController
	catalogController  *controller.CatalogController
	noticeController   *controller.NoticeController
	config             *config.Config
}

func NewRouter(
	sessionController *controller.SessionController,
	composerController *controller.ComposerController,
	catalogController *controller.CatalogController,
	noticeController *controller.NoticeController,
	cfg *config.Config,
) *Router {
	return &Router{
		sessionController:  sessionController,
		composerController: composerController,
		catalogController:  catalogController,
		noticeController:   noticeController,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Catalog console is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", r.sessionController.Open)
			sessions.GET("/:id", r.sessionController.Get)
			sessions.DELETE("/:id", r.sessionController.Discard)
			sessions.PATCH("/:id", r.sessionController.UpdateFields)

			sessions.POST("/:id/tags", r.sessionController.AddTag)
			sessions.DELETE("/:id/tags/:tag", r.sessionController.RemoveTag)
			sessions.POST("/:id/keywords", r.sessionController.AddKeyword)
			sessions.DELETE("/:id/keywords/:keyword", r.sessionController.RemoveKeyword)

			sessions.PUT("/:id/variant-mode", r.sessionController.SetVariantMode)
			sessions.POST("/:id/images", r.sessionController.AddImages)
			sessions.DELETE("/:id/images/:index", r.sessionController.RemoveImage)
			sessions.POST("/:id/submit", r.sessionController.Submit)

			sessions.GET("/:id/types", r.composerController.ListTypes)
			sessions.GET("/:id/types/:typeId/values", r.composerController.ListValues)

			sessions.PATCH("/:id/composer", r.composerController.Update)
			sessions.PUT("/:id/composer/type", r.composerController.SelectType)
			sessions.PUT("/:id/composer/value", r.composerController.SelectValue)
			sessions.POST("/:id/composer/values", r.composerController.CreateValue)
			sessions.DELETE("/:id/composer/values", r.composerController.CancelCreateValue)
			sessions.POST("/:id/composer/images", r.composerController.AddImages)
			sessions.DELETE("/:id/composer/images/:index", r.composerController.RemoveImage)
			sessions.POST("/:id/composer/commit", r.composerController.Commit)

			sessions.PATCH("/:id/variants/:localId", r.composerController.UpdateVariant)
			sessions.DELETE("/:id/variants/:localId", r.composerController.RemoveVariant)
			sessions.POST("/:id/variants/:localId/images", r.composerController.AddVariantImages)
			sessions.DELETE("/:id/variants/:localId/images/:index", r.composerController.RemoveVariantImage)

			sessions.GET("/:id/notices", r.noticeController.Stream)
		}

		v1.GET("/previews/:id", r.noticeController.Preview)

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/brands", r.catalogController.Brands)
			catalog.GET("/subcategories", r.catalogController.Subcategories)
		}

		submissions := v1.Group("/submissions")
		{
			submissions.GET("", r.catalogController.ListSubmissions)
			submissions.GET("/stats", r.catalogController.SubmissionStats)
			submissions.GET("/:submissionId", r.catalogController.GetSubmission)
		}
	}

	return router
}
