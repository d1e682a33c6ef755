package app

import (
	"lms_tracking_backend/docs"
	"lms_tracking_backend/internal/config"
	"lms_tracking_backend/internal/middleware"
	"lms_tracking_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	// Prometheus 指标
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 支付回调入口，由支付网关调用，不走学员 JWT
		api.POST("/payments/order", c.payment.ConfirmOrder)

		tracking := api.Group("/course-tracking")
		tracking.Use(middleware.AuthMiddleware(cfg))
		{
			tracking.POST("/enroll", c.tracking.Enroll)
			tracking.PATCH("/progress", c.tracking.UpdateProgress)
			tracking.GET("/progress/:enrollmentId", c.tracking.GetCourseProgress)
			tracking.GET("/:studentId/:courseId", c.tracking.GetEnrollmentDetails)
		}
	}
}
