package app

import (
	"wikiquiz_backend/docs"
	"wikiquiz_backend/internal/middleware"
	"wikiquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/login", c.auth.Login)
		public.POST("/auth/logout", c.auth.Logout)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.Config))
	{
		authGroup.GET("/auth/me", c.auth.Me)

		// 教材
		authGroup.POST("/materials", c.material.CreateMaterial)

		// 答题会话
		authGroup.POST("/sessions", c.session.CreateSession)
		authGroup.POST("/sessions/:id/answers", c.session.SubmitAnswer)
		authGroup.GET("/sessions/:id/result", c.session.GetResult)
	}
}
