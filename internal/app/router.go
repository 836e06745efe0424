package app

import (
	"e_learn_backend/docs"
	"e_learn_backend/internal/config"
	"e_learn_backend/internal/middleware"
	"e_learn_backend/internal/model"
	"e_learn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/auth/activate", c.auth.Activate)

		// 联邦登录落地
		public.POST("/oauth/:provider/resolve", c.oauth.ResolveFederated)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.GET("/levels", c.user.GetAccessibleLevels)
	rg.POST("/placement-test", c.user.SubmitPlacementTest)

	// 内容学习流程
	rg.GET("/contents", c.content.ListContents)
	rg.GET("/contents/:id/resume", c.content.ResolveInProgress)
	rg.POST("/contents/:id/start", c.content.StartContent)
	rg.POST("/contents/:id/finish-reading", c.content.FinishReading)
	rg.GET("/contents/:id/test", c.content.GetTest)
	rg.POST("/contents/:id/test", c.content.SubmitTest)

	// 评论
	rg.GET("/contents/:id/comments", c.comment.ListComments)
	rg.POST("/contents/:id/comments", c.comment.AddComment)
	rg.PUT("/comments/:commentId", c.comment.EditComment)
	rg.DELETE("/comments/:commentId", c.comment.DeleteComment)

	// 生词本
	rg.GET("/contents/:id/vocabulary", c.vocabulary.ListVocabulary)
	rg.POST("/contents/:id/vocabulary", c.vocabulary.SubmitVocabulary)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.POST("/users/:id/toggle-status", c.user.ToggleUserStatus)

		admin.POST("/contents", c.content.CreateContent)
		admin.DELETE("/contents/:id", c.content.DeleteContent)
	}
}
