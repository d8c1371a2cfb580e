package main

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	bloghandler "viewtech-backend/internal/domains/blog/handler"
	mediahandler "viewtech-backend/internal/domains/media/handler"
	messagehandler "viewtech-backend/internal/domains/message/handler"
	pagehandler "viewtech-backend/internal/domains/page/handler"
	portfoliohandler "viewtech-backend/internal/domains/portfolio/handler"
	settingshandler "viewtech-backend/internal/domains/settings/handler"
	taxonomyhandler "viewtech-backend/internal/domains/taxonomy/handler"
	userhandler "viewtech-backend/internal/domains/user/handler"
	"viewtech-backend/internal/shared/middleware"
	"viewtech-backend/pkg/container"
)

func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(corsMiddleware(c.Config.App.CORSOrigins))

	router.GET("/health", func(ctx *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		ctx.JSON(code, gin.H{
			"status":  status,
			"version": c.Config.App.Version,
		})
	})

	auth := middleware.AuthMiddleware(c.JWTManager)
	optionalAuth := middleware.OptionalAuthMiddleware(c.JWTManager)
	admin := middleware.AdminMiddleware()

	api := router.Group("/api")

	authHandler := userhandler.NewAuthHandler(c.UserService)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/status", auth, authHandler.Status)
		authGroup.POST("/logout", auth, authHandler.Logout)
	}

	blogHandler := bloghandler.NewBlogHandler(c.BlogService)
	blogGroup := api.Group("/blog")
	{
		blogGroup.GET("", optionalAuth, blogHandler.List)
		blogGroup.GET("/:identifier", optionalAuth, blogHandler.Get)
		blogGroup.POST("", auth, admin, blogHandler.Create)
		blogGroup.PUT("/:id", auth, admin, blogHandler.Update)
		blogGroup.DELETE("/:id", auth, admin, blogHandler.Delete)
	}

	portfolioHandler := portfoliohandler.NewPortfolioHandler(c.PortfolioService)
	portfolioGroup := api.Group("/portfolio")
	{
		portfolioGroup.GET("", optionalAuth, portfolioHandler.List)
		portfolioGroup.GET("/:identifier", optionalAuth, portfolioHandler.Get)
		portfolioGroup.POST("", auth, admin, portfolioHandler.Create)
		portfolioGroup.PUT("/:id", auth, admin, portfolioHandler.Update)
		portfolioGroup.DELETE("/:id", auth, admin, portfolioHandler.Delete)
	}

	taxonomyHandler := taxonomyhandler.NewTaxonomyHandler(c.TaxonomyService)
	categoryGroup := api.Group("/categories")
	{
		categoryGroup.GET("", taxonomyHandler.ListCategories)
		categoryGroup.GET("/:identifier", taxonomyHandler.GetCategory)
		categoryGroup.POST("", auth, admin, taxonomyHandler.CreateCategory)
		categoryGroup.PUT("/:id", auth, admin, taxonomyHandler.UpdateCategory)
		categoryGroup.DELETE("/:id", auth, admin, taxonomyHandler.DeleteCategory)
	}
	tagGroup := api.Group("/tags")
	{
		tagGroup.GET("", taxonomyHandler.ListTags)
		tagGroup.GET("/:identifier", taxonomyHandler.GetTag)
		tagGroup.POST("", auth, admin, taxonomyHandler.CreateTag)
		tagGroup.PUT("/:id", auth, admin, taxonomyHandler.UpdateTag)
		tagGroup.DELETE("/:id", auth, admin, taxonomyHandler.DeleteTag)
	}

	pageHandler := pagehandler.NewPageHandler(c.PageService)
	pageGroup := api.Group("/pages")
	{
		pageGroup.GET("", optionalAuth, pageHandler.List)
		pageGroup.GET("/:identifier", optionalAuth, pageHandler.Get)
		pageGroup.POST("", auth, admin, pageHandler.Create)
		pageGroup.PUT("/:id", auth, admin, pageHandler.Update)
		pageGroup.DELETE("/:id", auth, admin, pageHandler.Delete)
	}

	messageHandler := messagehandler.NewMessageHandler(c.MessageService)
	messageGroup := api.Group("/messages")
	{
		// the contact form posts here without authentication
		messageGroup.POST("", messageHandler.Create)
		messageGroup.GET("", auth, admin, messageHandler.List)
		messageGroup.GET("/:id", auth, admin, messageHandler.Get)
		messageGroup.PATCH("/:id/status", auth, admin, messageHandler.UpdateStatus)
		messageGroup.POST("/:id/respond", auth, admin, messageHandler.Respond)
		messageGroup.DELETE("/:id", auth, admin, messageHandler.Delete)
	}

	mediaHandler := mediahandler.NewMediaHandler(c.MediaService)
	mediaGroup := api.Group("/media", auth, admin)
	{
		mediaGroup.POST("", mediaHandler.Upload)
		mediaGroup.GET("", mediaHandler.List)
		mediaGroup.GET("/:id", mediaHandler.Get)
		mediaGroup.DELETE("/:id", mediaHandler.Delete)
	}

	usersHandler := userhandler.NewUserHandler(c.UserService)
	userGroup := api.Group("/users", auth, admin)
	{
		userGroup.GET("", usersHandler.List)
		userGroup.GET("/:id", usersHandler.Get)
		userGroup.POST("", usersHandler.Create)
		userGroup.PUT("/:id", usersHandler.Update)
		userGroup.DELETE("/:id", usersHandler.Delete)
	}

	settingsHandler := settingshandler.NewSettingsHandler(c.SettingsService)
	settingsGroup := api.Group("/settings")
	{
		settingsGroup.GET("", settingsHandler.All)
		settingsGroup.GET("/:key", settingsHandler.Get)
		settingsGroup.PUT("/:key", auth, admin, settingsHandler.Upsert)
		settingsGroup.DELETE("/:key", auth, admin, settingsHandler.Delete)
	}

	return router
}

func corsMiddleware(origins string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

	if origins == "*" || origins == "" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}

	return cors.New(cfg)
}
