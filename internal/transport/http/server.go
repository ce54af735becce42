package http

import (
	"github.com/gin-gonic/gin"

	appsvc "splitmate/internal/app"
	"splitmate/internal/bootstrap"
	"splitmate/internal/cache"
	rabbitmqClient "splitmate/internal/platform/rabbitmq"
	"splitmate/internal/repository"
	"splitmate/internal/transport/http/handler"
	"splitmate/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/health", healthHandler.Check)

	devMode := !app.Config.IsProd()
	secret := app.Config.Auth.JWTSecret

	userRepo := repository.NewUserRepository(app.MySQL)
	groupRepo := repository.NewGroupRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)
	groupCache := cache.NewGroupCache(app.Redis, app.Config.GroupCacheTTL())
	publisher := rabbitmqClient.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		publisher,
		secret,
		app.Config.JWTTTL(),
		app.Config.Auth.BcryptCost,
	)
	groupService := appsvc.NewGroupService(groupRepo, groupCache, publisher)
	activityService := appsvc.NewActivityService(activityRepo)

	authHandler := handler.NewAuthHandler(authService, devMode)
	groupHandler := handler.NewGroupHandler(groupService, devMode)
	activityHandler := handler.NewActivityHandler(activityService)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", middleware.AuthJWT(secret), authHandler.Logout)

	groups := api.Group("/groups")
	groups.Use(middleware.AuthJWT(secret))
	groups.POST("", groupHandler.Create)
	groups.GET("", groupHandler.List)
	groups.GET("/:id", groupHandler.Details)

	api.GET("/activities", middleware.AuthJWT(secret), activityHandler.List)

	return router
}
