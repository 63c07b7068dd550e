package main

import (
	"net/http"

	"go.uber.org/zap"

	"charsheet/backend/internal/auth"
	"charsheet/backend/internal/config"
	"charsheet/backend/internal/database"
	"charsheet/backend/internal/handler"
	"charsheet/backend/internal/service"
	"charsheet/backend/internal/store/gormstore"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "charsheet/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Character Sheet API
// @version         1.0
// @description     REST backend for a tabletop RPG character-sheet manager.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Connect to the database
	db := database.Connect(config.AppConfig.DatabaseURL)

	// Stores
	userStore := gormstore.NewUserStore(db)
	characterStore := gormstore.NewCharacterStore(db)
	itemStore := gormstore.NewItemStore(db)

	// Services
	userService := service.NewUserService(userStore, characterStore, itemStore)
	authService := service.NewAuthService(userStore)
	itemService := service.NewItemService(itemStore, characterStore)
	characterService := service.NewCharacterService(characterStore, userStore, itemService)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService)
	characterHandler := handler.NewCharacterHandler(characterService)
	itemHandler := handler.NewItemHandler(itemService)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Public routes
		apiV1.POST("/user", userHandler.CreateUser)
		apiV1.POST("/login", authHandler.Login)
		apiV1.POST("/refresh-token", authHandler.RefreshToken)

		// Protected routes
		protected := apiV1.Group("")
		protected.Use(auth.AuthMiddleware())
		{
			protected.POST("/logout", authHandler.Logout)
			protected.POST("/change-password", authHandler.ChangePassword)

			protected.GET("/user/:id", userHandler.GetUser)
			protected.PUT("/user/:id", userHandler.UpdateUser)
			protected.DELETE("/user/:id", userHandler.DeleteUser)

			protected.POST("/character", characterHandler.CreateCharacter)
			protected.GET("/characters", characterHandler.GetCharacters)
			protected.GET("/character/:id", characterHandler.GetCharacter)
			protected.PUT("/character/:id", characterHandler.UpdateCharacter)
			protected.DELETE("/character/:id", characterHandler.DeleteCharacter)

			protected.POST("/character/:id/item", itemHandler.CreateItem)
			protected.POST("/character/:id/items", itemHandler.CreateManyItems)
			protected.GET("/character/:id/items", itemHandler.GetItems)
			protected.PUT("/character/:id/item/:itemId", itemHandler.UpdateItem)
			protected.DELETE("/character/:id/item/:itemId", itemHandler.DeleteItem)
		}
	}

	addr := ":" + config.AppConfig.Port
	logger.Info("server starting", zap.String("addr", addr))
	logger.Info("swagger UI available at http://localhost" + addr + "/swagger/index.html")
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
