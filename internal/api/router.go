package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dasha/promptfolio/internal/api/handler"
	"github.com/dasha/promptfolio/internal/api/middleware"
	"github.com/dasha/promptfolio/internal/logger"
	"github.com/dasha/promptfolio/internal/service"
)

// Services bundles everything the HTTP surface needs.
type Services struct {
	Arts       *service.ArtService
	Search     *service.SearchService
	Categories *service.CategoryService
	Users      *service.UserService
	Auth       *service.AuthService
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(svcs *Services, log *logger.Logger, mode string, cors middleware.CORSConfig) *gin.Engine {
	// Set Gin mode
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cors))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	artHandler := handler.NewArtHandler(svcs.Arts, svcs.Users)
	searchHandler := handler.NewSearchHandler(svcs.Search)
	categoryHandler := handler.NewCategoryHandler(svcs.Categories)
	userHandler := handler.NewUserHandler(svcs.Users)
	authHandler := handler.NewAuthHandler(svcs.Auth)
	statsHandler := handler.NewStatsHandler(svcs.Arts, svcs.Categories)

	// Health check
	r.GET("/health", healthHandler.Health)

	// Arts
	arts := r.Group("/arts")
	{
		arts.POST("/", artHandler.Create)
		arts.GET("/", artHandler.List)
		arts.GET("/:id", artHandler.Get)
		arts.POST("/:id/like", artHandler.Like)
		arts.DELETE("/:id/like", artHandler.Unlike)
		arts.GET("/:id/likes", artHandler.Likes)
	}

	// Search
	r.GET("/search/", searchHandler.Search)

	// Categories
	categories := r.Group("/categories")
	{
		categories.GET("/", categoryHandler.List)
		categories.GET("/top/", categoryHandler.Top)
	}

	// Users
	users := r.Group("/users")
	{
		users.POST("/", userHandler.Create)
		users.GET("/:id", userHandler.Get)
		users.POST("/:id/follow", userHandler.Follow)
		users.DELETE("/:id/follow", userHandler.Unfollow)
		users.GET("/:id/arts", artHandler.ListByOwner)
		users.GET("/:id/searches", userHandler.Searches)
	}

	// Auth
	r.POST("/auth/google", authHandler.ExchangeGoogle)

	// Stats
	r.GET("/stats", statsHandler.Stats)

	return r
}
