package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sunibmakan/server/internal/container"
	"github.com/sunibmakan/server/internal/handlers"
	"github.com/sunibmakan/server/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "sunibmakan-api",
			})
		})

		// public auth routes
		v1.POST("/signup", handlers.CreateUser(container.UserService))
		v1.POST("/login", handlers.AuthenticateUser(container.UserService))
		v1.POST("/logout", handlers.Logout())
		v1.GET("/auth/google", handlers.GoogleAuth(container.UserService))
		v1.GET("/auth/callback", handlers.GoogleAuthCallback(container.UserService))

		// public read routes: browsing reviews needs no session
		v1.GET("/reviews", handlers.ListReviews(container.ReviewService))
		v1.GET("/reviews/roulette", handlers.RouletteReview(container.ReviewService))
		v1.GET("/reviews/:id", handlers.GetReview(container.ReviewService))
		v1.GET("/reviews/:id/comments", handlers.ListComments(container.CommentService))
		v1.GET("/leaderboard", handlers.GetLeaderboard(container.ReviewService))
	}

	// quest board is public but enriched with points for signed-in callers
	v1.GET("/quests",
		middleware.OptionalAuthMiddleware(container.UserService, container.Logger),
		handlers.GetQuests(container.UserService))

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.UserService, container.Logger))

	reviewRoutes := protected.Group("/reviews")
	{
		reviewRoutes.POST("/", handlers.CreateReview(container.ReviewService))
		reviewRoutes.PATCH("/:id", handlers.UpdateReview(container.ReviewService))
		reviewRoutes.DELETE("/:id", handlers.DeleteReview(container.ReviewService))
		reviewRoutes.POST("/:id/like", handlers.LikeReview(container.ReviewService))
		reviewRoutes.POST("/:id/dislike", handlers.DislikeReview(container.ReviewService))
		reviewRoutes.POST("/:id/comments", handlers.AddComment(container.CommentService))
	}

	userRoutes := protected.Group("/users")
	{
		protected.GET("/profile", handlers.GetProfile())
		userRoutes.GET("/me/reviews", handlers.ListMyReviews(container.ReviewService))
		userRoutes.GET("/me/points", handlers.GetMyPoints(container.UserService))
		userRoutes.GET("/:id", handlers.GetUser(container.UserService))
	}

	return r
}
