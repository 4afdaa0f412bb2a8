package routes

import (
	"time"

	"devconnect/handlers"
	"devconnect/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(auth *handlers.AuthHandler, posts *handlers.PostHandler, profiles *handlers.ProfileHandler) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5500"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	api := router.Group("/api")

	// auth endpoints, rate limited against brute forcing
	limited := api.Group("")
	limited.Use(middleware.RateLimitMiddleware())
	limited.POST("/signup", auth.Signup)
	limited.POST("/login", auth.Login)

	// public profile reads
	api.GET("/profile/all", profiles.List)
	api.GET("/profile/user/:userId", profiles.GetByUser)

	protected := api.Group("")
	protected.Use(middleware.JWTAuthMiddleware())

	protected.GET("/me", auth.Me)

	protected.POST("/posts", posts.Create)
	protected.GET("/posts", posts.List)
	protected.GET("/posts/:id", posts.Get)
	protected.DELETE("/posts/:id", posts.Delete)
	protected.PUT("/posts/like/:id", posts.Like)
	protected.PUT("/posts/unlike/:id", posts.Unlike)
	protected.POST("/posts/comment/:id", posts.Comment)
	protected.DELETE("/posts/comments/:postId/:commentId", posts.DeleteComment)

	protected.GET("/profile/me", profiles.Me)
	protected.POST("/profile", profiles.Upsert)
	protected.DELETE("/profile", profiles.DeleteAccount)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{"error": "Endpoint not found", "path": c.Request.URL.Path})
			return
		}
		c.Next()
	})

	return router
}
