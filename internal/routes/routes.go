package routes

import (
	"log"
	"os"
	"strings"
	"time"

	"back_yamdb/internal/handlers"
	"back_yamdb/internal/middleware"
	"back_yamdb/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	categoryHandler *handlers.CategoryHandler,
	genreHandler *handlers.GenreHandler,
	titleHandler *handlers.TitleHandler,
	reviewHandler *handlers.ReviewHandler,
	commentHandler *handlers.CommentHandler,
	userRepo repository.UserRepository,
) *gin.Engine {

	router := gin.New()

	// =========================
	// GLOBAL MIDDLEWARE
	// =========================
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// =========================
	// CORS CONFIG (DEV / PROD)
	// =========================
	env := os.Getenv("ENV") // development | production
	frontendURL := os.Getenv("CORS_ORIGIN")

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if env == "production" {
		if frontendURL == "" {
			log.Fatal("❌ CORS_ORIGIN environment variable is NOT set in production!")
		}
		corsConfig.AllowOrigins = []string{frontendURL}
	} else {
		allowedOrigins := []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}
		if frontendURL != "" {
			allowedOrigins = append(allowedOrigins, frontendURL)
		}

		corsConfig.AllowOriginFunc = func(origin string) bool {
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			// Allow local network IPs (192.168.x.x, 10.x.x.x)
			if strings.HasPrefix(origin, "http://192.168.") || strings.HasPrefix(origin, "http://10.") {
				return true
			}
			return false
		}
	}

	router.Use(cors.New(corsConfig))

	// =========================
	// SECURITY HEADERS MIDDLEWARE
	// =========================
	router.Use(func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// =========================
	// API ROUTES
	// =========================
	api := router.Group("/api/v1")
	{
		// ---------- AUTH ----------
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/token", authHandler.Token)
		}

		// ---------- USERS ----------
		users := api.Group("/users")
		users.Use(middleware.JWTMiddleware())
		{
			users.GET("/me", userHandler.Me)
			users.PATCH("/me", userHandler.UpdateMe)

			admin := users.Group("")
			admin.Use(middleware.AdminMiddleware(userRepo))
			{
				admin.GET("", userHandler.ListUsers)
				admin.POST("", userHandler.CreateUser)
				admin.GET("/:username", userHandler.GetUser)
				admin.PATCH("/:username", userHandler.UpdateUser)
				admin.DELETE("/:username", userHandler.DeleteUser)
			}
		}

		// ---------- CATALOG (public read, admin write) ----------
		catalogGate := []gin.HandlerFunc{
			middleware.OptionalJWTMiddleware(),
			middleware.AdminOrReadOnlyMiddleware(userRepo),
		}

		categories := api.Group("/categories")
		categories.Use(catalogGate...)
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.DELETE("/:slug", categoryHandler.DeleteCategory)
		}

		genres := api.Group("/genres")
		genres.Use(catalogGate...)
		{
			genres.GET("", genreHandler.ListGenres)
			genres.POST("", genreHandler.CreateGenre)
			genres.DELETE("/:slug", genreHandler.DeleteGenre)
		}

		titles := api.Group("/titles")
		titles.Use(catalogGate...)
		{
			titles.GET("", titleHandler.ListTitles)
			titles.GET("/:title_id", titleHandler.GetTitle)
			titles.POST("", titleHandler.CreateTitle)
			titles.PATCH("/:title_id", titleHandler.UpdateTitle)
			titles.DELETE("/:title_id", titleHandler.DeleteTitle)
		}

		// ---------- REVIEWS ----------
		reviews := api.Group("/titles/:title_id/reviews")
		{
			reviews.GET("", reviewHandler.ListReviews)
			reviews.GET("/:review_id", reviewHandler.GetReview)

			reviewsAuth := reviews.Group("")
			reviewsAuth.Use(middleware.JWTMiddleware())
			{
				reviewsAuth.POST("", reviewHandler.CreateReview)
				reviewsAuth.PATCH("/:review_id", reviewHandler.UpdateReview)
				reviewsAuth.DELETE("/:review_id", reviewHandler.DeleteReview)
			}
		}

		// ---------- COMMENTS ----------
		comments := api.Group("/titles/:title_id/reviews/:review_id/comments")
		{
			comments.GET("", commentHandler.ListComments)
			comments.GET("/:comment_id", commentHandler.GetComment)

			commentsAuth := comments.Group("")
			commentsAuth.Use(middleware.JWTMiddleware())
			{
				commentsAuth.POST("", commentHandler.CreateComment)
				commentsAuth.PATCH("/:comment_id", commentHandler.UpdateComment)
				commentsAuth.DELETE("/:comment_id", commentHandler.DeleteComment)
			}
		}
	}

	// =========================
	// HEALTH & ROOT
	// =========================
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "Server is running",
		})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "success",
			"message": "YaMDb API",
			"version": "1.0.0",
		})
	})

	return router
}
