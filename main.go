package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"back_yamdb/internal/config"
	"back_yamdb/internal/database"
	"back_yamdb/internal/handlers"
	"back_yamdb/internal/repository"
	"back_yamdb/internal/routes"
	"back_yamdb/internal/services"
)

func main() {

	// =========================
	// LOAD CONFIG
	// =========================
	if err := config.LoadConfig(); err != nil {
		log.Println("⚠️ Config load warning:", err)
		log.Println("⚠️ Using environment variables only")
	}

	// =========================
	// CONNECT DATABASE
	// =========================
	if err := database.ConnectDB(); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	database.RunMigrations()

	// =========================
	// INIT REPOSITORIES
	// =========================
	userRepo := repository.NewUserRepository(database.DB)
	categoryRepo := repository.NewCategoryRepository(database.DB)
	genreRepo := repository.NewGenreRepository(database.DB)
	titleRepo := repository.NewTitleRepository(database.DB)
	reviewRepo := repository.NewReviewRepository(database.DB)
	commentRepo := repository.NewCommentRepository(database.DB)

	// =========================
	// INIT SERVICES
	// =========================
	emailService := services.NewEmailService()

	// =========================
	// INIT HANDLERS
	// =========================
	authHandler := handlers.NewAuthHandler(userRepo, emailService)
	userHandler := handlers.NewUserHandler(userRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	genreHandler := handlers.NewGenreHandler(genreRepo)
	titleHandler := handlers.NewTitleHandler(titleRepo, categoryRepo, genreRepo)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, titleRepo, userRepo)
	commentHandler := handlers.NewCommentHandler(commentRepo, reviewRepo, titleRepo, userRepo)

	// =========================
	// ROUTES
	// =========================
	router := routes.SetupRoutes(
		authHandler,
		userHandler,
		categoryHandler,
		genreHandler,
		titleHandler,
		reviewHandler,
		commentHandler,
		userRepo,
	)

	// =========================
	// PORT
	// =========================
	port := os.Getenv("PORT")
	if port == "" {
		port = config.GlobalConfig.ServerPort
	}
	if port == "" {
		port = "8080"
	}

	bindAddr := "0.0.0.0:" + port

	// =========================
	// SERVER CONFIG
	// =========================
	server := &http.Server{
		Addr:         bindAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// =========================
	// START SERVER
	// =========================
	go func() {
		log.Println("📀 =======================================")
		log.Println("📀   YAMDB API SERVER")
		log.Println("📀 =======================================")
		log.Printf("📀   Running on: %s", bindAddr)
		log.Println("🚀 Server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("❌ Server error:", err)
		}
	}()

	// =========================
	// GRACEFUL SHUTDOWN
	// =========================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("❌ Forced shutdown:", err)
	}

	log.Println("✅ Server exited properly")
}
