package main

import (
	"log"
	"os"

	"github.com/brandonsaldan/ninerwatch-sub000/internal/db"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/middleware"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/router"
	"github.com/brandonsaldan/ninerwatch-sub000/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Warm the headline cache so the first page load does not eat the fetch.
	news := services.GetNewsService()
	go news.Headlines()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions (anonymous per-browser vote state)
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("ninerwatch_session", store))

	// Middleware
	r.Use(middleware.Cors())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
