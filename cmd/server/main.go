package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mockmate/internal/answers"
	"mockmate/internal/api"
	"mockmate/internal/config"
	"mockmate/internal/guest"
	"mockmate/internal/middleware"
	"mockmate/internal/transcript"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	interviewCfg, err := config.LoadInterview(cfg.InterviewCfg)
	if err != nil {
		log.Fatalf("Failed to load interview configuration: %v", err)
	}

	config.InitLogger()

	// Set Gin mode (default to release mode)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Answer repository: document store when configured, in-memory
	// fallback otherwise
	var repo answers.Repository
	if cfg.HasDocumentStore() {
		repo, err = answers.NewPostgrestRepository(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Printf("Warning: Failed to initialize document store: %v. Falling back to in-memory answers.", err)
			repo = answers.NewMemoryRepository()
		}
	} else {
		log.Println("SUPABASE_URL not set, persisting answers in memory only")
		repo = answers.NewMemoryRepository()
	}
	api.InitAnswerRepository(repo)

	// Recognition source
	source, err := transcript.NewSource()
	if err != nil {
		log.Fatalf("Failed to configure recognition source: %v", err)
	}

	api.InitEngine(interviewCfg, source, guest.NewMemoryStore(cfg.GuestTTL))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// Add CORS middleware for the browser client
	r.Use(corsMiddleware())

	// Register routes
	api.RegisterRoutes(r)

	log.Printf("mockmate backend running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// corsMiddleware adds CORS headers for the browser client
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-User-ID, X-Guest-Token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
