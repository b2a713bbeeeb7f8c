package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/joho/godotenv"

	"github.com/the-wia/wia-backend/internal/config"
	"github.com/the-wia/wia-backend/internal/database"
	"github.com/the-wia/wia-backend/internal/graph"
	"github.com/the-wia/wia-backend/internal/handlers"
	"github.com/the-wia/wia-backend/internal/services"
	"github.com/the-wia/wia-backend/internal/store"
)

// apolloStudioOrigin is always allowed alongside the configured frontend so
// the GraphQL tooling can reach the API with credentials.
const apolloStudioOrigin = "https://studio.apollographql.com"

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURL); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Initialize Cloudinary service (optional)
	var cloudinarySvc *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		svc, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Image uploads will not be available")
		} else {
			cloudinarySvc = svc
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Image uploads will not be available")
	}

	st := store.New(database.PostgresDB)
	sessions := services.NewSessions(services.NewRedisCache(), cfg.SessionSecret)
	mailer := services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	resolver := graph.NewResolver(st, st, st, sessions, mailer, cfg.CorsOrigin)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatal("Failed to build GraphQL schema:", err)
	}

	gql := gqlhandler.New(&gqlhandler.Config{
		Schema:     &schema,
		Pretty:     !cfg.IsProduction(),
		Playground: !cfg.IsProduction(),
	})

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CorsOrigin, apolloStudioOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Handle("/graphql", graph.SessionMiddleware(sessions)(gql))
	r.Post("/api/upload", handlers.NewUploadHandler(cloudinarySvc).ServeHTTP)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  ANY  /graphql")
	log.Println("  POST /api/upload")

	log.Printf("🚀 WIA backend running on :%s in %s", cfg.Port, cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
