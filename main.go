package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/cache"
	"github.com/yatube/api-go/config"
	"github.com/yatube/api-go/events"
	"github.com/yatube/api-go/jobs"
	"github.com/yatube/api-go/routes"
	"github.com/yatube/api-go/tracing"
)

const serviceName = "yatube-api"

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Initialize database
	db := config.InitDB()

	deps := routes.Dependencies{DB: db, Config: cfg}

	if cfg.MemcacheURL != "" {
		deps.Cache = cache.NewMemcached(cfg.MemcacheURL)
		log.Printf("Caching groups in memcached at %s", cfg.MemcacheURL)
	}

	if cfg.NatsURL != "" {
		publisher, err := events.NewNatsPublisher(cfg.NatsURL)
		if err != nil {
			log.Printf("Events disabled: %v", err)
		} else {
			deps.Events = publisher
			defer func() {
				if err := publisher.Close(); err != nil {
					log.Printf("NATS drain: %v", err)
				}
			}()
		}
	}

	scheduler, err := jobs.Start(db)
	if err != nil {
		log.Fatal("Failed to schedule jobs:", err)
	}

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, deps)

	var handler http.Handler = r
	if cfg.ZipkinAddress != "" {
		middleware, closeReporter, err := tracing.NewServerMiddleware(cfg.ZipkinAddress, serviceName, "0.0.0.0:"+cfg.Port)
		if err != nil {
			log.Printf("Tracing disabled: %v", err)
		} else {
			handler = middleware(r)
			defer closeReporter()
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	<-scheduler.Stop().Done()
}
