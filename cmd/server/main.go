package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"signoff/internal/config"
	"signoff/internal/handlers"
	"signoff/internal/logs"
	"signoff/internal/middleware"
	"signoff/internal/notifier"
	"signoff/internal/routes"
	"signoff/internal/services"
	"signoff/internal/storage"
	"signoff/pkg/db/postgres"
	"signoff/pkg/db/redis"
)

func main() {
	logs.SetupLogging()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.LoadConfig()

	if err := postgres.InitDB(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis.InitRedis(ctx)
	notifier.Start(ctx, postgres.GetDB())

	store := storage.New(config.StoreURL, config.StoreBaseURL)
	engine := services.NewEngine(postgres.GetDB(), config.RoleSequence, store, notifier.RedisScheduler{}, config.ReminderAfter)

	router := mux.NewRouter()
	routes.RegisterRoutes(router, handlers.NewApprovalHandler(engine), handlers.NewAuthHandler(postgres.GetDB()))

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.CorsMiddleware)

	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("signoff backend running on http://localhost:%s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
