package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/config"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/internal/proxy"
	"github.com/tcsoat10/hackathon-soat10-phase5-frontend/pkg/logger"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize Components
	appLogger := logger.NewLogger(cfg.Proxy.Mode)
	if cfg.Proxy.BackendURL == "" {
		// Startup continues; each forwarded request reports the missing
		// address with a 500 until the environment is fixed.
		appLogger.Warn("BACKEND_URL is not configured; forwarding will fail")
	}

	// 3. Setup Router
	r := proxy.SetupRouter(cfg, appLogger)

	// 4. Run Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Proxy.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Starting proxy on port %s", cfg.Proxy.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down proxy...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Proxy exiting")
}
