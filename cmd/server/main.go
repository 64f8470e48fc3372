package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopsync/internal/api"
	"shopsync/internal/app/service"
	"shopsync/internal/common/security"
	"shopsync/internal/domain/repository"
	"shopsync/internal/platform/config"
	"shopsync/internal/platform/database"
	redisclient "shopsync/internal/platform/redis"
	"shopsync/internal/platform/woocommerce"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	redisclient.Connect()
	defer redisclient.Close()
	fmt.Println("Redis connected.")

	// 5. Initialize the storefront client
	catalog, err := woocommerce.NewClient(woocommerce.Config{
		BaseURL:        config.AppConfig.WooBaseURL,
		ConsumerKey:    config.AppConfig.WooConsumerKey,
		ConsumerSecret: config.AppConfig.WooConsumerSecret,
		Timeout:        config.AppConfig.WooTimeout,
	})
	if err != nil {
		log.Fatalf("Could not configure WooCommerce client: %v", err)
	}

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	productRepo := repository.NewPgProductRepository(database.DB)

	// 7. Initialize Services
	loginThrottle := service.NewRedisLoginThrottle(
		redisclient.RDB,
		config.AppConfig.LoginMaxAttempts,
		config.AppConfig.LoginAttemptWindow,
	)
	authService := service.NewAuthService(userRepo, loginThrottle)
	productService := service.NewProductService(productRepo, catalog)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, productService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
