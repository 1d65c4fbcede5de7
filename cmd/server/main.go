package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"mfin-backend/internal/auth"
	"mfin-backend/internal/cache"
	"mfin-backend/internal/config"
	"mfin-backend/internal/handlers"
	"mfin-backend/internal/health"
	"mfin-backend/internal/httpapi"
	"mfin-backend/internal/middleware"
	"mfin-backend/internal/monitoring"
	"mfin-backend/internal/repositories"
	"mfin-backend/internal/services"
	"mfin-backend/internal/store"
)

// connectStore picks the collection store: Redis when reachable, the file
// store otherwise.
func connectStore(cfg *config.Config) store.CollectionStore {
	redisStore, err := store.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		log.Printf("[Store] Redis unavailable at %s: %v", cfg.Redis.Addr, err)
		log.Printf("[Store] Falling back to file store in %s", cfg.Data.Dir)
		fileStore, err := store.NewFileStore(cfg.Data.Dir)
		if err != nil {
			log.Fatalf("Failed to open file store: %v", err)
		}
		return fileStore
	}

	log.Printf("[Store] Connected to Redis at %s", cfg.Redis.Addr)
	cache.Init(redisStore.Client())
	return redisStore
}

func main() {
	mode := flag.String("mode", "staff", "Server mode: staff or portal")
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()

	if *port != 0 {
		cfg.Server.Port = *port
	} else if *mode == "portal" {
		cfg.Server.Port = cfg.Server.PortalPort
	}

	collectionStore := connectStore(cfg)
	if closer, ok := collectionStore.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	healthChecker := health.NewHealthChecker(collectionStore)

	// Start the ops server in the background
	go monitoring.NewMonitoringServer(collectionStore, cfg.Server.MonitoringPort).Start()

	// Repositories
	loanRepo := repositories.NewLoanRepository(collectionStore)
	customerRepo := repositories.NewCustomerRepository(collectionStore)
	userRepo := repositories.NewUserRepository(collectionStore)
	collectionRepo := repositories.NewCollectionEventRepository(collectionStore)
	activityRepo := repositories.NewActivityRepository(collectionStore)
	financialRepo := repositories.NewFinancialRepository(collectionStore)

	// Services
	loanService := services.NewLoanService(loanRepo, collectionRepo)
	customerService := services.NewCustomerService(customerRepo)
	userService := services.NewUserService(userRepo)

	corsMiddleware := middleware.NewCORS(cfg)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Collection snapshot backups
	backupService := services.NewBackupService(cfg.Backup, collectionStore)
	backupService.Start()
	defer backupService.Stop()

	var handler http.Handler

	if *mode == "portal" {
		log.Println("Starting in CUSTOMER PORTAL mode")

		jwtManager := auth.NewJWTManager(cfg)
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET is required in portal mode")
		}

		portalService := services.NewPortalService(customerRepo, loanService)
		portalHandler := handlers.NewPortalHandler(portalService, jwtManager)
		customerAuth := middleware.NewCustomerAuthMiddleware(jwtManager)

		router := httpapi.NewPortalRouter(portalHandler, healthHandler, customerAuth)
		handler = middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	} else {
		log.Println("Starting in STAFF mode")

		loanHandler := handlers.NewLoanHandler(loanService)
		customerHandler := handlers.NewCustomerHandler(customerService)
		userHandler := handlers.NewUserHandler(userService)
		sessionHandler := handlers.NewSessionHandler(userService)
		financialHandler := handlers.NewFinancialHandler(financialRepo)
		activityHandler := handlers.NewActivityHandler(activityRepo)
		collectionHandler := handlers.NewCollectionHandler(collectionRepo)
		sessionMiddleware := middleware.NewSessionMiddleware(userService)

		router := httpapi.NewStaffRouter(
			loanHandler,
			customerHandler,
			userHandler,
			sessionHandler,
			financialHandler,
			activityHandler,
			collectionHandler,
			healthHandler,
			sessionMiddleware,
		)
		handler = middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
