package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/OpenRelief/relief/internal/auth"
	"github.com/OpenRelief/relief/internal/catalog"
	"github.com/OpenRelief/relief/internal/config"
	"github.com/OpenRelief/relief/internal/database"
	"github.com/OpenRelief/relief/internal/documents"
	"github.com/OpenRelief/relief/internal/middleware"
	"github.com/OpenRelief/relief/internal/mission"
	"github.com/OpenRelief/relief/internal/routing"
	"github.com/OpenRelief/relief/internal/routing/ors"
)

const RouteLogQueueSize = 100

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.Info("configuration loaded successfully",
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Name,
		"db_sslmode", cfg.Database.SSLMode,
	)

	slog.Info("server configuration",
		"port", cfg.Server.Port,
		"routing_profile", cfg.Routing.Profile,
		"storage_type", cfg.Storage.Type,
	)

	// Initialize database connection
	db, err := database.Connect(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if err := database.SeedCatalog(db, cfg.Database.CatalogSeedPath); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}

	ctx := context.Background()

	// Catalog repository and the public-id index used on every creation
	catalogRepo := catalog.NewRepository(db)
	resolver, err := catalog.BuildResolver(ctx, catalogRepo)
	if err != nil {
		log.Fatalf("failed to build catalog resolver: %v", err)
	}
	catalogRouter := catalog.NewRouter(catalogRepo, resolver)

	// Authentication
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenExpiryHours)*time.Hour)
	authService := auth.NewAuthService(auth.NewUserRepository(db), issuer)
	authRouter := auth.NewRouter(authService)

	if err := authService.EnsureAdmin(ctx, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPassword); err != nil {
		log.Fatalf("failed to bootstrap admin account: %v", err)
	}

	// Mission provisioning
	missionRepo := mission.NewRepository(db)
	missionRouter := mission.NewRouter(missionRepo, resolver)

	// Route planning against OpenRouteService
	orsClient, err := ors.NewClient(cfg.Routing.ORSAPIKey, cfg.Routing.BaseURL, cfg.Routing.Profile, cfg.Routing.Country)
	if err != nil {
		log.Fatalf("failed to create directions client: %v", err)
	}

	routeLogs := routing.NewLogRepository(db)
	forwarder := routing.NewForwarder(routeLogs, RouteLogQueueSize)
	slog.Info("starting route log listener...")
	forwarder.StartRouteLogListener()

	planner := routing.NewPlanner(orsClient, forwarder)
	sessions := routing.NewSessionStore()
	routingRouter := routing.NewRouter(planner, sessions, routeLogs, orsClient, orsClient)

	// Mission document storage
	storageDriver, err := documents.NewStorageFromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize document storage: %v", err)
	}
	documentService := documents.NewService(storageDriver, db)
	documentHandler := documents.NewHTTPHandler(documentService)

	// Set up HTTP routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(db); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /api/auth/login", authRouter.HandleLogin)

	adminOnly := auth.RequireRole(issuer, auth.RoleAdmin)
	mux.HandleFunc("GET /vendors/", catalogRouter.HandleListVendors)
	mux.HandleFunc("GET /products/", catalogRouter.HandleListProducts)
	mux.Handle("POST /vendors/", adminOnly(http.HandlerFunc(catalogRouter.HandleCreateVendor)))
	mux.Handle("POST /products/", adminOnly(http.HandlerFunc(catalogRouter.HandleCreateProduct)))

	mux.HandleFunc("POST /api/missions/", missionRouter.HandleCreateMission)
	mux.HandleFunc("GET /api/missions/{missionID}", missionRouter.HandleGetMission)
	mux.HandleFunc("POST /vendor-missions/", missionRouter.HandleAssignVendor)
	mux.HandleFunc("POST /cargo/", missionRouter.HandleCreateCargo)
	mux.HandleFunc("POST /cargo-items/", missionRouter.HandleCreateCargoItem)
	mux.HandleFunc("POST /api/provision/missions", missionRouter.HandleProvisionMission)
	mux.HandleFunc("POST /api/provision/missions/{missionID}/cargo", missionRouter.HandleProvisionCargo)

	mux.HandleFunc("POST /routes", routingRouter.HandleCreateRouteLog)
	mux.HandleFunc("GET /routes", routingRouter.HandleListRouteLogs)
	mux.HandleFunc("POST /api/route-sessions", routingRouter.HandleCreateSession)
	mux.HandleFunc("POST /api/route-sessions/{sessionID}/waypoints", routingRouter.HandleAddWaypoint)
	mux.HandleFunc("GET /api/route-sessions/{sessionID}/waypoints/{waypointID}/suggestions", routingRouter.HandleSuggestWaypoint)
	mux.HandleFunc("PUT /api/route-sessions/{sessionID}/waypoints/{waypointID}", routingRouter.HandleResolveWaypoint)
	mux.HandleFunc("DELETE /api/route-sessions/{sessionID}/waypoints/{waypointID}", routingRouter.HandleRemoveWaypoint)
	mux.HandleFunc("POST /api/route-sessions/{sessionID}/plan", routingRouter.HandlePlanRoute)
	mux.HandleFunc("POST /api/position", routingRouter.HandleLocate)

	mux.HandleFunc("POST /api/missions/{missionID}/documents", documentHandler.Upload)
	mux.HandleFunc("GET /api/missions/{missionID}/documents", documentHandler.List)
	mux.HandleFunc("GET /api/documents/{documentID}/content", documentHandler.Download)
	mux.HandleFunc("DELETE /api/documents/{documentID}", documentHandler.Delete)

	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)

	// Wrap handler with auth context, logging, and CORS middleware
	handler := auth.Middleware(issuer)(mux)
	handler = middleware.Logging(handler)
	handler = middleware.CORS(&cfg.CORS)(handler)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: handler,
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		slog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	slog.Info("shutting down server...")

	// Create a context with timeout for graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}

	slog.Info("stopping route log listener...")
	forwarder.StopRouteLogListener()

	slog.Info("server stopped")
}
