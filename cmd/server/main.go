package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pawnengine/core/internal/config"
	"github.com/pawnengine/core/internal/handlers"
	"github.com/pawnengine/core/internal/lifecycle"
	"github.com/pawnengine/core/internal/metrics"
	"github.com/pawnengine/core/internal/repository/postgres"
	"github.com/pawnengine/core/internal/websocket"
)

func main() {
	cfg := config.Load()

	db, err := postgres.Open(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("successfully connected to database")

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("failed to run schema migration: %v", err)
	}

	repos := postgres.Repositories(db)
	coord := lifecycle.New(repos, cfg.StandingsCacheTTL)

	hub := websocket.NewHub()
	go hub.Run()
	go bridgeStandingsUpdates(coord, hub)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	corsConfig.MaxAge = 24 * time.Hour
	router.Use(cors.New(corsConfig))
	router.Use(metricsMiddleware())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/ws", func(c *gin.Context) { handlers.ServeWs(hub, c) })

	tournamentHandler := handlers.NewTournamentHandler(repos, coord)
	tournamentHandler.RegisterRoutes(router, cfg.JWTSecret)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exited properly")
}

// metricsMiddleware records httpRequestsTotal/httpRequestDuration using
// gin's own timing hooks, since gin.Context doesn't compose with
// metrics.Middleware's plain http.Handler wrapping.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.FullPath() == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// bridgeStandingsUpdates forwards every cache-published event onto the
// websocket hub, the seam between C4 (process-internal) and the
// transport that gets it to browsers.
func bridgeStandingsUpdates(coord *lifecycle.Coordinator, hub *websocket.Hub) {
	for event := range coord.Standings().Subscribe() {
		hub.Broadcast <- event
	}
}
