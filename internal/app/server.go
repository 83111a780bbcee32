// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vibewise_backend/internal/analytics"
	"vibewise_backend/internal/auth"
	"vibewise_backend/internal/common"
	"vibewise_backend/internal/config"
	"vibewise_backend/internal/device"
	"vibewise_backend/internal/jobs"
	"vibewise_backend/internal/middleware"
	"vibewise_backend/internal/platform/elasticsearch"
	"vibewise_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Exposed so main can prepare the analytics index before serving.
	ESClient  *elasticsearch.ESClientWrapper
	AppLogger *zap.Logger

	sweepJob *jobs.LocalStoreSweepJob
	recorder analytics.Recorder
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	deviceHandler *device.Handler,
	sweepJob *jobs.LocalStoreSweepJob,
	verifier middleware.TokenVerifier,
	recorder analytics.Recorder,
	esClient *elasticsearch.ESClientWrapper,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.DeviceContext())
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	authMW := middleware.AuthMiddleware(verifier, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "VibeWise API is healthy!"})
	})

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1, authMW)
	userHandler.RegisterRoutes(v1, authMW)
	deviceHandler.RegisterRoutes(v1)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		cfg:        cfg,
		logger:     logger,
		ESClient:   esClient,
		AppLogger:  logger,
		sweepJob:   sweepJob,
		recorder:   recorder,
	}, nil
}

// corsConfig allows the configured origins. Capacitor shells send non-http origins
// (capacitor://localhost), so explicit lists are matched by a function rather than AllowOrigins.
func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization",
		middleware.RequestIDHeader,
		common.DeviceIDHeader,
		device.CapacitorPlatformHeader,
		device.DisplayModeHeader,
		device.NavigatorStandaloneHeader,
	}
	c.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader, common.DeviceIDHeader}
	c.AllowCredentials = true

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
		allowed[o] = struct{}{}
	}
	c.AllowOriginFunc = func(origin string) bool {
		_, ok := allowed[origin]
		return ok
	}
	return c
}

// Start runs the sweep job and serves HTTP until Shutdown.
func (s *Server) Start() error {
	if s.sweepJob != nil {
		if err := s.sweepJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start device store sweep job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

// Shutdown stops the HTTP server, the sweep job and flushes pending analytics events.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	err := s.httpServer.Shutdown(ctx)
	if s.sweepJob != nil {
		s.sweepJob.Stop()
	}
	if s.recorder != nil {
		s.recorder.Close()
	}
	return err
}
