package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"taskplatform/internal/audit"
	"taskplatform/internal/config"
	"taskplatform/internal/healthsrv"
	"taskplatform/internal/httpapi"
	"taskplatform/internal/jobs"
	"taskplatform/internal/metrics"
	"taskplatform/internal/store"
	"taskplatform/internal/taskruntime"
	"taskplatform/internal/webservice"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		slog.Error("failed to build logger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	conn, err := store.NewConnection(store.ConnectionConfig{
		Name:        "taskplatform",
		Environment: cfg.Environment,
		Database:    cfg.DBName,
		Host:        cfg.DBHost,
		Port:        cfg.DBPort,
		User:        cfg.DBUser,
		Secret:      cfg.DBSecret,
		SSLMode:     cfg.DBSSLMode,
	})
	if err != nil {
		logger.Fatal("failed to create db connection", zap.Error(err))
	}
	if err := conn.Start(); err != nil {
		logger.Fatal("failed to start db connection", zap.Error(err))
	}
	defer conn.Stop()

	st, err := store.New(store.Config{Conn: conn})
	if err != nil {
		logger.Fatal("failed to build store", zap.Error(err))
	}

	auditLog := audit.NewZapLogger(logger)
	registry := prometheus.NewRegistry()
	metricsCollector := metrics.New(registry, "taskplatform")
	invoker := webservice.NewHTTPInvoker(nil)

	rt := taskruntime.New(logger)
	fetchJob := jobs.New(st, auditLog, metricsCollector, invoker, rt, cfg.WorkerPoolSize)

	health := healthsrv.New()

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, health.Server)

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCHealthPort))
	if err != nil {
		logger.Fatal("failed to listen for grpc health server", zap.Error(err))
	}
	go func() {
		logger.Info("grpc health server started", zap.Int("port", cfg.GRPCHealthPort))
		if err := grpcServer.Serve(grpcListener); err != nil {
			logger.Error("grpc health server stopped serving", zap.Error(err))
		}
	}()

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "OK"})
	})
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})
	httpapi.RegisterMetrics(router, registry)

	apiV1 := router.Group("/api/v1")
	{
		httpapi.JobRouter(apiV1, fetchJob, st)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("http server started", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start http server", zap.Error(err))
			os.Exit(1)
		}
	}()

	health.MarkServing()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	health.MarkNotServing()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := rt.Shutdown(ctx); err != nil {
		logger.Warn("running managers did not finish before shutdown deadline", zap.Error(err))
	}

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("http server forced to shutdown", zap.Error(err))
	}

	grpcServer.GracefulStop()

	logger.Info("shutdown complete")
}
