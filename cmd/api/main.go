package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/audit"
	"github.com/BruksfildServices01/ora-fixa/internal/cache"
	"github.com/BruksfildServices01/ora-fixa/internal/config"
	"github.com/BruksfildServices01/ora-fixa/internal/datastore"
	dbpkg "github.com/BruksfildServices01/ora-fixa/internal/db"
	"github.com/BruksfildServices01/ora-fixa/internal/logging"
	"github.com/BruksfildServices01/ora-fixa/internal/routes"
)

func main() {

	cfg := config.Load()

	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	store := datastore.NewGormStore(db, cfg.StoreTimeout)

	// ======================================================
	// SLOT CACHE
	// ======================================================
	var slots cache.SlotCache = cache.Nop{}
	if cfg.RedisAddr != "" {
		client, err := cache.NewClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, slot cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			defer func() { _ = client.Close() }()
			slots = cache.NewRedisSlotCache(client, cfg.SlotCacheTTL)
		}
	}

	dispatcher := audit.NewDispatcher(audit.New(store), log, 256)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Store:    store,
		DB:       sqlDB,
		Cache:    slots,
		Audit:    dispatcher,
		Log:      log,
		Registry: registry,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("timezone", cfg.Timezone))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Error("audit dispatcher drain", zap.Error(err))
	}
	_ = sqlDB.Close()
	log.Info("server stopped")
}
