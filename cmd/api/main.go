package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pawpoint/grooming-scheduler/internal/cache"
	"github.com/pawpoint/grooming-scheduler/internal/config"
	dbpkg "github.com/pawpoint/grooming-scheduler/internal/db"
	"github.com/pawpoint/grooming-scheduler/internal/routes"
	"github.com/pawpoint/grooming-scheduler/internal/storage"
)

func newLogger(env string) *zap.Logger {
	if env == "production" {
		log, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return log
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return log
}

func main() {

	cfg := config.Load()

	log := newLogger(cfg.AppEnv)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)
	store := cache.New(cfg)
	media := storage.NewMediaStore(cfg, log)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, db, cfg, store, media, log)

	log.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
