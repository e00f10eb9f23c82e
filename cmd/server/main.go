package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/UK-Mindset/mind-set/internal"
	"github.com/UK-Mindset/mind-set/internal/api"
	"github.com/UK-Mindset/mind-set/internal/auth"
	"github.com/UK-Mindset/mind-set/internal/config"
	"github.com/UK-Mindset/mind-set/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(store, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthURL, logger)
	}

	app := api.NewApp(logger, store)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.Middleware(provider, cfg))

	r.POST("/moods", api.PostMood(app))
	r.GET("/moods", api.GetMoods(app))
	r.GET("/moods/:moodId", api.GetMood(app))
	r.PUT("/moods/:moodId", api.PutMood(app))
	r.DELETE("/moods/:moodId", api.DeleteMood(app))

	logger.Infof("Server running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}

func newStore(cfg *config.Config, logger internal.Logger) (storage.Store, error) {
	if cfg.DBType == "postgres" {
		return storage.NewPostgresStore(cfg.DBDSN, logger)
	}

	dataDir := "data"
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		_ = os.Mkdir(dataDir, 0755)
	}
	// Seed a demo user on first run so the local token flow works out of the box.
	if _, err := os.Stat(cfg.FileUsers); os.IsNotExist(err) {
		seed := `[{"id":1,"token":"` + cfg.LocalToken + `","name":"Demo User"}]`
		_ = os.WriteFile(cfg.FileUsers, []byte(seed), 0644)
	}
	return storage.NewFileStore(cfg.FileUsers, cfg.FileMoods, logger)
}
