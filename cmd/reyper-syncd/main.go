// reyper-syncd serves the sync engine over HTTP so the website and
// scheduled jobs can trigger runs and read run reports.
package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/config"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/database"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/notion"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/server"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/storage"
	"github.com/ReyperAutomatizacion02/Reyper-XYZ-sub000/internal/syncer"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	store, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("database error", zap.Error(err))
	}

	source := notion.NewClient(cfg.Notion.Token, logger)
	mirror := storage.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Bucket, logger)

	s := syncer.New(source, store, mirror, syncer.Databases{
		Projects: notion.EntityConfig{DatabaseID: cfg.Notion.ProjectsDB, WatermarkProp: notion.ProjectsWatermark},
		Orders:   notion.EntityConfig{DatabaseID: cfg.Notion.OrdersDB, WatermarkProp: notion.OrdersWatermark},
		Planning: notion.EntityConfig{DatabaseID: cfg.Notion.PlanningDB, WatermarkProp: notion.PlanningWatermark},
	}, cfg.Sync.PageSize, cfg.Sync.Days, logger)

	srv := server.NewServer(&server.Server{
		Addr:    cfg.HTTP.Addr,
		Syncer:  s,
		Store:   store,
		JWKSURL: server.SupabaseJWKSURL(cfg.Supabase.URL),
		Logger:  logger,
	})

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
