package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fireside-games/fireside-backend/internal/config"
	"github.com/fireside-games/fireside-backend/internal/httpapi"
	"github.com/fireside-games/fireside-backend/internal/hub"
	"github.com/fireside-games/fireside-backend/internal/logger"
	"github.com/fireside-games/fireside-backend/internal/narrator"
	"github.com/fireside-games/fireside-backend/internal/table"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	engine := narrator.NewOpenAIEngine(narrator.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	}, zlog)

	ctx := context.Background()
	h := hub.NewHub(ctx, hub.Options{
		MaxActiveSessions: cfg.MaxActiveSessions,
		Engine:            engine,
		Hooks:             table.ZapHooks{Log: zlog},
		TableConfig:       &table.Config{VoteTimeout: cfg.VoteTimeout},
		Log:               zlog,
	})

	handler := httpapi.SetupRoutes(h, zlog)

	zlog.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
