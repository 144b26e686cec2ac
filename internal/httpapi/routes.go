package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fireside-games/fireside-backend/internal/hub"
	"github.com/fireside-games/fireside-backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Post("/sessions", CreateSession(h))
	r.Patch("/config", UpdateRuntimeConfig(h))
	r.Get("/healthz", Healthz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/ws", ws.Handler(h, log))
	return r
}
