package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter 注册全部 HTTP 路由
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ws", h.HandleWS)
	r.Route("/rooms/{room}", func(r chi.Router) {
		r.Get("/state", h.HandleState)
		r.Post("/start", h.handleCommand(CmdStart))
		r.Post("/pause", h.handleCommand(CmdPause))
		r.Post("/resume", h.handleCommand(CmdResume))
		r.Post("/direction/{dir}", h.HandleDirection)
	})

	// 管理与监控接口
	r.Get("/admin/config", h.HandleAdminConfig)
	r.Post("/admin/config", h.HandleAdminConfig)
	r.Get("/metrics", h.HandleMetrics)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}
