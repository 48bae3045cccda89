package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snakearena/server"
)

// SnakeArena 入口：启动 HTTP + WebSocket 服务，每个房间一局权威的贪吃蛇
func main() {
	cfg := server.DefaultConfig()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "server listen address, e.g. :8080")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path (rotated)")
	flag.IntVar(&cfg.GridSize, "grid", cfg.GridSize, "grid size (cells per side)")
	flag.IntVar(&cfg.TickMs, "tick", cfg.TickMs, "tick interval in milliseconds")
	flag.IntVar(&cfg.ScoreStep, "score", cfg.ScoreStep, "points per food eaten")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "food RNG seed, 0 means time based")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// 使用第三方 zap 日志库写入日志文件（带滚动）
	log := server.NewLogger(cfg.LogFile)
	defer server.SyncLogger(log)

	rooms := server.NewRoomManager(cfg.GameConfig(), cfg.Seed, log)
	// 先预创建一个默认房间，便于快速试跑
	_ = rooms.GetOrCreateRoom("room-1")

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewRouter(server.NewHandler(rooms, log)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("SnakeArena listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("shutdown: %v", err)
	}
	rooms.Close()
}
