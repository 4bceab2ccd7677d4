package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"ramudu/internal/broadcast"
	"ramudu/internal/config"
	"ramudu/internal/db"
	"ramudu/internal/events"
	"ramudu/internal/game"
	"ramudu/internal/logger"
	"ramudu/internal/metrics"
	"ramudu/internal/rooms"
	"ramudu/internal/wshub"
)

func Run() error {
	appCfg := config.Load()
	logger.Init(appCfg.LogLevel)
	defer logger.Sync()

	srv := NewServer(appCfg)
	srv.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional database connection
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(appCfg.DatabaseURL)
		if err != nil {
			logger.Log.Warnw("[DB] Failed to connect, running without database", "error", err)
		} else {
			if err := database.Migrate(); err != nil {
				logger.Log.Errorw("[DB] Migration failed", "error", err)
			}
			defer database.Close()
			srv.DB = database
			srv.Game.Bus = events.NewBus()
			go recordFinishedGames(ctx, database, srv.Game.Bus.GamesFinished)
			logger.Log.Info("[DB] Database connected and migrations applied")
		}
	} else {
		logger.Log.Info("[DB] DATABASE_URL not set, running without database")
	}

	if appCfg.RoomIdleTTL > 0 {
		go srv.Game.Rooms.RunSweeper(ctx, appCfg.RoomIdleTTL, appCfg.SweepInterval, srv.Game.Evict)
	}

	httpSrv := &http.Server{
		Addr:              "0.0.0.0:" + appCfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infow("Server listening", "url", "http://localhost:"+appCfg.Port)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// NewServer wires the room store, transport and game service. The database
// is attached separately because it is optional.
func NewServer(cfg config.Config) *Server {
	registry := prometheus.NewRegistry()
	m := metrics.New("ramudu", registry)

	hub := wshub.NewHub()
	hub.Metrics = m
	b := broadcast.NewBroadcaster(hub)

	svc := game.NewService(rooms.NewStore(), b)
	svc.Metrics = m

	return &Server{
		Game:        svc,
		Hub:         hub,
		Broadcaster: b,
		Metrics:     m,
		Registry:    registry,
		Origins:     cfg.AllowedOrigins,
		RateLimit:   rate.Limit(cfg.RateLimit),
		RateBurst:   cfg.RateBurst,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /games/recent", s.handleRecentGames)
	mux.HandleFunc("GET /games/{id}", s.handleGame)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))
	return mux
}
