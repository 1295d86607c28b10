package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/database"
	"tradejournal/src/handler"
	"tradejournal/src/live"
	"tradejournal/src/repository"
)

// NewRouter wires every route of the journal API. Split out of StartServer
// so tests can run the full route table without a listener.
func NewRouter() chi.Router {
	repo := repository.NewTradeRepository()
	hub := live.NewHub()

	r := chi.NewRouter()

	r.Get("/", handler.RootHandler())
	r.Get("/api/health", handler.HealthHandler(database.Ping, repo))

	r.Route("/api/trades", func(r chi.Router) {
		r.Get("/", handler.ListTradesHandler(repo))
		r.Post("/", handler.CreateTradeHandler(repo, hub))
		r.Get("/{id}", handler.GetTradeHandler(repo))
		r.Put("/{id}", handler.UpdateTradeHandler(repo, hub))
		r.Delete("/{id}", handler.DeleteTradeHandler(repo, hub))
	})

	r.Get("/api/stats", handler.StatsHandler(repo))
	r.Get("/api/dashboard", handler.DashboardHandler(repo))
	r.Get("/api/live", hub.Handler())

	return r
}

// StartServer runs the API until SIGINT/SIGTERM, then shuts down gracefully.
func StartServer(port string) {
	if port == "" {
		port = GetConfig().Port
	}

	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(),
	}

	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
