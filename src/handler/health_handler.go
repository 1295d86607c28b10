package handler

import (
	"context"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/repository"
)

type tradeCounter interface {
	Count(ctx context.Context, options repository.TradeSearchOptions) (int64, error)
}

type healthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Timestamp   string `json:"timestamp"`
	Database    string `json:"database"`
	TradesCount int64  `json:"tradesCount"`
}

// HealthHandler reports service and database reachability plus the current
// trade count.
func HealthHandler(ping func(ctx context.Context) error, repo tradeCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			logger.WithError(err).Error("health check failed")
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"status": "unhealthy",
				"error":  "database error",
			})
			return
		}

		count, err := repo.Count(r.Context(), repository.TradeSearchOptions{})
		if err != nil {
			logger.WithError(err).Error("health check failed")
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
				"status": "unhealthy",
				"error":  "database error",
			})
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:      "healthy",
			Service:     "Trading Journal API",
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Database:    "connected",
			TradesCount: count,
		})
	}
}

// RootHandler describes the API.
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":   "Trading Journal API",
			"version":   "2.0.0",
			"status":    "online",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
