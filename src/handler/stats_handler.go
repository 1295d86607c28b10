package handler

import (
	"context"
	"net/http"

	"tradejournal/src/mapper"
	"tradejournal/src/model"
	"tradejournal/src/stats"
)

type tradeLister interface {
	FindAll(ctx context.Context) ([]model.Trade, error)
	FindLatest(ctx context.Context, limit int) ([]model.Trade, error)
}

// StatsHandler computes the journal-wide statistics over the full trade set.
func StatsHandler(repo tradeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trades, err := repo.FindAll(r.Context())
		if err != nil {
			respondStorageError(w, err, "failed to fetch statistics")
			return
		}

		respondData(w, http.StatusOK, stats.Summarize(mapper.ToClientShapes(trades)))
	}
}

// DashboardHandler returns the five most recent trades, the overview totals
// and the top symbols by summed P&L.
func DashboardHandler(repo tradeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recent, err := repo.FindLatest(r.Context(), 5)
		if err != nil {
			respondStorageError(w, err, "failed to fetch dashboard")
			return
		}

		all, err := repo.FindAll(r.Context())
		if err != nil {
			respondStorageError(w, err, "failed to fetch dashboard")
			return
		}

		dashboard := stats.BuildDashboard(
			mapper.ToClientShapes(recent),
			mapper.ToClientShapes(all),
		)

		respondData(w, http.StatusOK, dashboard)
	}
}
