package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/dto"
	"tradejournal/src/live"
	"tradejournal/src/mapper"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

type tradeSearcher interface {
	Search(ctx context.Context, options repository.TradeSearchOptions) ([]model.Trade, error)
	Count(ctx context.Context, options repository.TradeSearchOptions) (int64, error)
}

type tradeFinder interface {
	FindByID(ctx context.Context, id string) (*model.Trade, error)
}

type tradeCreator interface {
	Create(ctx context.Context, trade *model.Trade) error
}

type tradeUpdater interface {
	FindByID(ctx context.Context, id string) (*model.Trade, error)
	Save(ctx context.Context, trade *model.Trade) error
}

type tradeDeleter interface {
	DeleteByID(ctx context.Context, id string) (bool, error)
}

type eventPublisher interface {
	Publish(event live.Event)
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type listResponse struct {
	Success    bool        `json:"success"`
	Count      int64       `json:"count"`
	Pagination pagination  `json:"pagination"`
	Data       []dto.Trade `json:"data"`
}

// ListTradesHandler returns a handler that lists journal entries, most
// recent entry date first. Supports pagination (page, limit) and filters
// (symbol, tradeType).
func ListTradesHandler(repo tradeSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if pageParam := r.URL.Query().Get("page"); pageParam != "" {
			parsed, err := strconv.Atoi(pageParam)
			if err != nil || parsed <= 0 {
				respondError(w, http.StatusBadRequest, "invalid page")
				return
			}
			page = parsed
		}

		limit := 20
		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			parsed, err := strconv.Atoi(limitParam)
			if err != nil || parsed <= 0 {
				respondError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = parsed
		}

		options := repository.TradeSearchOptions{
			Limit:  limit,
			Offset: (page - 1) * limit,
		}
		if symbolParam := r.URL.Query().Get("symbol"); symbolParam != "" {
			options.Symbol = &symbolParam
		}
		if typeParam := r.URL.Query().Get("tradeType"); typeParam != "" {
			options.TradeType = &typeParam
		}

		trades, err := repo.Search(r.Context(), options)
		if err != nil {
			respondStorageError(w, err, "failed to fetch trades")
			return
		}

		total, err := repo.Count(r.Context(), options)
		if err != nil {
			respondStorageError(w, err, "failed to count trades")
			return
		}

		pages := total / int64(limit)
		if total%int64(limit) != 0 {
			pages++
		}

		writeJSON(w, http.StatusOK, listResponse{
			Success: true,
			Count:   total,
			Pagination: pagination{
				Page:  page,
				Limit: limit,
				Total: total,
				Pages: pages,
			},
			Data: mapper.ToClientShapes(trades),
		})
	}
}

// GetTradeHandler returns a single translated trade or a 404.
func GetTradeHandler(repo tradeFinder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		trade, err := repo.FindByID(r.Context(), id)
		if err != nil {
			respondStorageError(w, err, "failed to fetch trade")
			return
		}
		if trade == nil {
			respondError(w, http.StatusNotFound, "trade not found")
			return
		}

		respondData(w, http.StatusOK, mapper.ToClientShape(trade))
	}
}

// CreateTradeHandler validates and stores a new journal entry and announces
// it on the live feed.
func CreateTradeHandler(repo tradeCreator, feed eventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input dto.TradeInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		trade, err := mapper.NewTradeFromInput(input)
		if err != nil {
			var validation *mapper.ValidationError
			if errors.As(err, &validation) {
				respondError(w, http.StatusBadRequest, validation.Error())
				return
			}
			respondStorageError(w, err, "failed to create trade")
			return
		}

		if err := repo.Create(r.Context(), trade); err != nil {
			respondStorageError(w, err, "failed to create trade")
			return
		}

		shaped := mapper.ToClientShape(trade)
		feed.Publish(live.Event{Type: live.EventTradeCreated, Trade: &shaped})

		writeJSON(w, http.StatusCreated, dataResponse{
			Success: true,
			Message: "trade recorded",
			Data:    shaped,
		})
	}
}

// UpdateTradeHandler merges a partial payload over the stored row,
// recomputing the derived P&L columns when any of their inputs changed.
func UpdateTradeHandler(repo tradeUpdater, feed eventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var input dto.TradeInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		trade, err := repo.FindByID(r.Context(), id)
		if err != nil {
			respondStorageError(w, err, "failed to fetch trade")
			return
		}
		if trade == nil {
			respondError(w, http.StatusNotFound, "trade not found")
			return
		}

		recomputed, err := mapper.ApplyUpdate(trade, input)
		if err != nil {
			var validation *mapper.ValidationError
			if errors.As(err, &validation) {
				respondError(w, http.StatusBadRequest, validation.Error())
				return
			}
			respondStorageError(w, err, "failed to update trade")
			return
		}

		if err := repo.Save(r.Context(), trade); err != nil {
			respondStorageError(w, err, "failed to update trade")
			return
		}

		logger.WithFields(map[string]interface{}{
			"trade_id":   trade.ID,
			"recomputed": recomputed,
		}).Debug("Trade updated")

		shaped := mapper.ToClientShape(trade)
		feed.Publish(live.Event{Type: live.EventTradeUpdated, Trade: &shaped})

		writeJSON(w, http.StatusOK, dataResponse{
			Success: true,
			Message: "trade updated",
			Data:    shaped,
		})
	}
}

// DeleteTradeHandler removes a journal entry; 204 on success, 404 when the
// id never existed.
func DeleteTradeHandler(repo tradeDeleter, feed eventPublisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		deleted, err := repo.DeleteByID(r.Context(), id)
		if err != nil {
			respondStorageError(w, err, "failed to delete trade")
			return
		}
		if !deleted {
			respondError(w, http.StatusNotFound, "trade not found")
			return
		}

		feed.Publish(live.Event{Type: live.EventTradeDeleted, ID: id})

		w.WriteHeader(http.StatusNoContent)
	}
}
