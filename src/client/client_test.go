package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTrade(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/trades", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"abc","symbol":"BTC/USDT","pnl":20}}`))
	}))
	defer server.Close()

	trade, err := New(server.URL).CreateTrade(context.Background(), map[string]interface{}{
		"symbol": "BTC/USDT", "entryPrice": 100, "exitPrice": 110, "quantity": 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", trade.ID)
	assert.Equal(t, 20.0, trade.Pnl)
	assert.Equal(t, "BTC/USDT", received["symbol"])
}

func TestCreateTradeValidationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":"missing required fields: quantity"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).CreateTrade(context.Background(), map[string]interface{}{"symbol": "BTC/USDT"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestGetTradeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"trade not found"}`))
	}))
	defer server.Close()

	trade, err := New(server.URL).GetTrade(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, trade)
}

func TestListTrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"count":21,"pagination":{"page":2,"limit":10,"total":21,"pages":3},"data":[{"id":"a"},{"id":"b"}]}`))
	}))
	defer server.Close()

	trades, total, err := New(server.URL).ListTrades(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(21), total)
	require.Len(t, trades, 2)
	assert.Equal(t, "a", trades[0].ID)
}

func TestDeleteTrade(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	deleted, err := New(server.URL).DeleteTrade(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"summary":{"totalTrades":2,"profitFactor":150},"bySymbol":{}}}`))
	}))
	defer server.Close()

	stats, err := New(server.URL).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Summary.TotalTrades)
	assert.Equal(t, 150.0, stats.Summary.ProfitFactor)
}
