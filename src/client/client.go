package client

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tradejournal/src/dto"
)

// Client is a typed HTTP client for the journal API, used by the bulk
// importer and handy for scripting against a running instance.
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(15 * time.Second).
			SetHeader("Accept", "application/json").
			SetHeader("Content-Type", "application/json"),
	}
}

type tradeEnvelope struct {
	Success bool      `json:"success"`
	Error   string    `json:"error"`
	Data    dto.Trade `json:"data"`
}

type statsEnvelope struct {
	Success bool      `json:"success"`
	Error   string    `json:"error"`
	Data    dto.Stats `json:"data"`
}

type listEnvelope struct {
	Success    bool        `json:"success"`
	Error      string      `json:"error"`
	Count      int64       `json:"count"`
	Data       []dto.Trade `json:"data"`
	Pagination struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int64 `json:"pages"`
	} `json:"pagination"`
}

// CreateTrade posts one trade payload. The payload may be any JSON-marshalable
// shape; the service validates it.
func (c *Client) CreateTrade(ctx context.Context, payload interface{}) (*dto.Trade, error) {
	var envelope tradeEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&envelope).
		SetError(&envelope).
		Post("/api/trades")
	if err != nil {
		return nil, fmt.Errorf("create trade: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create trade: %s (status %d)", envelope.Error, resp.StatusCode())
	}

	return &envelope.Data, nil
}

// GetTrade fetches one trade by id. Returns (nil, nil) when the id is unknown.
func (c *Client) GetTrade(ctx context.Context, id string) (*dto.Trade, error) {
	var envelope tradeEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&envelope).
		SetError(&envelope).
		SetPathParam("id", id).
		Get("/api/trades/{id}")
	if err != nil {
		return nil, fmt.Errorf("get trade: %w", err)
	}
	if resp.StatusCode() == 404 {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get trade: %s (status %d)", envelope.Error, resp.StatusCode())
	}

	return &envelope.Data, nil
}

// ListTrades fetches one page of the journal.
func (c *Client) ListTrades(ctx context.Context, page, limit int) ([]dto.Trade, int64, error) {
	var envelope listEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&envelope).
		SetError(&envelope).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		Get("/api/trades")
	if err != nil {
		return nil, 0, fmt.Errorf("list trades: %w", err)
	}
	if resp.IsError() {
		return nil, 0, fmt.Errorf("list trades: %s (status %d)", envelope.Error, resp.StatusCode())
	}

	return envelope.Data, envelope.Count, nil
}

// DeleteTrade removes one trade. Returns whether the id existed.
func (c *Client) DeleteTrade(ctx context.Context, id string) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/api/trades/{id}")
	if err != nil {
		return false, fmt.Errorf("delete trade: %w", err)
	}
	if resp.StatusCode() == 404 {
		return false, nil
	}
	if resp.IsError() {
		return false, fmt.Errorf("delete trade: status %d", resp.StatusCode())
	}

	return true, nil
}

// Stats fetches the journal-wide statistics.
func (c *Client) Stats(ctx context.Context) (*dto.Stats, error) {
	var envelope statsEnvelope

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&envelope).
		SetError(&envelope).
		Get("/api/stats")
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch stats: %s (status %d)", envelope.Error, resp.StatusCode())
	}

	return &envelope.Data, nil
}
