package dto

// Trade is the client-facing representation of a journal entry.
// Dates are RFC 3339 strings or null, tags are always an array and every
// numeric column is a real number, regardless of how storage represents it.
type Trade struct {
	ID              string   `json:"id"`
	Symbol          string   `json:"symbol"`
	TradeType       string   `json:"tradeType"`
	EntryPrice      float64  `json:"entryPrice"`
	ExitPrice       float64  `json:"exitPrice"`
	Quantity        float64  `json:"quantity"`
	Pnl             float64  `json:"pnl"`
	PnlPercentage   float64  `json:"pnlPercentage"`
	EntryDate       *string  `json:"entryDate"`
	ExitDate        *string  `json:"exitDate"`
	MarketCondition *string  `json:"marketCondition"`
	Timeframe       *string  `json:"timeframe"`
	Strategy        *string  `json:"strategy"`
	Notes           *string  `json:"notes"`
	Tags            []string `json:"tags"`
	EmotionalState  *string  `json:"emotionalState"`
	Confidence      *int     `json:"confidence"`
	Rating          *int     `json:"rating"`
	CreatedAt       *string  `json:"createdAt"`
	UpdatedAt       *string  `json:"updatedAt"`
}
