package model

import "time"

const (
	DirectionLong  = "LONG"
	DirectionShort = "SHORT"
)

// Trade is a single closed journal entry as persisted.
// Tags are stored as a comma-joined string; a tag must not contain the
// delimiter, which is enforced at write time by the mapper.
type Trade struct {
	ID            string  `gorm:"primaryKey;size:36" json:"id"`
	Symbol        string  `gorm:"size:50;not null;index" json:"symbol"`
	TradeType     string  `gorm:"size:10;not null;default:LONG" json:"trade_type"`
	EntryPrice    float64 `gorm:"type:decimal(18,8);not null" json:"entry_price"`
	ExitPrice     float64 `gorm:"type:decimal(18,8);not null" json:"exit_price"`
	Quantity      float64 `gorm:"type:decimal(18,8);not null" json:"quantity"`
	Pnl           float64 `gorm:"type:decimal(18,8)" json:"pnl"`
	PnlPercentage float64 `gorm:"column:pnl_percentage;type:decimal(18,8)" json:"pnl_percentage"`

	EntryDate *time.Time `gorm:"index" json:"entry_date"`
	ExitDate  *time.Time `json:"exit_date"`

	// Optional self-reported context, all nullable.
	MarketCondition *string `gorm:"size:50" json:"market_condition,omitempty"`
	Timeframe       *string `gorm:"size:20" json:"timeframe,omitempty"`
	Strategy        *string `gorm:"size:100" json:"strategy,omitempty"`
	Notes           *string `gorm:"type:text" json:"notes,omitempty"`
	Tags            *string `gorm:"size:500" json:"tags,omitempty"`
	EmotionalState  *string `gorm:"size:50" json:"emotional_state,omitempty"`
	Confidence      *int    `json:"confidence,omitempty"`
	Rating          *int    `json:"rating,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName allows you to control the exact table name for trades.
func (Trade) TableName() string {
	return "trades"
}
