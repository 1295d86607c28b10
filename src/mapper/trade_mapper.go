package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/dto"
	"tradejournal/src/model"
	"tradejournal/src/pnl"
)

// ValidationError reports a create/update payload the journal refuses to
// store, either because required fields are missing or because a value
// violates an encoding constraint.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
	}
	return e.Reason
}

// requiredFields must all be present and coercible for a create.
var requiredFields = []string{"symbol", "entryPrice", "exitPrice", "quantity"}

// ToClientShape converts a stored row into the client-facing trade shape:
// camelCase fields, RFC 3339 dates (null when absent), tags as an array.
func ToClientShape(trade *model.Trade) dto.Trade {
	return dto.Trade{
		ID:              trade.ID,
		Symbol:          trade.Symbol,
		TradeType:       trade.TradeType,
		EntryPrice:      trade.EntryPrice,
		ExitPrice:       trade.ExitPrice,
		Quantity:        trade.Quantity,
		Pnl:             trade.Pnl,
		PnlPercentage:   trade.PnlPercentage,
		EntryDate:       formatDate(trade.EntryDate),
		ExitDate:        formatDate(trade.ExitDate),
		MarketCondition: trade.MarketCondition,
		Timeframe:       trade.Timeframe,
		Strategy:        trade.Strategy,
		Notes:           trade.Notes,
		Tags:            SplitTags(trade.Tags),
		EmotionalState:  trade.EmotionalState,
		Confidence:      trade.Confidence,
		Rating:          trade.Rating,
		CreatedAt:       formatTimestamp(trade.CreatedAt),
		UpdatedAt:       formatTimestamp(trade.UpdatedAt),
	}
}

// ToClientShapes converts a result set in slice order.
func ToClientShapes(trades []model.Trade) []dto.Trade {
	shaped := make([]dto.Trade, 0, len(trades))
	for i := range trades {
		shaped = append(shaped, ToClientShape(&trades[i]))
	}
	return shaped
}

// SplitTags decodes the comma-joined tag column. Empty and null values
// become an empty slice, segments are trimmed and empty segments dropped.
func SplitTags(raw *string) []string {
	tags := []string{}
	if raw == nil {
		return tags
	}
	for _, tag := range strings.Split(*raw, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// JoinTags encodes a tag slice into the comma-joined storage value. A nil
// or empty slice becomes a null column. A tag containing the delimiter
// cannot round-trip and is rejected.
func JoinTags(tags []string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if strings.Contains(trimmed, ",") {
			return nil, &ValidationError{Reason: fmt.Sprintf("tag %q must not contain a comma", trimmed)}
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return nil, nil
	}
	joined := strings.Join(cleaned, ",")
	return &joined, nil
}

// NewTradeFromInput translates a create payload into a storage row: checks
// required fields, assigns a fresh UUID, defaults dates to now and the
// direction to LONG, and derives the P&L columns.
func NewTradeFromInput(in dto.TradeInput) (*model.Trade, error) {
	var missing []string
	for _, field := range requiredFields {
		if field == "symbol" {
			if symbol, ok := in.StringField(field); !ok || strings.TrimSpace(symbol) == "" {
				missing = append(missing, field)
			}
			continue
		}
		if _, ok := in.FloatField(field); !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	symbol, _ := in.StringField("symbol")
	entryPrice, _ := in.FloatField("entryPrice")
	exitPrice, _ := in.FloatField("exitPrice")
	quantity, _ := in.FloatField("quantity")

	tradeType := model.DirectionLong
	if value, ok := in.StringField("tradeType"); ok && value != "" {
		tradeType = value
	}

	profit, percentage := pnl.ComputeFloat(entryPrice, exitPrice, quantity, tradeType)

	now := time.Now().UTC()
	entryDate := parseDateOrDefault(in, "entryDate", now)
	exitDate := parseDateOrDefault(in, "exitDate", now)

	var tags *string
	if values, ok := in.TagsField(); ok {
		joined, err := JoinTags(values)
		if err != nil {
			return nil, err
		}
		tags = joined
	}

	trade := &model.Trade{
		ID:              uuid.NewString(),
		Symbol:          strings.TrimSpace(symbol),
		TradeType:       tradeType,
		EntryPrice:      entryPrice,
		ExitPrice:       exitPrice,
		Quantity:        quantity,
		Pnl:             profit,
		PnlPercentage:   percentage,
		EntryDate:       &entryDate,
		ExitDate:        &exitDate,
		MarketCondition: optionalString(in, "marketCondition"),
		Timeframe:       optionalString(in, "timeframe"),
		Strategy:        optionalString(in, "strategy"),
		Notes:           optionalString(in, "notes"),
		Tags:            tags,
		EmotionalState:  optionalString(in, "emotionalState"),
		Confidence:      optionalInt(in, "confidence"),
		Rating:          optionalInt(in, "rating"),
	}

	logger.WithFields(map[string]interface{}{
		"mapper":     "NewTradeFromInput",
		"trade_id":   trade.ID,
		"symbol":     trade.Symbol,
		"trade_type": trade.TradeType,
	}).Debug("Create payload mapped to storage row")

	return trade, nil
}

// ApplyUpdate merges a partial payload over an existing row. A field absent
// from the payload leaves the column untouched; an explicit null clears
// nullable columns; a value replaces. When any P&L input was supplied the
// derived columns are recomputed from the merged values. Returns whether a
// recompute happened.
func ApplyUpdate(trade *model.Trade, in dto.TradeInput) (bool, error) {
	if value, ok := in.StringField("symbol"); ok && strings.TrimSpace(value) != "" {
		trade.Symbol = strings.TrimSpace(value)
	}
	if value, ok := in.StringField("tradeType"); ok && value != "" {
		trade.TradeType = value
	}
	if value, ok := in.FloatField("entryPrice"); ok {
		trade.EntryPrice = value
	}
	if value, ok := in.FloatField("exitPrice"); ok {
		trade.ExitPrice = value
	}
	if value, ok := in.FloatField("quantity"); ok {
		trade.Quantity = value
	}

	if value, ok := in.StringField("entryDate"); ok {
		if parsed := parseDate(value); parsed != nil {
			trade.EntryDate = parsed
		}
	}
	if value, ok := in.StringField("exitDate"); ok {
		if parsed := parseDate(value); parsed != nil {
			trade.ExitDate = parsed
		}
	}

	applyNullable(in, "marketCondition", &trade.MarketCondition)
	applyNullable(in, "timeframe", &trade.Timeframe)
	applyNullable(in, "strategy", &trade.Strategy)
	applyNullable(in, "notes", &trade.Notes)
	applyNullable(in, "emotionalState", &trade.EmotionalState)

	if in.Has("tags") {
		if values, ok := in.TagsField(); ok {
			joined, err := JoinTags(values)
			if err != nil {
				return false, err
			}
			trade.Tags = joined
		} else {
			trade.Tags = nil
		}
	}

	if in.Has("confidence") {
		trade.Confidence = optionalInt(in, "confidence")
	}
	if in.Has("rating") {
		trade.Rating = optionalInt(in, "rating")
	}

	recompute := in.Has("entryPrice") || in.Has("exitPrice") || in.Has("quantity") || in.Has("tradeType")
	if recompute {
		trade.Pnl, trade.PnlPercentage = pnl.ComputeFloat(trade.EntryPrice, trade.ExitPrice, trade.Quantity, trade.TradeType)
	}

	return recompute, nil
}

func applyNullable(in dto.TradeInput, field string, target **string) {
	if !in.Has(field) {
		return
	}
	if value, ok := in.StringField(field); ok {
		*target = &value
		return
	}
	*target = nil
}

func optionalString(in dto.TradeInput, field string) *string {
	if value, ok := in.StringField(field); ok {
		return &value
	}
	return nil
}

func optionalInt(in dto.TradeInput, field string) *int {
	if value, ok := in.IntField(field); ok {
		return &value
	}
	return nil
}

func formatDate(value *time.Time) *string {
	if value == nil || value.IsZero() {
		return nil
	}
	formatted := value.UTC().Format(time.RFC3339)
	return &formatted
}

func formatTimestamp(value time.Time) *string {
	if value.IsZero() {
		return nil
	}
	formatted := value.UTC().Format(time.RFC3339)
	return &formatted
}

// dateLayouts covers what browsers and the import file actually send.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDate degrades to nil on anything unparsable instead of failing the
// whole request.
func parseDate(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			utc := parsed.UTC()
			return &utc
		}
	}
	logger.WithField("value", value).Debug("Unparsable date in payload, keeping stored value")
	return nil
}

func parseDateOrDefault(in dto.TradeInput, field string, fallback time.Time) time.Time {
	if value, ok := in.StringField(field); ok {
		if parsed := parseDate(value); parsed != nil {
			return *parsed
		}
	}
	return fallback
}
