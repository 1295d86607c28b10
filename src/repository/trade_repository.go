package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// TradeSearchOptions narrows a listing. Nil filters are ignored.
type TradeSearchOptions struct {
	Symbol    *string
	TradeType *string
	Limit     int
	Offset    int
}

// TradeRepository handles read/write operations for journal entries.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a repository instance using the journal database.
func NewTradeRepository() *TradeRepository {
	return &TradeRepository{db: database.DB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create inserts a new trade. The row carries its ID already (UUID assigned
// by the mapper); gorm fills the timestamps.
func (r *TradeRepository) Create(ctx context.Context, trade *model.Trade) error {
	err := r.db.WithContext(ctx).Create(trade).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":   "TradeRepository",
			"op":     "Create",
			"symbol": trade.Symbol,
		}).WithError(err).Error("Failed to create trade")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "Create",
		"trade_id": trade.ID,
		"symbol":   trade.Symbol,
	}).Info("Trade created")

	return nil
}

// FindByID fetches a single trade by primary key.
// Returns (nil, nil) if the trade is not found.
func (r *TradeRepository) FindByID(ctx context.Context, id string) (*model.Trade, error) {
	var trade model.Trade

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&trade).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WithFields(map[string]interface{}{
				"repo": "TradeRepository",
				"op":   "FindByID",
				"id":   id,
			}).Debug("Trade not found")

			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch trade by ID")

		return nil, err
	}

	return &trade, nil
}

// Search returns a page of trades, most recent entry date first.
func (r *TradeRepository) Search(ctx context.Context, options TradeSearchOptions) ([]model.Trade, error) {
	var trades []model.Trade

	query := applyFilters(r.db.WithContext(ctx), options).
		Order("entry_date DESC")

	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	if err := query.Find(&trades).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Search",
		}).WithError(err).Error("Failed to search trades")

		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "TradeRepository",
		"op":          "Search",
		"rows_return": len(trades),
	}).Debug("Trades fetched")

	return trades, nil
}

// Count returns how many trades match the same filters Search applies.
func (r *TradeRepository) Count(ctx context.Context, options TradeSearchOptions) (int64, error) {
	var total int64

	err := applyFilters(r.db.WithContext(ctx).Model(&model.Trade{}), options).
		Count(&total).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Count",
		}).WithError(err).Error("Failed to count trades")

		return 0, err
	}

	return total, nil
}

// FindAll loads the entire journal, used by the statistics endpoints.
func (r *TradeRepository) FindAll(ctx context.Context) ([]model.Trade, error) {
	var trades []model.Trade

	if err := r.db.WithContext(ctx).Find(&trades).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindAll",
		}).WithError(err).Error("Failed to load trades")

		return nil, err
	}

	return trades, nil
}

// FindLatest returns the most recent trades by entry date.
func (r *TradeRepository) FindLatest(ctx context.Context, limit int) ([]model.Trade, error) {
	if limit <= 0 {
		limit = 5
	}

	var trades []model.Trade

	err := r.db.WithContext(ctx).
		Order("entry_date DESC").
		Limit(limit).
		Find(&trades).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":  "TradeRepository",
			"op":    "FindLatest",
			"limit": limit,
		}).WithError(err).Error("Failed to fetch latest trades")

		return nil, err
	}

	return trades, nil
}

// Save writes a fully merged row back. The update path is read-merge-write
// without a transaction; concurrent writers to the same id race benignly and
// the last write wins.
func (r *TradeRepository) Save(ctx context.Context, trade *model.Trade) error {
	err := r.db.WithContext(ctx).Save(trade).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "Save",
			"trade_id": trade.ID,
		}).WithError(err).Error("Failed to save trade")

		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "Save",
		"trade_id": trade.ID,
	}).Info("Trade updated")

	return nil
}

// DeleteByID removes a trade. The bool reports whether a row matched.
func (r *TradeRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Trade{})

	if result.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "DeleteByID",
			"id":   id,
		}).WithError(result.Error).Error("Failed to delete trade")

		return false, result.Error
	}

	if result.RowsAffected == 0 {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "DeleteByID",
			"id":   id,
		}).Debug("No trade matched for deletion")

		return false, nil
	}

	logger.WithFields(map[string]interface{}{
		"repo": "TradeRepository",
		"op":   "DeleteByID",
		"id":   id,
	}).Info("Trade deleted")

	return true, nil
}

func applyFilters(query *gorm.DB, options TradeSearchOptions) *gorm.DB {
	if options.Symbol != nil {
		query = query.Where("symbol = ?", *options.Symbol)
	}
	if options.TradeType != nil {
		query = query.Where("trade_type = ?", *options.TradeType)
	}
	return query
}
