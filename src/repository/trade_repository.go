package repository

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// TradeRepository handles read/write operations for journal trades.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new repository instance using the main read/write database.
func NewTradeRepository() *TradeRepository {
	return &TradeRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
// Useful for tests or when using a specific session/transaction.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// Create inserts a new trade. The derived pips and profit values must
// already be set by the caller; they are stored as given.
func (r *TradeRepository) Create(ctx context.Context, trade *model.Trade) error {

	logger.WithFields(map[string]interface{}{
		"repo":   "TradeRepository",
		"op":     "Create",
		"pair":   trade.Pair,
		"profit": trade.Profit,
	}).Debug("Creating new trade")

	if err := r.db.WithContext(ctx).Create(trade).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create trade")
		return err
	}

	return nil
}

// FindByID fetches a single trade owned by the given user.
// Returns (nil, nil) if the trade is not found.
func (r *TradeRepository) FindByID(ctx context.Context, id string, userID uint) (*model.Trade, error) {

	var trade model.Trade

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&trade).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
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

// TradeSearchOptions filters ListByUser. Zero values mean no filter.
type TradeSearchOptions struct {
	Pair        string
	EnteredFrom *time.Time
	EnteredTo   *time.Time
	Limit       int
	Offset      int
}

// ListByUser returns the user's trades in chronological order by entry
// date, stable for equal timestamps.
func (r *TradeRepository) ListByUser(ctx context.Context, userID uint, options TradeSearchOptions) ([]model.Trade, error) {

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date ASC, created_at ASC")

	if options.Pair != "" {
		query = query.Where("pair = ?", options.Pair)
	}
	if options.EnteredFrom != nil {
		query = query.Where("entry_date >= ?", *options.EnteredFrom)
	}
	if options.EnteredTo != nil {
		query = query.Where("entry_date <= ?", *options.EnteredTo)
	}
	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	var trades []model.Trade
	if err := query.Find(&trades).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":    "TradeRepository",
			"op":      "ListByUser",
			"user_id": userID,
		}).WithError(err).Error("Failed to list trades")
		return nil, err
	}

	return trades, nil
}

// Update saves the full trade row.
//
// Pips and profit are intentionally written back unchanged from the stored
// record, never rederived from the (possibly edited) price fields.
func (r *TradeRepository) Update(ctx context.Context, trade *model.Trade) error {

	if err := r.db.WithContext(ctx).Save(trade).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Update",
			"id":   trade.ID,
		}).WithError(err).Error("Failed to update trade")
		return err
	}

	return nil
}

// Delete removes a trade owned by the given user. Deleting an already
// absent trade is not an error.
func (r *TradeRepository) Delete(ctx context.Context, id string, userID uint) error {

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Trade{}).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Delete",
			"id":   id,
		}).WithError(err).Error("Failed to delete trade")
		return err
	}

	return nil
}
