package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// JournalRepository handles read/write operations for journal entries.
type JournalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new repository instance using the main read/write database.
func NewJournalRepository() *JournalRepository {
	return &JournalRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *JournalRepository) WithDB(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Create inserts a new journal entry.
func (r *JournalRepository) Create(ctx context.Context, entry *model.JournalEntry) error {

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "JournalRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create journal entry")
		return err
	}

	return nil
}

// FindByID fetches a single entry owned by the given user.
// Returns (nil, nil) if the entry is not found.
func (r *JournalRepository) FindByID(ctx context.Context, id string, userID uint) (*model.JournalEntry, error) {

	var entry model.JournalEntry

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "JournalRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch journal entry by ID")

		return nil, err
	}

	return &entry, nil
}

// ListByUser returns the user's entries, newest first.
func (r *JournalRepository) ListByUser(ctx context.Context, userID uint) ([]model.JournalEntry, error) {

	var entries []model.JournalEntry

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&entries).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":    "JournalRepository",
			"op":      "ListByUser",
			"user_id": userID,
		}).WithError(err).Error("Failed to list journal entries")
		return nil, err
	}

	return entries, nil
}

// Update saves the full entry row.
func (r *JournalRepository) Update(ctx context.Context, entry *model.JournalEntry) error {

	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "JournalRepository",
			"op":   "Update",
			"id":   entry.ID,
		}).WithError(err).Error("Failed to update journal entry")
		return err
	}

	return nil
}

// Delete removes an entry owned by the given user.
func (r *JournalRepository) Delete(ctx context.Context, id string, userID uint) error {

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.JournalEntry{}).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "JournalRepository",
			"op":   "Delete",
			"id":   id,
		}).WithError(err).Error("Failed to delete journal entry")
		return err
	}

	return nil
}
