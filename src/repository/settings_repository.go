package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// SettingsRepository handles the per-user preference bundle.
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new repository instance using the main read/write database.
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *SettingsRepository) WithDB(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get fetches the user's settings row.
// Returns (nil, nil) when the user has never saved preferences.
func (r *SettingsRepository) Get(ctx context.Context, userID uint) (*model.UserSettings, error) {

	var settings model.UserSettings

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&settings).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo":    "SettingsRepository",
			"op":      "Get",
			"user_id": userID,
		}).WithError(err).Error("Failed to fetch user settings")

		return nil, err
	}

	return &settings, nil
}

// Save upserts the whole settings row. Partial updates are merged by the
// caller before the row reaches the repository.
func (r *SettingsRepository) Save(ctx context.Context, settings *model.UserSettings) error {

	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":    "SettingsRepository",
			"op":      "Save",
			"user_id": settings.UserID,
		}).WithError(err).Error("Failed to save user settings")
		return err
	}

	return nil
}
