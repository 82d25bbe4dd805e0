package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/database"
	"tradejournal/src/model"
)

// UserRepository handles account records.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository instance using the main read/write database.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		db: database.MainDB,
	}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *UserRepository) WithDB(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A duplicate email surfaces as
// gorm.ErrDuplicatedKey thanks to TranslateError.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "UserRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create user")
		return err
	}

	return nil
}

// FindByEmail fetches a user by email. Returns (nil, nil) when absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {

	var user model.User

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "UserRepository",
			"op":   "FindByEmail",
		}).WithError(err).Error("Failed to fetch user by email")

		return nil, err
	}

	return &user, nil
}

// FindByID fetches a user by primary ID. Returns (nil, nil) when absent.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {

	var user model.User

	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		logger.WithFields(map[string]interface{}{
			"repo": "UserRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch user by ID")

		return nil, err
	}

	return &user, nil
}

// Update saves the full user row.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "UserRepository",
			"op":   "Update",
			"id":   user.ID,
		}).WithError(err).Error("Failed to update user")
		return err
	}

	return nil
}
