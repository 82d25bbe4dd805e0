package handler

import (
	"context"
	"encoding/json"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/model"
)

type settingsStore interface {
	Get(ctx context.Context, userID uint) (*model.UserSettings, error)
	Save(ctx context.Context, settings *model.UserSettings) error
}

// GetSettingsHandler returns the user's preference bundle, falling back to
// defaults when nothing has been saved yet.
func GetSettingsHandler(settings settingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		current, err := settings.Get(r.Context(), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to fetch settings")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if current == nil {
			defaults := model.DefaultSettings(user.ID)
			current = &defaults
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(current); err != nil {
			logger.WithError(err).Error("failed to encode settings response")
		}
	}
}

// UpdateSettingsHandler applies a partial update: present fields replace
// the stored value wholesale, absent fields keep it, and the merged row is
// written back in one piece.
func UpdateSettingsHandler(settings settingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var payload model.UpdateSettingsPayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		current, err := settings.Get(r.Context(), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to fetch settings for update")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if current == nil {
			defaults := model.DefaultSettings(user.ID)
			current = &defaults
		}

		if payload.AccountCurrency != nil {
			current.AccountCurrency = *payload.AccountCurrency
		}
		if payload.InitialBalance != nil {
			if *payload.InitialBalance < 0 {
				http.Error(w, "initial balance must not be negative", http.StatusBadRequest)
				return
			}
			current.InitialBalance = *payload.InitialBalance
		}
		if payload.RiskPercentage != nil {
			if *payload.RiskPercentage < 0 || *payload.RiskPercentage > 100 {
				http.Error(w, "risk percentage must be between 0 and 100", http.StatusBadRequest)
				return
			}
			current.RiskPercentage = *payload.RiskPercentage
		}
		if payload.DarkMode != nil {
			current.DarkMode = *payload.DarkMode
		}
		if payload.DefaultPairs != nil {
			current.DefaultPairs = *payload.DefaultPairs
		}
		if payload.Tags != nil {
			current.Tags = *payload.Tags
		}
		if payload.Setups != nil {
			current.Setups = *payload.Setups
		}

		if err := settings.Save(r.Context(), current); err != nil {
			logger.WithError(err).Error("failed to save settings")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(current); err != nil {
			logger.WithError(err).Error("failed to encode settings response")
		}
	}
}
