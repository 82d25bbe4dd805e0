package handler

import (
	"encoding/json"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/model"
	"tradejournal/src/repository"
	"tradejournal/src/stats"
)

// StatsHandler returns the all-time analytics bundle for the user's trades.
func StatsHandler(trades tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		all, err := trades.ListByUser(r.Context(), user.ID, repository.TradeSearchOptions{})
		if err != nil {
			logger.WithError(err).Error("failed to load trades for stats")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(stats.Compute(all)); err != nil {
			logger.WithError(err).Error("failed to encode stats response")
		}
	}
}

// DashboardHandler returns the dashboard bundle. The timeframe query
// parameter scopes only the equity curve; everything else is all-time.
func DashboardHandler(trades tradeStore, settings settingsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		tf := stats.ParseTimeframe(r.URL.Query().Get("timeframe"))

		all, err := trades.ListByUser(r.Context(), user.ID, repository.TradeSearchOptions{})
		if err != nil {
			logger.WithError(err).Error("failed to load trades for dashboard")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		current, err := settings.Get(r.Context(), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to load settings for dashboard")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if current == nil {
			defaults := model.DefaultSettings(user.ID)
			current = &defaults
		}

		dashboard := stats.ComputeDashboard(all, tf, current.InitialBalance, time.Now())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(dashboard); err != nil {
			logger.WithError(err).Error("failed to encode dashboard response")
		}
	}
}
