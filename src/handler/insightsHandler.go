package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/connectors"
	"tradejournal/src/model"
	"tradejournal/src/repository"
)

type summarizer interface {
	Summarize(ctx context.Context, trades []model.Trade, entries []model.JournalEntry, prompt string) (string, error)
}

// InsightsPayload is the request body for an AI insights run.
type InsightsPayload struct {
	Prompt string `json:"prompt"`
}

// InsightsResponse carries the completion text back to the UI.
type InsightsResponse struct {
	Summary string `json:"summary"`
}

// InsightsHandler loads the user's trades and journal entries and asks the
// completion endpoint for a coaching summary. One outbound call, no retry;
// failures are classified and surfaced as user-visible messages.
func InsightsHandler(trades tradeStore, journal journalStore, ai summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var payload InsightsPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if payload.Prompt == "" {
			http.Error(w, "prompt is required", http.StatusBadRequest)
			return
		}

		allTrades, err := trades.ListByUser(r.Context(), user.ID, repository.TradeSearchOptions{})
		if err != nil {
			logger.WithError(err).Error("failed to load trades for insights")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		entries, err := journal.ListByUser(r.Context(), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to load journal entries for insights")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// The journal view lists newest first; the shaper truncates from the
		// front, so it needs chronological order to drop the oldest entries.
		reverseEntries(entries)

		summary, err := ai.Summarize(r.Context(), allTrades, entries, payload.Prompt)
		if err != nil {
			var upstream *connectors.UpstreamError
			var connection *connectors.ConnectionError

			switch {
			case errors.Is(err, connectors.ErrMissingAPIKey):
				logger.Error("AI credential not configured")
				http.Error(w, "AI summaries are not configured", http.StatusInternalServerError)
			case errors.As(err, &upstream):
				logger.WithFields(map[string]interface{}{
					"status": upstream.Status,
				}).Error("AI upstream error")
				http.Error(w, err.Error(), http.StatusBadGateway)
			case errors.As(err, &connection):
				logger.WithError(err).Error("AI connection error")
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			default:
				logger.WithError(err).Error("AI request failed")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(InsightsResponse{Summary: summary}); err != nil {
			logger.WithError(err).Error("failed to encode insights response")
		}
	}
}

func reverseEntries(entries []model.JournalEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}

const tradeFeedbackPrompt = `You are an expert trading coach. Analyze the following trade setup and provide:
- Constructive feedback
- Risk management tips
- Suggestions to improve the trade or journaling
Be concise, practical, and supportive.`

// TradeFeedbackHandler asks the completion endpoint for coaching on a single
// trade, with a fixed prompt and no journal context.
func TradeFeedbackHandler(trades tradeStore, ai summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		trade, err := trades.FindByID(r.Context(), chi.URLParam(r, "id"), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to fetch trade for feedback")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if trade == nil {
			http.Error(w, "trade not found", http.StatusNotFound)
			return
		}

		summary, err := ai.Summarize(r.Context(), []model.Trade{*trade}, nil, tradeFeedbackPrompt)
		if err != nil {
			var upstream *connectors.UpstreamError
			var connection *connectors.ConnectionError

			switch {
			case errors.Is(err, connectors.ErrMissingAPIKey):
				logger.Error("AI credential not configured")
				http.Error(w, "AI summaries are not configured", http.StatusInternalServerError)
			case errors.As(err, &upstream):
				logger.WithFields(map[string]interface{}{
					"status": upstream.Status,
				}).Error("AI upstream error")
				http.Error(w, err.Error(), http.StatusBadGateway)
			case errors.As(err, &connection):
				logger.WithError(err).Error("AI connection error")
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			default:
				logger.WithError(err).Error("AI request failed")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(InsightsResponse{Summary: summary}); err != nil {
			logger.WithError(err).Error("failed to encode feedback response")
		}
	}
}
