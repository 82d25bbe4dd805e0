package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/model"
)

type journalStore interface {
	Create(ctx context.Context, entry *model.JournalEntry) error
	FindByID(ctx context.Context, id string, userID uint) (*model.JournalEntry, error)
	ListByUser(ctx context.Context, userID uint) ([]model.JournalEntry, error)
	Update(ctx context.Context, entry *model.JournalEntry) error
	Delete(ctx context.Context, id string, userID uint) error
}

// JournalPayload is the request body for creating or updating an entry.
// RelatedTradeID is a weak reference and is stored without checking that
// the trade still exists.
type JournalPayload struct {
	Date           time.Time `json:"date"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Mood           string    `json:"mood"`
	Category       string    `json:"category"`
	Asset          string    `json:"asset"`
	Tags           []string  `json:"tags"`
	Image          string    `json:"image"`
	RelatedTradeID string    `json:"related_trade_id"`
}

func (p *JournalPayload) validate() string {
	if p.Content == "" {
		return "content is required"
	}
	if p.Mood != "" && !model.ValidMood(p.Mood) {
		return "invalid mood"
	}
	return ""
}

// CreateJournalEntryHandler records a new journal entry.
func CreateJournalEntryHandler(journal journalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var payload JournalPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if msg := payload.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		date := payload.Date
		if date.IsZero() {
			date = time.Now()
		}

		entry := model.JournalEntry{
			ID:             uuid.NewString(),
			UserID:         user.ID,
			Date:           date,
			Title:          payload.Title,
			Content:        payload.Content,
			Mood:           payload.Mood,
			Category:       payload.Category,
			Asset:          payload.Asset,
			Tags:           payload.Tags,
			Image:          payload.Image,
			RelatedTradeID: payload.RelatedTradeID,
		}

		if err := journal.Create(r.Context(), &entry); err != nil {
			logger.WithError(err).Error("failed to create journal entry")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logger.WithError(err).Error("failed to encode journal entry response")
		}
	}
}

// ListJournalEntriesHandler lists the user's entries, newest first.
func ListJournalEntriesHandler(journal journalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		entries, err := journal.ListByUser(r.Context(), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to list journal entries")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []model.JournalEntry{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.WithError(err).Error("failed to encode journal entries response")
		}
	}
}

// GetJournalEntryHandler returns a single entry by id.
func GetJournalEntryHandler(journal journalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		entry, err := journal.FindByID(r.Context(), chi.URLParam(r, "id"), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to fetch journal entry")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if entry == nil {
			http.Error(w, "journal entry not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logger.WithError(err).Error("failed to encode journal entry response")
		}
	}
}

// UpdateJournalEntryHandler edits an entry in place.
func UpdateJournalEntryHandler(journal journalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		entry, err := journal.FindByID(r.Context(), chi.URLParam(r, "id"), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to fetch journal entry for update")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if entry == nil {
			http.Error(w, "journal entry not found", http.StatusNotFound)
			return
		}

		var payload JournalPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if msg := payload.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		if !payload.Date.IsZero() {
			entry.Date = payload.Date
		}
		entry.Title = payload.Title
		entry.Content = payload.Content
		entry.Mood = payload.Mood
		entry.Category = payload.Category
		entry.Asset = payload.Asset
		entry.Tags = payload.Tags
		entry.Image = payload.Image
		entry.RelatedTradeID = payload.RelatedTradeID

		if err := journal.Update(r.Context(), entry); err != nil {
			logger.WithError(err).Error("failed to update journal entry")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			logger.WithError(err).Error("failed to encode journal entry response")
		}
	}
}

// DeleteJournalEntryHandler removes an entry.
func DeleteJournalEntryHandler(journal journalStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if err := journal.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
			logger.WithError(err).Error("failed to delete journal entry")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
