package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/model"
	"tradejournal/src/pricing"
	"tradejournal/src/repository"
)

type tradeStore interface {
	Create(ctx context.Context, trade *model.Trade) error
	FindByID(ctx context.Context, id string, userID uint) (*model.Trade, error)
	ListByUser(ctx context.Context, userID uint, options repository.TradeSearchOptions) ([]model.Trade, error)
	Update(ctx context.Context, trade *model.Trade) error
	Delete(ctx context.Context, id string, userID uint) error
}

// TradePayload is the request body for creating or updating a trade.
type TradePayload struct {
	Pair        string    `json:"pair"`
	Direction   string    `json:"direction"`
	EntryPrice  float64   `json:"entry_price"`
	ExitPrice   float64   `json:"exit_price"`
	Size        float64   `json:"size"`
	EntryDate   time.Time `json:"entry_date"`
	ExitDate    time.Time `json:"exit_date"`
	StopLoss    string    `json:"stop_loss"`
	TakeProfit  string    `json:"take_profit"`
	Commission  string    `json:"commission"`
	Swap        string    `json:"swap"`
	Tags        []string  `json:"tags"`
	Setup       string    `json:"setup"`
	Screenshots []string  `json:"screenshots"`
	Notes       string    `json:"notes"`
	Rating      int       `json:"rating"`
}

func (p *TradePayload) validate() string {
	if p.Pair == "" {
		return "pair is required"
	}
	if p.Direction != model.TradeDirectionLong && p.Direction != model.TradeDirectionShort {
		return "direction must be LONG or SHORT"
	}
	if p.EntryPrice <= 0 || p.ExitPrice <= 0 {
		return "entry and exit prices must be positive"
	}
	if p.Size <= 0 {
		return "size must be positive"
	}
	if p.EntryDate.IsZero() || p.ExitDate.IsZero() {
		return "entry and exit dates are required"
	}
	if p.Rating != 0 && (p.Rating < 1 || p.Rating > 5) {
		return "rating must be between 1 and 5"
	}
	return ""
}

// CreateTradeHandler records a new trade. Pips and profit are derived here,
// once, and stored with the trade.
func CreateTradeHandler(trades tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var payload TradePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if msg := payload.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		pips, profit := pricing.Derive(payload.Direction, payload.Pair, payload.EntryPrice, payload.ExitPrice, payload.Size)

		trade := model.Trade{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Pair:        payload.Pair,
			Direction:   payload.Direction,
			EntryPrice:  payload.EntryPrice,
			ExitPrice:   payload.ExitPrice,
			Size:        payload.Size,
			EntryDate:   payload.EntryDate,
			ExitDate:    payload.ExitDate,
			Pips:        pips,
			Profit:      profit,
			StopLoss:    payload.StopLoss,
			TakeProfit:  payload.TakeProfit,
			Commission:  payload.Commission,
			Swap:        payload.Swap,
			Tags:        payload.Tags,
			Setup:       payload.Setup,
			Screenshots: payload.Screenshots,
			Notes:       payload.Notes,
			Rating:      payload.Rating,
		}

		if err := trades.Create(r.Context(), &trade); err != nil {
			logger.WithError(err).Error("failed to create trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(trade); err != nil {
			logger.WithError(err).Error("failed to encode trade response")
		}
	}
}

// ListTradesHandler lists the user's trades chronologically, with optional
// pair/date filters and pagination.
func ListTradesHandler(trades tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		options := repository.TradeSearchOptions{
			Pair: r.URL.Query().Get("pair"),
		}

		if fromParam := r.URL.Query().Get("enteredFrom"); fromParam != "" {
			parsed, err := time.Parse(time.RFC3339, fromParam)
			if err != nil {
				http.Error(w, "invalid enteredFrom", http.StatusBadRequest)
				return
			}
			options.EnteredFrom = &parsed
		}
		if toParam := r.URL.Query().Get("enteredTo"); toParam != "" {
			parsed, err := time.Parse(time.RFC3339, toParam)
			if err != nil {
				http.Error(w, "invalid enteredTo", http.StatusBadRequest)
				return
			}
			options.EnteredTo = &parsed
		}

		if pageParam := r.URL.Query().Get("page"); pageParam != "" {
			page, err := strconv.Atoi(pageParam)
			if err != nil || page <= 0 {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			pageSize := 20
			if sizeParam := r.URL.Query().Get("pageSize"); sizeParam != "" {
				parsedSize, err := strconv.Atoi(sizeParam)
				if err != nil || parsedSize <= 0 {
					http.Error(w, "invalid pageSize", http.StatusBadRequest)
					return
				}
				pageSize = parsedSize
			}
			options.Limit = pageSize
			options.Offset = (page - 1) * pageSize
		}

		result, err := trades.ListByUser(r.Context(), user.ID, options)
		if err != nil {
			logger.WithError(err).Error("failed to list trades")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if result == nil {
			result = []model.Trade{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("failed to encode trades response")
		}
	}
}

// GetTradeHandler returns a single trade by id.
func GetTradeHandler(trades tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		trade, err := trades.FindByID(r.Context(), chi.URLParam(r, "id"), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to fetch trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if trade == nil {
			http.Error(w, "trade not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(trade); err != nil {
			logger.WithError(err).Error("failed to encode trade response")
		}
	}
}

// UpdateTradeHandler edits a trade in place. The stored pips and profit are
// kept as derived at creation time, even when price fields change.
func UpdateTradeHandler(trades tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		trade, err := trades.FindByID(r.Context(), chi.URLParam(r, "id"), user.ID)
		if err != nil {
			logger.WithError(err).Error("failed to fetch trade for update")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if trade == nil {
			http.Error(w, "trade not found", http.StatusNotFound)
			return
		}

		var payload TradePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		if msg := payload.validate(); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		trade.Pair = payload.Pair
		trade.Direction = payload.Direction
		trade.EntryPrice = payload.EntryPrice
		trade.ExitPrice = payload.ExitPrice
		trade.Size = payload.Size
		trade.EntryDate = payload.EntryDate
		trade.ExitDate = payload.ExitDate
		trade.StopLoss = payload.StopLoss
		trade.TakeProfit = payload.TakeProfit
		trade.Commission = payload.Commission
		trade.Swap = payload.Swap
		trade.Tags = payload.Tags
		trade.Setup = payload.Setup
		trade.Screenshots = payload.Screenshots
		trade.Notes = payload.Notes
		trade.Rating = payload.Rating

		if err := trades.Update(r.Context(), trade); err != nil {
			logger.WithError(err).Error("failed to update trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(trade); err != nil {
			logger.WithError(err).Error("failed to encode trade response")
		}
	}
}

// DeleteTradeHandler removes a trade.
func DeleteTradeHandler(trades tradeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if err := trades.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
			logger.WithError(err).Error("failed to delete trade")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
