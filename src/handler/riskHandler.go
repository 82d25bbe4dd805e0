package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/risk"
)

// PositionSizePayload is the request body for the risk calculator.
type PositionSizePayload struct {
	Balance      float64 `json:"balance"`
	RiskPercent  float64 `json:"risk_percent"`
	StopLossPips float64 `json:"stop_loss_pips"`
	LotSize      float64 `json:"lot_size"`
	Leverage     float64 `json:"leverage"`
}

// PositionSizeResponse mirrors risk.PositionSizeResult with two-decimal
// string values, the way the UI renders them.
type PositionSizeResponse struct {
	RiskAmount     string `json:"risk_amount"`
	PipValue       string `json:"pip_value"`
	PositionSize   string `json:"position_size"`
	MarginRequired string `json:"margin_required"`
}

// PositionSizeHandler runs the position-size calculator.
func PositionSizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var payload PositionSizePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		result, err := risk.PositionSize(risk.PositionSizeInput{
			Balance:      decimal.NewFromFloat(payload.Balance),
			RiskPercent:  decimal.NewFromFloat(payload.RiskPercent),
			StopLossPips: decimal.NewFromFloat(payload.StopLossPips),
			LotSize:      decimal.NewFromFloat(payload.LotSize),
			Leverage:     decimal.NewFromFloat(payload.Leverage),
		})
		if err != nil {
			if errors.Is(err, risk.ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			logger.WithError(err).Error("position size calculation failed")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(PositionSizeResponse{
			RiskAmount:     result.RiskAmount.StringFixed(2),
			PipValue:       result.PipValue.StringFixed(2),
			PositionSize:   result.PositionSize.StringFixed(2),
			MarginRequired: result.MarginRequired.StringFixed(2),
		}); err != nil {
			logger.WithError(err).Error("failed to encode position size response")
		}
	}
}
