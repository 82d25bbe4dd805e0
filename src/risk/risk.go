// Package risk implements the position-size calculator.
package risk

import (
	"errors"

	"github.com/shopspring/decimal"
)

const standardLotUnits = 100000

// PositionSizeInput are the calculator inputs. Balance, RiskPercent,
// StopLossPips and LotSize must be positive; Leverage defaults to 1.
type PositionSizeInput struct {
	Balance      decimal.Decimal
	RiskPercent  decimal.Decimal
	StopLossPips decimal.Decimal
	LotSize      decimal.Decimal
	Leverage     decimal.Decimal
}

// PositionSizeResult is what the calculator reports back, rounded to cents.
type PositionSizeResult struct {
	RiskAmount     decimal.Decimal
	PipValue       decimal.Decimal
	PositionSize   decimal.Decimal
	MarginRequired decimal.Decimal
}

var ErrInvalidInput = errors.New("risk: balance, risk percent, stop loss and lot size must be positive")

// PositionSize sizes a position so a stop-loss hit costs RiskPercent of the
// balance. Pip value uses the flat $10-per-lot major-pair convention.
func PositionSize(in PositionSizeInput) (PositionSizeResult, error) {
	if in.Balance.LessThanOrEqual(decimal.Zero) ||
		in.RiskPercent.LessThanOrEqual(decimal.Zero) ||
		in.StopLossPips.LessThanOrEqual(decimal.Zero) ||
		in.LotSize.LessThanOrEqual(decimal.Zero) {
		return PositionSizeResult{}, ErrInvalidInput
	}

	leverage := in.Leverage
	if leverage.LessThanOrEqual(decimal.Zero) {
		leverage = decimal.NewFromInt(1)
	}

	riskAmount := in.Balance.Mul(in.RiskPercent).Div(decimal.NewFromInt(100))
	pipValue := in.LotSize.Mul(decimal.NewFromInt(10))
	positionSize := riskAmount.Div(in.StopLossPips).Div(pipValue)
	marginRequired := positionSize.Mul(decimal.NewFromInt(standardLotUnits)).Div(leverage)

	return PositionSizeResult{
		RiskAmount:     riskAmount.Round(2),
		PipValue:       pipValue.Round(2),
		PositionSize:   positionSize.Round(2),
		MarginRequired: marginRequired.Round(2),
	}, nil
}
