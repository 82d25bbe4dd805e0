package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

const (
	jpyPipFactor     = 100
	defaultPipFactor = 10000
	standardLotUnits = 100000
)

// IsJPYPair reports whether the instrument is quoted in Japanese yen.
func IsJPYPair(pair string) bool {
	return strings.Contains(strings.ToUpper(pair), "JPY")
}

// PipFactor returns the price-to-pip multiplier for a pair. JPY-quoted
// pairs tick in hundredths, everything else in ten-thousandths.
func PipFactor(pair string) decimal.Decimal {
	if IsJPYPair(pair) {
		return decimal.NewFromInt(jpyPipFactor)
	}
	return decimal.NewFromInt(defaultPipFactor)
}

// PipValue returns the account-currency value of one pip for the given
// pair, exit price and lot size. JPY pairs convert through the exit quote;
// USD-quoted pairs use the flat $10-per-lot convention.
func PipValue(pair string, exitPrice, size float64) decimal.Decimal {
	sz := decimal.NewFromFloat(size)
	if IsJPYPair(pair) {
		exit := decimal.NewFromFloat(exitPrice)
		if exit.IsZero() {
			return decimal.Zero
		}
		return decimal.NewFromInt(standardLotUnits).
			Mul(decimal.NewFromFloat(0.01)).
			Div(exit).
			Mul(sz)
	}
	return decimal.NewFromInt(10).Mul(sz)
}

// Derive computes the signed pips and realized profit for a closed trade.
// Both values are frozen onto the trade record at creation time and never
// recomputed afterwards.
func Derive(direction, pair string, entryPrice, exitPrice, size float64) (pips, profit float64) {
	entry := decimal.NewFromFloat(entryPrice)
	exit := decimal.NewFromFloat(exitPrice)

	var move decimal.Decimal
	if direction == model.TradeDirectionShort {
		move = entry.Sub(exit)
	} else {
		move = exit.Sub(entry)
	}

	p := move.Mul(PipFactor(pair))

	pips, _ = p.Float64()
	profit, _ = p.Mul(PipValue(pair, exitPrice, size)).Float64()
	return pips, profit
}
