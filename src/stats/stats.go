// Package stats is the pure statistics engine behind the dashboard and
// analytics views. It has no side effects and no I/O; callers hand it the
// trade collection and an evaluation clock.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

// Timeframe selects the window applied to the equity curve. All other
// dashboard figures are always computed over the full trade history.
type Timeframe string

const (
	TimeframeAll Timeframe = "ALL"
	Timeframe1D  Timeframe = "1D"
	Timeframe1W  Timeframe = "1W"
	Timeframe1M  Timeframe = "1M"
	Timeframe3M  Timeframe = "3M"
	TimeframeYTD Timeframe = "YTD"
)

// ParseTimeframe maps a query-string value to a Timeframe, defaulting to ALL.
func ParseTimeframe(s string) Timeframe {
	switch Timeframe(s) {
	case Timeframe1D, Timeframe1W, Timeframe1M, Timeframe3M, TimeframeYTD:
		return Timeframe(s)
	default:
		return TimeframeAll
	}
}

// windowStart returns the inclusive lower bound of the timeframe, or a zero
// time for ALL.
func (tf Timeframe) windowStart(now time.Time) time.Time {
	switch tf {
	case Timeframe1D:
		return now.AddDate(0, 0, -1)
	case Timeframe1W:
		return now.AddDate(0, 0, -7)
	case Timeframe1M:
		return now.AddDate(0, -1, 0)
	case Timeframe3M:
		return now.AddDate(0, -3, 0)
	case TimeframeYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}

// Stats is the aggregate bundle shown on the analytics page.
type Stats struct {
	TotalPnl      float64 `json:"total_pnl"`
	AvgTradePnl   float64 `json:"avg_trade_pnl"`
	WinRate       float64 `json:"win_rate"`
	LargestProfit float64 `json:"largest_profit"`
	LargestLoss   float64 `json:"largest_loss"`
	TotalVolume   float64 `json:"total_volume"`
	AvgVolume     float64 `json:"avg_volume"`
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
}

// Compute aggregates the full trade collection. An empty collection yields
// all zeroes, never NaN.
func Compute(trades []model.Trade) Stats {
	var s Stats
	s.TotalTrades = len(trades)

	totalPnl := decimal.Zero
	totalVolume := decimal.Zero
	for _, t := range trades {
		totalPnl = totalPnl.Add(decimal.NewFromFloat(t.Profit))
		totalVolume = totalVolume.Add(decimal.NewFromFloat(t.Size))
		if t.Profit > 0 {
			s.WinningTrades++
		}
		if t.Profit < 0 {
			s.LosingTrades++
		}
		// Floors at zero so an all-losing set reports 0 largest profit,
		// and symmetrically for largest loss.
		s.LargestProfit = math.Max(s.LargestProfit, t.Profit)
		s.LargestLoss = math.Min(s.LargestLoss, t.Profit)
	}

	s.TotalPnl, _ = totalPnl.Float64()
	s.TotalVolume, _ = totalVolume.Float64()
	if len(trades) > 0 {
		n := decimal.NewFromInt(int64(len(trades)))
		s.AvgTradePnl, _ = totalPnl.Div(n).Float64()
		s.AvgVolume, _ = totalVolume.Div(n).Float64()
		s.WinRate = float64(s.WinningTrades) / float64(len(trades)) * 100
	}
	return s
}

// EquityCurve returns the running sum of profits in the given order. The
// caller is responsible for chronological ordering; no sorting happens here.
func EquityCurve(trades []model.Trade) []float64 {
	curve := make([]float64, 0, len(trades))
	sum := decimal.Zero
	for _, t := range trades {
		sum = sum.Add(decimal.NewFromFloat(t.Profit))
		v, _ := sum.Float64()
		curve = append(curve, v)
	}
	return curve
}

// EquityPoint is one point on the dashboard equity chart. Date is a
// calendar date, so several same-day trades produce repeated x-values.
type EquityPoint struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

// PairPerformance is the per-instrument breakdown row.
type PairPerformance struct {
	Pair    string `json:"pair"`
	WinRate int    `json:"win_rate"`
	Trades  int    `json:"trades"`
}

// Dashboard bundles everything the dashboard view renders.
type Dashboard struct {
	InitialBalance    float64           `json:"initial_balance"`
	Balance           float64           `json:"balance"`
	WinRate           int               `json:"win_rate"`
	AvgProfit         float64           `json:"avg_profit"`
	RecentTrades      []model.Trade     `json:"recent_trades"`
	PerformanceByPair []PairPerformance `json:"performance_by_pair"`
	EquityData        []EquityPoint     `json:"equity_data"`
	SortedTrades      []model.Trade     `json:"sorted_trades"`
	TradesThisMonth   int               `json:"trades_this_month"`
}

// ComputeDashboard derives the dashboard bundle.
//
// Only the equity curve honors the timeframe filter; balance, win rate,
// average profit, the per-pair breakdown and trades-this-month are always
// all-time figures, so the summary cards stay stable while the chart is
// explorable.
func ComputeDashboard(trades []model.Trade, tf Timeframe, initialBalance float64, now time.Time) Dashboard {
	sorted := make([]model.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EntryDate.Before(sorted[j].EntryDate)
	})

	filtered := sorted
	if tf != TimeframeAll {
		start := tf.windowStart(now)
		filtered = make([]model.Trade, 0, len(sorted))
		for _, t := range sorted {
			if !t.EntryDate.Before(start) {
				filtered = append(filtered, t)
			}
		}
	}

	equity := make([]EquityPoint, 0, len(filtered)+1)
	equity = append(equity, EquityPoint{Date: "Start", Balance: initialBalance})
	running := decimal.NewFromFloat(initialBalance)
	for _, t := range filtered {
		running = running.Add(decimal.NewFromFloat(t.Profit))
		bal, _ := running.Float64()
		equity = append(equity, EquityPoint{
			Date:    t.EntryDate.UTC().Format("2006-01-02"),
			Balance: bal,
		})
	}

	type pairBucket struct {
		wins  int
		total int
	}
	totalProfit := decimal.Zero
	wins, losses := 0, 0
	tradesThisMonth := 0
	pairs := map[string]*pairBucket{}
	pairOrder := []string{}

	for _, t := range sorted {
		totalProfit = totalProfit.Add(decimal.NewFromFloat(t.Profit))
		if t.Profit > 0 {
			wins++
		}
		if t.Profit < 0 {
			losses++
		}
		if t.EntryDate.Year() == now.Year() && t.EntryDate.Month() == now.Month() {
			tradesThisMonth++
		}
		b, ok := pairs[t.Pair]
		if !ok {
			b = &pairBucket{}
			pairs[t.Pair] = b
			pairOrder = append(pairOrder, t.Pair)
		}
		b.total++
		if t.Profit > 0 {
			b.wins++
		}
	}

	balance, _ := decimal.NewFromFloat(initialBalance).Add(totalProfit).Float64()

	d := Dashboard{
		InitialBalance:  initialBalance,
		Balance:         balance,
		SortedTrades:    sorted,
		EquityData:      equity,
		TradesThisMonth: tradesThisMonth,
	}

	// Breakeven trades count as neither win nor loss here, matching the
	// card on the dashboard rather than the analytics win rate.
	decided := wins + losses
	if decided > 0 {
		d.WinRate = int(math.Round(float64(wins) / float64(decided) * 100))
		avg, _ := totalProfit.Div(decimal.NewFromInt(int64(decided))).Round(2).Float64()
		d.AvgProfit = avg
	}

	recent := len(sorted)
	if recent > 5 {
		recent = 5
	}
	d.RecentTrades = make([]model.Trade, 0, recent)
	for i := len(sorted) - 1; i >= len(sorted)-recent; i-- {
		d.RecentTrades = append(d.RecentTrades, sorted[i])
	}

	d.PerformanceByPair = make([]PairPerformance, 0, len(pairOrder))
	for _, pair := range pairOrder {
		b := pairs[pair]
		wr := 0
		if b.total > 0 {
			wr = int(math.Round(float64(b.wins) / float64(b.total) * 100))
		}
		d.PerformanceByPair = append(d.PerformanceByPair, PairPerformance{
			Pair:    pair,
			WinRate: wr,
			Trades:  b.total,
		})
	}

	return d
}
