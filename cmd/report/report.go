package report

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tradejournal/src/model"
	"tradejournal/src/repository"
	"tradejournal/src/stats"
)

// Report prints the dashboard bundle for one account.
type Report struct {
	Log *logrus.Entry
}

func (r *Report) Start(email, timeframe string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	ctx := context.Background()

	user, err := repository.NewUserRepository().FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no account for %s", email)
	}

	trades, err := repository.NewTradeRepository().ListByUser(ctx, user.ID, repository.TradeSearchOptions{})
	if err != nil {
		return err
	}

	settings, err := repository.NewSettingsRepository().Get(ctx, user.ID)
	if err != nil {
		return err
	}
	if settings == nil {
		defaults := model.DefaultSettings(user.ID)
		settings = &defaults
	}

	tf := stats.ParseTimeframe(timeframe)
	d := stats.ComputeDashboard(trades, tf, settings.InitialBalance, time.Now())
	s := stats.Compute(trades)

	fmt.Printf("Account:          %s\n", user.Email)
	fmt.Printf("Balance:          %.2f %s (initial %.2f)\n", d.Balance, settings.AccountCurrency, d.InitialBalance)
	fmt.Printf("Trades:           %d (%d this month)\n", s.TotalTrades, d.TradesThisMonth)
	fmt.Printf("Win rate:         %d%%\n", d.WinRate)
	fmt.Printf("Avg profit:       %.2f\n", d.AvgProfit)
	fmt.Printf("Total P&L:        %.2f\n", s.TotalPnl)
	fmt.Printf("Largest profit:   %.2f\n", s.LargestProfit)
	fmt.Printf("Largest loss:     %.2f\n", s.LargestLoss)

	fmt.Printf("\nPerformance by pair:\n")
	for _, p := range d.PerformanceByPair {
		fmt.Printf("  %-10s %3d%% over %d trades\n", p.Pair, p.WinRate, p.Trades)
	}

	fmt.Printf("\nEquity curve (%s):\n", tf)
	for _, pt := range d.EquityData {
		fmt.Printf("  %-12s %.2f\n", pt.Date, pt.Balance)
	}

	r.Log.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"trades":  s.TotalTrades,
	}).Info("report complete")

	return nil
}
