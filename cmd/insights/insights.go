package insights

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tradejournal/src/connectors"
	"tradejournal/src/repository"
)

// Insights runs an AI summary for one account from the command line.
type Insights struct {
	Log *logrus.Entry
}

func (i *Insights) Start(email, prompt string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if prompt == "" {
		prompt = "Review my recent trading and point out what I should work on."
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

	entries, err := repository.NewJournalRepository().ListByUser(ctx, user.ID)
	if err != nil {
		return err
	}

	// ListByUser returns newest first; the shaper truncates from the front
	// and expects chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	client := connectors.NewXAIClient(connectors.GetConfig())

	summary, err := client.Summarize(ctx, trades, entries, prompt)
	if err != nil {
		return err
	}

	fmt.Println(summary)

	i.Log.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"trades":  len(trades),
		"entries": len(entries),
	}).Info("insights complete")

	return nil
}
