package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"tradejournal/cmd/insights"
	"tradejournal/cmd/report"
	"tradejournal/src/database"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "Tradejournal CMD"
	app.Usage = "The tradejournal command line interface"

	app.Commands = []cli.Command{
		reportCMD,
		insightsCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	reportCMD = cli.Command{
		Name:      "report",
		Usage:     "print dashboard statistics for a user",
		Action:    reportAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "email", Usage: "account email"},
			cli.StringFlag{Name: "timeframe", Usage: "equity curve timeframe (ALL, 1D, 1W, 1M, 3M, YTD)", Value: "ALL"},
		},
		Description: `Print the dashboard statistics bundle for a user`,
	}
	insightsCMD = cli.Command{
		Name:      "insights",
		Usage:     "request an AI summary for a user",
		Action:    insightsAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "email", Usage: "account email"},
			cli.StringFlag{Name: "prompt", Usage: "question for the trading coach"},
		},
		Description: `Send the user's trades and journal to the AI coach and print the summary`,
	}
)

func reportAction(c *cli.Context) error {

	logrus.Info("Starting report CMD")
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	r := &report.Report{
		Log: logrus.WithField("cmd", "report"),
	}

	if err := r.Start(c.String("email"), c.String("timeframe")); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}

func insightsAction(c *cli.Context) error {

	logrus.Info("Starting insights CMD")
	if err := database.InitMainDB(); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	i := &insights.Insights{
		Log: logrus.WithField("cmd", "insights"),
	}

	if err := i.Start(c.String("email"), c.String("prompt")); err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	return nil
}
