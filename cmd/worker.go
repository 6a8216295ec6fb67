package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/hr-management/internal/app"
	"github.com/frahmantamala/hr-management/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers such as the contract renewal notifier.`,
}

var renewalWorkerCmd = &cobra.Command{
	Use:   "renewals",
	Short: "Start the contract renewal notifier",
	Long:  `Scan contracts on a cron schedule and publish contract.renewal_due for every contract whose renewal notification date falls within the lookahead window.`,
	Run: func(cmd *cobra.Command, args []string) {
		startRenewalWorker()
	},
}

var (
	renewalSchedule  string
	renewalLookahead int
	renewalOnce      bool
)

func startRenewalWorker() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer deps.DB.Close()

	lg := deps.Logger
	services := app.NewServices(app.Options{Config: deps.Config, Gorm: deps.Gorm, Logger: lg})

	schedule := getStringFlag(renewalSchedule, deps.Config.Renewals.Schedule)
	lookahead := getIntFlag(renewalLookahead, deps.Config.Renewals.LookaheadDays)

	scan := func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := services.Contracts.NotifyRenewals(ctx, time.Now(), lookahead); err != nil {
			lg.Error("renewal scan failed", "error", err)
		}
		if err := services.Bus.Drain(ctx); err != nil {
			lg.Warn("renewal events still in flight", "error", err)
		}
	}

	if renewalOnce {
		scan()
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, scan); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid renewal schedule %q: %v\n", schedule, err)
		os.Exit(1)
	}

	lg.Info("starting renewal worker", "schedule", schedule, "lookahead_days", lookahead)
	c.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	lg.Info("received signal, shutting down renewal worker", "signal", sig)

	ctx := c.Stop()
	select {
	case <-ctx.Done():
		lg.Info("renewal worker shutdown complete")
	case <-time.After(30 * time.Second):
		logger.L().Warn("shutdown timeout reached, forcing exit")
	}
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	renewalWorkerCmd.Flags().StringVar(&renewalSchedule, "schedule", "", "Cron schedule (overrides config)")
	renewalWorkerCmd.Flags().IntVar(&renewalLookahead, "lookahead-days", 0, "Days ahead to look for renewal dates (overrides config)")
	renewalWorkerCmd.Flags().BoolVar(&renewalOnce, "once", false, "Run a single scan and exit")

	workerCmd.AddCommand(renewalWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
