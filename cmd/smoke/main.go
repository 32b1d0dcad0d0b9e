// cmd/smoke/main.go

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bmcdonald3/inventory-smoke/pkg/config"
	"github.com/bmcdonald3/inventory-smoke/pkg/inventory"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory-smoke",
		Short: "Runs a sequential smoke test against the inventory-management API.",
		Long: `Creates a retailer and then exercises the inventory, delivery agent,
distributor, forecast, billing, low-stock and restock endpoints in order,
logging every response. Only a failed retailer creation stops the run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeSmokeRun(cmd, cfg)
		},
	}
	// Flags override whatever the environment provided
	cfg.BindClientFlags(cmd.Flags())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.Load()).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// executeSmokeRun is the main logic triggered by cobra.
func executeSmokeRun(cmd *cobra.Command, cfg *config.Config) error {
	logger := cfg.NewLogger(cmd.OutOrStdout())
	logger.Info("starting smoke run", "base_url", cfg.BaseURL)

	report, err := inventory.NewRunner(cfg, logger).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("smoke run aborted: %w", err)
	}

	if failed := report.Failures(); len(failed) > 0 {
		logger.Warn("smoke run finished with failed requests",
			"failed", len(failed),
			"requests", report.Requests(),
		)
	}
	return nil
}
