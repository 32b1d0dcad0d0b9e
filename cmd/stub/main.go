// cmd/stub/main.go

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bmcdonald3/inventory-smoke/pkg/config"
	"github.com/bmcdonald3/inventory-smoke/pkg/stub"
)

const shutdownTimeout = 5 * time.Second

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inventory-stub",
		Short:         "Serves an in-memory stub of the inventory-management API.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cmd, cfg)
		},
	}
	cfg.BindStubFlags(cmd.Flags())
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

// serve runs the stub until ctx is cancelled.
func serve(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger := cfg.NewLogger(cmd.OutOrStdout())
	e := stub.NewServer(stub.NewStore(), logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("stub inventory API listening", "addr", cfg.StubAddr)
		errCh <- e.Start(cfg.StubAddr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("stub server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down stub inventory API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down stub server: %w", err)
	}
	return nil
}
