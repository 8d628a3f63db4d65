package command

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"villahub/internal/app"
	"villahub/internal/config"
	"villahub/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the agent",
	Long: `Open the local store, connect to the sync server and serve the local API
until interrupted. Connection settings come from the environment (or .env) and
from the endpoint saved with "villahub endpoint set".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, logCloser := logging.New(cfg)
		defer logCloser.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		agent, err := app.New(ctx, cfg, logger, app.Options{})
		if err != nil {
			return err
		}
		defer agent.Close()

		ln, err := net.Listen("tcp", cfg.HTTPAddr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
		}

		logger.Info("agent_starting",
			"env", cfg.GoEnv,
			"endpoint", agent.Client().Endpoint().String(),
			"outbox", cfg.OutboxBackend,
		)
		return agent.Run(ctx, ln)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
