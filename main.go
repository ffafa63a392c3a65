package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cardbot/service/config"
	"cardbot/service/server"
	"cardbot/service/util"

	"github.com/spf13/cobra"
)

var version = "dev"

func init() {
	config.LoadEnvFile()
}

func main() {
	var verbosity int

	root := &cobra.Command{
		Use:          "cardbot",
		Short:        "Webex adaptive-card webhook bot",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger := util.NewLogger(verbosity)
			logger.Info("Starting cardbot", "version", version)

			return runServer(cfg, logger)
		},
	}
	root.Flags().CountVarP(&verbosity, "verbose", "v", "log verbosity (-v warn, -vv info, -vvv debug)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runServer(cfg *config.Config, logger *slog.Logger) error {
	srv := server.New(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
		return srv.Shutdown()
	case err := <-serverErr:
		return err
	}
}
