package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/demo-api/config"
	"github.com/angeloszaimis/demo-api/pkg/logger"
)

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:           "demo-api",
		Short:         "Demo API service",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	addServeFlags(root)

	root.AddCommand(serve, newVersionCommand())

	return root
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log, err := logger.New(logger.FromConfig(cfg.Logging))
			if err != nil {
				return fmt.Errorf("failed to configure logging: %w", err)
			}
			slog.SetDefault(log)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}

			return a.run(ctx)
		},
	}
	addServeFlags(cmd)

	return cmd
}

func addServeFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("config", "c", "", "path to a YAML configuration file")
	flags.String("address", config.DefaultAddress, "listen address (host:port)")
	flags.String("env", config.EnvDev, "environment: dev, staging or prod")
	flags.String("prefix", "", "path prefix for every route")
	flags.String("log-level", config.LogLevelDebug, "minimum log level: debug, info, warn or error")
	flags.String("log-format", config.LogFormatPipe, "log format: pipe, console or json")
	flags.Bool("metrics", false, "expose the metrics snapshot endpoint")
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "demo-api version %s\n", cmd.Root().Version)
		},
	}
}
