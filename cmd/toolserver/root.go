package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/toolserver/config"
	"github.com/shaharia-lab/toolserver/mcp"
	"github.com/shaharia-lab/toolserver/observability"
	"github.com/shaharia-lab/toolserver/tools"
)

type rootOptions struct {
	configPath    string
	logLevel      string
	logFormat     string
	serverName    string
	serverVersion string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "toolserver",
		Short:         "Serve tools over line-delimited JSON-RPC on stdin/stdout",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (text, json)")
	flags.StringVar(&opts.serverName, "name", "", "Server name announced on initialize")
	flags.StringVar(&opts.serverVersion, "server-version", "", "Server version announced on initialize")

	return cmd
}

// resolve loads the config file, when given, and applies flag overrides.
func (o *rootOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("name") {
		cfg.Name = o.serverName
	}
	if flags.Changed("server-version") {
		cfg.Version = o.serverVersion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// serve runs the server loop until in is exhausted or ctx is cancelled. Both are a
// clean shutdown. Protocol output goes to out and diagnostics to errOut.
func serve(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) error {
	logger, err := observability.NewLogger(cfg.LogFormat, cfg.LogLevel, errOut)
	if err != nil {
		return err
	}
	logger = logger.WithFields(map[string]interface{}{"server": cfg.Name})

	logger.Info("Starting up")

	registry, err := tools.NewRegistry(cfg.ToolOptions())
	if err != nil {
		logger.WithErr(err).Error("Failed to register tools")
		return err
	}

	baseServer, err := mcp.NewBaseServer(
		mcp.UseLogger(logger),
		mcp.UseServerInfo(cfg.Name, cfg.Version),
		mcp.UseTools(registry),
	)
	if err != nil {
		logger.WithErr(err).Error("Failed to create server")
		return err
	}

	server := mcp.NewStdIOServer(baseServer, in, out)

	err = server.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("Received shutdown signal")
		err = nil
	}
	if err != nil {
		logger.WithErr(err).Error("Server stopped with an error")
		return err
	}

	logger.Info("Shutting down")
	return nil
}
