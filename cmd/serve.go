package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tradepnl/web"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	configFile string
	addr       string
	debug      bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the analysis HTTP server" }
func (*serveCmd) Usage() string {
	return `tpa serve [-config <file>] [-addr <listen>] [-debug]

  Starts the HTTP server that accepts export file uploads on
  POST /api/analyze and returns the analysis as JSON.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "Path to the YAML configuration file")
	f.StringVar(&c.addr, "addr", "", "Listen address, overrides the configuration file")
	f.BoolVar(&c.debug, "debug", false, "Enable debug mode")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := web.DefaultConfig()
	if c.configFile != "" {
		var err error
		cfg, err = web.LoadConfig(c.configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration %q: %v\n", c.configFile, err)
			return subcommands.ExitFailure
		}
	}
	if c.addr != "" {
		cfg.Listen = c.addr
	}
	if c.debug {
		cfg.Debug = true
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(cfg, logger)
	if err := server.Start(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
