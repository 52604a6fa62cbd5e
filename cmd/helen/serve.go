package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-helen-express/internal/api"
)

func newServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the criteria compiler and quotation parser over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (HELEN_ADDR)", Value: ":8081"},
		},
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := settingsFromCommand(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("addr") {
		cfg.Addr = cmd.String("addr")
	}
	logger, err := loggerFor(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Vendor routes are served only when a backend is configured.
	var backend api.Backend
	if cfg.BaseURL != "" {
		c, err := newBackendClient(cfg, logger)
		if err != nil {
			return err
		}
		backend = c
		logger.Info("backend configured", zap.String("url", c.BaseURL()))
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewHandler(backend, logger), logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return api.Serve(ctx, cfg.Addr, router, logger)
}
