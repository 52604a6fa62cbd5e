package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-helen-express/internal/config"
	"github.com/robert-malhotra/go-helen-express/internal/logging"
	"github.com/robert-malhotra/go-helen-express/pkg/auth"
	"github.com/robert-malhotra/go-helen-express/pkg/client"
)

var (
	baseURLFlag = &cli.StringFlag{
		Name:    "url",
		Aliases: []string{"u"},
		Usage:   "Helen Express backend base URL (HELEN_BASE_URL)",
	}
	tokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "bearer token for the backend (HELEN_TOKEN)",
	}
	apiKeyFlag = &cli.StringFlag{
		Name:  "api-key",
		Usage: "API key sent as X-API-Key (HELEN_API_KEY)",
	}
	timeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		Aliases: []string{"t"},
		Usage:   "HTTP client timeout (e.g. 30s, 1m)",
		Value:   30 * time.Second,
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "config file (YAML, JSON or TOML)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error (HELEN_LOG_LEVEL)",
		Value: "info",
	}
	logJSONFlag = &cli.BoolFlag{
		Name:  "log-json",
		Usage: "write logs as JSON",
	}
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "helen",
		Usage: "Compile list queries and manage vendor quotations for Helen Express",
		Flags: []cli.Flag{
			baseURLFlag, tokenFlag, apiKeyFlag, timeoutFlag,
			configFlag, logLevelFlag, logJSONFlag,
		},
		Commands: []*cli.Command{
			newQueryCommand(),
			newQuotationCommand(),
			newServeCommand(),
		},
	}
}

// settingsFromCommand loads the config file and environment, then applies the flags
// that were set explicitly.
func settingsFromCommand(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet(baseURLFlag.Name) {
		cfg.BaseURL = cmd.String(baseURLFlag.Name)
	}
	if cmd.IsSet(tokenFlag.Name) {
		cfg.Token = cmd.String(tokenFlag.Name)
	}
	if cmd.IsSet(apiKeyFlag.Name) {
		cfg.APIKey = cmd.String(apiKeyFlag.Name)
	}
	if cmd.IsSet(timeoutFlag.Name) {
		cfg.Timeout = cmd.Duration(timeoutFlag.Name)
	}
	if cmd.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = cmd.String(logLevelFlag.Name)
	}
	if cmd.IsSet(logJSONFlag.Name) {
		cfg.LogJSON = cmd.Bool(logJSONFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loggerFor(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogJSON)
}

func newBackendClient(cfg *config.Config, logger *zap.Logger) (*client.Client, error) {
	if err := cfg.RequireBaseURL(); err != nil {
		return nil, err
	}

	opts := []client.ClientOption{
		client.WithBearerToken(cfg.Token),
		client.WithPageSize(cfg.PageSize),
		client.WithLogger(logger.Sugar()),
		client.WithRequestID(),
	}
	if cfg.APIKey != "" {
		opts = append([]client.ClientOption{
			client.WithHTTPClient(&http.Client{Transport: &auth.APIKeyTransport{Key: cfg.APIKey}}),
		}, opts...)
	}
	opts = append(opts, client.WithTimeout(cfg.Timeout))
	return client.NewClient(cfg.BaseURL, opts...)
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

// openInput opens path, or standard input for "" and "-".
func openInput(cmd *cli.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin(cmd)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
