package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/streamfront/internal/services"
	"github.com/desertthunder/streamfront/internal/shared"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config, err := loadConfig(defaultConfigPath)
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}
	if err := shared.SetLogLevelString(logger, config.Server.LogLevel); err != nil {
		logger.Warn("unknown log level, keeping default", "level", config.Server.LogLevel)
	}

	httpClient := &http.Client{Timeout: time.Duration(config.API.TimeoutSeconds) * time.Second}
	apiService := services.NewAPIService(config.API.URL, httpClient)
	apiService.SetAPIKeyToken(config.API.APIKeyToken)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: defaultConfigPath,
		API:        apiService,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "streamfront",
		Usage:    "Server-rendered front end for the movie streaming API",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// loadConfig layers the config file (when present), a .env file and the process environment over the defaults.
func loadConfig(path string) (*shared.Config, error) {
	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		if config, err = shared.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if err := shared.LoadEnvFile(""); err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}
