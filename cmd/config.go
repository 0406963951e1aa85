package main

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/streamfront/internal/shared"
)

const masked = "********"

// ConfigInit writes the example configuration to the given path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Configuration written to %s\n", path)
	r.writePlain("Set api.url and the provider credentials before running 'streamfront serve'\n")
	return nil
}

// ConfigShow prints the effective configuration (file, .env and environment applied) as TOML.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	cfg := *r.config
	mask(&cfg.API.APIKeyToken)
	mask(&cfg.Credentials.Google.ClientSecret)
	mask(&cfg.Credentials.Twitter.ClientSecret)
	mask(&cfg.Credentials.Facebook.ClientSecret)

	if err := toml.NewEncoder(r.output).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func mask(s *string) {
	if *s != "" {
		*s = masked
	}
}
