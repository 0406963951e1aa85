package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/streamfront/internal/formatter"
	"github.com/desertthunder/streamfront/internal/models"
	"github.com/desertthunder/streamfront/internal/state"
	"github.com/desertthunder/streamfront/internal/web"
)

func identityFrom(cmd *cli.Command) models.Identity {
	return models.Identity{
		ID:    cmd.String("id"),
		Token: cmd.String("token"),
		Email: cmd.String("email"),
		Name:  cmd.String("name"),
	}
}

// State prints the preloaded state the server would embed for the given session.
func (r *Runner) State(ctx context.Context, cmd *cli.Command) error {
	s, outcome := state.NewBuilder(r.api, r.logger).Build(ctx, identityFrom(cmd))
	if outcome.ClearToken {
		r.logger.Warn("session would be signed out", "error", outcome.Err)
	}

	format := cmd.String("format")
	if format == "" || format == formatter.FormatJSON {
		return r.writeJSON(s, cmd.Bool("pretty"))
	}

	data, err := formatter.Export(s, format)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// Render prints the HTML document the server would answer for path.
func (r *Runner) Render(ctx context.Context, cmd *cli.Command) error {
	s, outcome := state.NewBuilder(r.api, r.logger).Build(ctx, identityFrom(cmd))
	if outcome.ClearToken {
		r.logger.Warn("session would be signed out", "error", outcome.Err)
	}

	renderer := web.NewRenderer(r.config.Server.Title)
	res, err := renderer.Render(s, cmd.StringArg("path"))
	if err != nil {
		return err
	}
	if res.Redirect != "" {
		r.logger.Info("redirected", "to", res.Redirect, "view", res.View)
	}

	assets := web.NewManifestSource(r.config.Assets.ManifestPath, r.config.Dev(), r.logger)
	doc, err := web.Compose(web.Page{
		Title:  renderer.Title(),
		Markup: res.Markup,
		State:  res.State,
		Assets: assets.Assets(),
	})
	if err != nil {
		return fmt.Errorf("failed to compose document: %w", err)
	}

	return r.writePlain("%s\n", doc)
}
