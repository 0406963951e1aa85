// submodule cmd contains command definitions
package main

import (
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/streamfront/internal/formatter"
)

// serveCommand runs the HTTP server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the server-rendering front end",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "Environment name; anything but \"production\" is development",
			},
		},
		Action: r.Serve,
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration file operations",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration as TOML with secrets masked",
				Action: r.ConfigShow,
			},
		},
	}
}

func identityFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "id", Usage: "User id (omit for a logged-out session)"},
		&cli.StringFlag{Name: "token", Usage: "Upstream bearer token"},
		&cli.StringFlag{Name: "email", Usage: "User email"},
		&cli.StringFlag{Name: "name", Usage: "User display name"},
	}
}

// stateCommand prints the preloaded state for a session
func stateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "state",
		Usage: "Build and print the preloaded state for a session",
		Flags: append(identityFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, csv, markdown or text",
				Value:   formatter.FormatJSON,
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		),
		Action: r.State,
	}
}

// renderCommand prints the composed document for a path
func renderCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render the HTML document for a path",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path", Value: "/"},
		},
		Flags:  identityFlags(),
		Action: r.Render,
	}
}

// apiCommand handles direct upstream API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the upstream movies API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the upstream API, prints the response",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "token",
						Usage: "Bearer token to send",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}
