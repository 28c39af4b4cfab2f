// Package command defines the codepanel CLI surface.
package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v2"

	"codepanel/internal/config"
)

type Deps struct {
	LoadConfig   func() config.Config
	RunServe     func(context.Context, config.Config) error
	RunInstall   func(context.Context, config.Config) error
	ListRecents  func(context.Context, config.Config, int) error
	ClearRecents func(context.Context, config.Config) error
}

func BuildApp(deps Deps) *cli.App {
	return &cli.App{
		Name:  "codepanel",
		Usage: "editor bridge for the agent panel",
		Action: func(ctx *cli.Context) error {
			return runServe(ctx.Context, deps, loadConfig(deps))
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the local bridge",
				Action: func(ctx *cli.Context) error {
					return runServe(ctx.Context, deps, loadConfig(deps))
				},
			},
			{
				Name:  "install-extension",
				Usage: "install the bundled editor extension if an editor is detected",
				Action: func(ctx *cli.Context) error {
					return runInstall(ctx.Context, deps, loadConfig(deps))
				},
			},
			{
				Name:  "recents",
				Usage: "inspect recently used workspaces",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "list recent workspaces",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum entries to show"},
						},
						Action: func(ctx *cli.Context) error {
							return listRecents(ctx.Context, deps, loadConfig(deps), ctx.Int("limit"))
						},
					},
					{
						Name:  "clear",
						Usage: "remove all recent workspaces",
						Action: func(ctx *cli.Context) error {
							return clearRecents(ctx.Context, deps, loadConfig(deps))
						},
					},
				},
			},
		},
	}
}

func loadConfig(deps Deps) config.Config {
	if deps.LoadConfig != nil {
		return deps.LoadConfig()
	}
	return config.LoadConfig()
}

func runServe(ctx context.Context, deps Deps, cfg config.Config) error {
	if deps.RunServe == nil {
		return errors.New("serve runner is not configured")
	}
	return deps.RunServe(ctx, cfg)
}

func runInstall(ctx context.Context, deps Deps, cfg config.Config) error {
	if deps.RunInstall == nil {
		return errors.New("install runner is not configured")
	}
	return deps.RunInstall(ctx, cfg)
}

func listRecents(ctx context.Context, deps Deps, cfg config.Config, limit int) error {
	if deps.ListRecents == nil {
		return errors.New("recents lister is not configured")
	}
	return deps.ListRecents(ctx, cfg, limit)
}

func clearRecents(ctx context.Context, deps Deps, cfg config.Config) error {
	if deps.ClearRecents == nil {
		return errors.New("recents clearer is not configured")
	}
	return deps.ClearRecents(ctx, cfg)
}
