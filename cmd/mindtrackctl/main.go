// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/carterperez-dev/mindtrack/internal/cli"
	"github.com/carterperez-dev/mindtrack/internal/config"
	"github.com/carterperez-dev/mindtrack/internal/core"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"config.yaml"`

	Migrate  cli.MigrateCmd  `cmd:"" help:"Apply pending database migrations."`
	Tips     cli.TipsCmd     `cmd:"" help:"Show tips for a habit name."`
	Insights cli.InsightsCmd `cmd:"" help:"Generate insights for a user."`
	Suggest  cli.SuggestCmd  `cmd:"" help:"Suggest new habits for a user."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show completion stats for a habit."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("mindtrackctl"),
		kong.Description("Operator tooling for the MindTrack API"),
		kong.UsageOnError(),
		kong.Vars{"version": "v1.0.0"},
	)

	if err := run(kctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context) error {
	ctx := context.Background()

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	appCtx := cli.NewContext(ctx, db.DB, cfg.App.Location(), logger, os.Stdout)
	return kctx.Run(appCtx)
}
