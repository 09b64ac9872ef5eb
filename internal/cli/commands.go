// AngelaMos | 2026
// commands.go

package cli

import (
	"fmt"

	"github.com/carterperez-dev/mindtrack/internal/analytics"
	"github.com/carterperez-dev/mindtrack/internal/migration"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	runner, err := migration.ForDriver(ctx.DB, ctx.Logger)
	if err != nil {
		return err
	}

	applied, err := runner.Apply(ctx.Ctx)
	if err != nil {
		return err
	}

	version, err := runner.CurrentVersion(ctx.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "applied %d migration(s), schema at version %d\n", applied, version)
	return nil
}

type TipsCmd struct {
	Habit string `arg:"" help:"Habit name to look up tips for."`
}

func (c *TipsCmd) Run(ctx *Context) error {
	tips, err := analytics.Tips(c.Habit)
	if err != nil {
		return err
	}

	for _, tip := range tips {
		fmt.Fprintf(ctx.Out, "- %s\n", tip)
	}
	return nil
}

type InsightsCmd struct {
	User string `required:"" help:"User id or email."`
}

func (c *InsightsCmd) Run(ctx *Context) error {
	userID, err := ctx.resolveUser(c.User)
	if err != nil {
		return err
	}

	insights, err := ctx.Analytics.Insights(ctx.Ctx, userID)
	if err != nil {
		return err
	}

	return ctx.printJSON(insights)
}

type SuggestCmd struct {
	User     string   `required:"" help:"User id or email."`
	Existing []string `help:"Habit names to exclude, comma separated." sep:","`
	Limit    int      `help:"Number of suggestions." default:"3"`
}

func (c *SuggestCmd) Run(ctx *Context) error {
	userID, err := ctx.resolveUser(c.User)
	if err != nil {
		return err
	}

	suggestions, err := ctx.Analytics.Suggestions(ctx.Ctx, userID, c.Existing, c.Limit)
	if err != nil {
		return err
	}

	return ctx.printJSON(suggestions)
}

type StatsCmd struct {
	User  string `required:"" help:"User id or email."`
	Habit string `required:"" help:"Habit id."`
	Days  int    `help:"Window in days." default:"7"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	userID, err := ctx.resolveUser(c.User)
	if err != nil {
		return err
	}

	stats, err := ctx.Analytics.HabitStats(ctx.Ctx, userID, c.Habit, c.Days)
	if err != nil {
		return err
	}

	return ctx.printJSON(stats)
}
