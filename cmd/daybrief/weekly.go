package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mstanton/daybrief/internal/classify"
	"github.com/mstanton/daybrief/internal/cli"
	"github.com/mstanton/daybrief/internal/common"
	"github.com/mstanton/daybrief/internal/deliver"
	"github.com/mstanton/daybrief/internal/directive"
	"github.com/mstanton/daybrief/internal/gaps"
	"github.com/mstanton/daybrief/internal/model"
)

func weeklyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Generate the weekly directive and briefing",
		Long: `Fetch seven days of calendar events starting from the given date,
classify every meeting, gather preparation context, and write the weekly
directive plus the rendered document set. Weekly runs skip the inbox.`,
		RunE: runWeekly,
	}

	cmd.Flags().StringP("start", "s", "", "Week start date (format: 2006-01-02, default next Monday)")
	cmd.Flags().StringP("output", "o", "", "Output directory (overrides config)")

	_ = viper.BindPFlag("weekly.start", cmd.Flags().Lookup("start"))
	_ = viper.BindPFlag("weekly.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runWeekly(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}
	if out := viper.GetString("weekly.output"); out != "" {
		cfg.OutputDir = out
	}

	start, err := weekStart(viper.GetString("weekly.start"))
	if err != nil {
		return err
	}
	end := start.AddDate(0, 0, 7)

	slog.Info(cli.FormatTitle(fmt.Sprintf("Building weekly directive for week of %s", start.Format("2006-01-02"))))

	eventSource := buildEventSource()
	if eventSource == nil {
		return common.NewUserError(
			"no calendar source configured (set sources.icsPath or sources.fixturePath)",
			common.ErrMissingConfig)
	}

	events, err := eventSource.Events(ctx, start, end)
	if err != nil {
		return common.NewUserError("failed to fetch calendar events", err)
	}
	slog.Info("fetched events", "count", len(events))

	store := openStore(ctx, cfg)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	resolver := buildResolver(ctx, cfg, store)
	meetingClassifier := classify.NewMeetingClassifier(cfg, resolver)

	bar := progressbar.NewOptions(len(events),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying meetings..."),
	)

	classified := make([]model.ClassifiedEvent, 0, len(events))
	for _, event := range events {
		classified = append(classified, model.ClassifiedEvent{
			Event:          event,
			Classification: meetingClassifier.Classify(event),
		})
		_ = bar.Add(1)
	}
	fmt.Println()

	now := time.Now()
	contexts := gatherContexts(ctx, cfg, store, classified, now)

	// Gap analysis runs per day across the week.
	analyzer := gaps.NewAnalyzer(cfg.Working, cfg.MinGapMinutes)
	var freeBlocks []model.Gap
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		dayEnd := day.AddDate(0, 0, 1)
		var dayEvents []model.Event
		for _, e := range events {
			if !e.Start.Before(day) && e.Start.Before(dayEnd) {
				dayEvents = append(dayEvents, e)
			}
		}
		freeBlocks = append(freeBlocks, analyzer.FreeBlocks(day, gaps.EventIntervals(dayEvents))...)
	}

	assembler := directive.NewAssembler(cfg)
	d := assembler.AssembleWeek(directive.WeekInput{
		Start:    start,
		Events:   classified,
		Contexts: contexts,
		Actions:  loadOpenActions(ctx, store),
		Gaps:     freeBlocks,
	})

	directivePath := filepath.Join(cfg.OutputDir, "directive.json")
	if err := directive.Save(d, directivePath); err != nil {
		return common.NewUserError("failed to write directive", err)
	}

	renderer := deliver.NewRenderer(cfg.OutputDir)
	if err := renderer.Render(d); err != nil {
		slog.Warn(cli.FormatWarning(fmt.Sprintf("some documents failed to render: %v", err)))
	}

	slog.Info(cli.RenderRunSummary(d, cfg.OutputDir))
	return nil
}

// weekStart parses the --start flag, defaulting to the upcoming Monday
// (today when today is Monday).
func weekStart(raw string) (time.Time, error) {
	if raw != "" {
		start, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return time.Time{}, common.NewUserError(
				fmt.Sprintf("invalid start date %q, expected format 2006-01-02", raw), err)
		}
		return start, nil
	}

	now := time.Now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return day, nil
}
