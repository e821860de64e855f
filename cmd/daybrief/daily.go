package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

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

func dailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Generate the daily directive and briefing",
		Long: `Fetch one day of calendar events and unread email, classify every
meeting, gather preparation context, analyze free time, and write the
directive plus the rendered document set.`,
		RunE: runDaily,
	}

	cmd.Flags().StringP("date", "d", "", "Target date (format: 2006-01-02, default today)")
	cmd.Flags().StringP("output", "o", "", "Output directory (overrides config)")

	_ = viper.BindPFlag("daily.date", cmd.Flags().Lookup("date"))
	_ = viper.BindPFlag("daily.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runDaily(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}
	if out := viper.GetString("daily.output"); out != "" {
		cfg.OutputDir = out
	}

	day, err := targetDate(viper.GetString("daily.date"))
	if err != nil {
		return err
	}

	slog.Info(cli.FormatTitle(fmt.Sprintf("Building directive for %s", day.Format("2006-01-02"))))

	eventSource := buildEventSource()
	if eventSource == nil {
		return common.NewUserError(
			"no calendar source configured (set sources.icsPath or sources.fixturePath)",
			common.ErrMissingConfig)
	}

	events, err := eventSource.Events(ctx, day, day.AddDate(0, 0, 1))
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

	classified := make([]model.ClassifiedEvent, 0, len(events))
	for _, event := range events {
		classified = append(classified, model.ClassifiedEvent{
			Event:          event,
			Classification: meetingClassifier.Classify(event),
		})
	}

	now := time.Now()
	contexts := gatherContexts(ctx, cfg, store, classified, now)

	analyzer := gaps.NewAnalyzer(cfg.Working, cfg.MinGapMinutes)
	freeBlocks := analyzer.FreeBlocks(day, gaps.EventIntervals(events))

	emails := classifyMessages(ctx, cfg, buildMessageSource(), classified)

	assembler := directive.NewAssembler(cfg)
	d := assembler.AssembleDay(directive.DayInput{
		Date:     day,
		Events:   classified,
		Contexts: contexts,
		Actions:  loadOpenActions(ctx, store),
		Gaps:     freeBlocks,
		Emails:   emails,
	})

	directivePath := filepath.Join(cfg.OutputDir, "directive.json")
	if err := directive.Save(d, directivePath); err != nil {
		return common.NewUserError("failed to write directive", err)
	}

	renderer := deliver.NewRenderer(cfg.OutputDir)
	if err := renderer.Render(d); err != nil {
		// Partial output may still be useful; surface the failure but do
		// not hide what was written.
		slog.Warn(cli.FormatWarning(fmt.Sprintf("some documents failed to render: %v", err)))
	}

	slog.Info(cli.RenderRunSummary(d, cfg.OutputDir))
	return nil
}

// targetDate parses the --date flag, defaulting to today at local
// midnight.
func targetDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(
			fmt.Sprintf("invalid date %q, expected format 2006-01-02", raw), err)
	}
	return day, nil
}
