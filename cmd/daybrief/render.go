package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mstanton/daybrief/internal/cli"
	"github.com/mstanton/daybrief/internal/common"
	"github.com/mstanton/daybrief/internal/deliver"
	"github.com/mstanton/daybrief/internal/directive"
)

func renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Re-render documents from an existing directive",
		Long: `Read a previously written (optionally enriched) directive and expand
it into the final document set. Running render twice on the same
directive reproduces the same file set with no stale leftovers.`,
		RunE: runRender,
	}

	cmd.Flags().String("directive", "", "Directive file (default: <output>/directive.json)")
	cmd.Flags().StringP("output", "o", "", "Output directory (overrides config)")

	_ = viper.BindPFlag("render.directive", cmd.Flags().Lookup("directive"))
	_ = viper.BindPFlag("render.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runRender(_ *cobra.Command, _ []string) error {
	cfg, err := loadPipelineConfig()
	if err != nil {
		return err
	}
	if out := viper.GetString("render.output"); out != "" {
		cfg.OutputDir = out
	}

	path := viper.GetString("render.directive")
	if path == "" {
		path = filepath.Join(cfg.OutputDir, "directive.json")
	}

	d, err := directive.Load(path)
	if err != nil {
		return common.NewUserError("failed to load directive", err)
	}

	renderer := deliver.NewRenderer(cfg.OutputDir)
	if err := renderer.Render(d); err != nil {
		slog.Warn(cli.FormatWarning(fmt.Sprintf("some documents failed to render: %v", err)))
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Rendered %s directive for %s", d.Scope, d.Date)))
	return nil
}
