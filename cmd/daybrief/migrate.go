package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mstanton/daybrief/internal/cli"
	"github.com/mstanton/daybrief/internal/common"
	"github.com/mstanton/daybrief/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run embedded store migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadPipelineConfig()
			if err != nil {
				return err
			}

			store, err := storage.NewStore(cfg.DBPath)
			if err != nil {
				return common.NewUserError("failed to open store", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(ctx); err != nil {
				return common.NewUserError("migration failed", err)
			}

			version, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			slog.Info(cli.FormatSuccess(fmt.Sprintf("Store at schema version %d", version)))
			return nil
		},
	}
}
