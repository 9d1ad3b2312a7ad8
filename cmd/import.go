package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/hearth/hearth/database"
	"github.com/ellavondegurechaff/hearth/hearth/migration"
	"github.com/ellavondegurechaff/hearth/internal/gateways/csvfile"
	"github.com/spf13/cobra"
)

var batchSize int

var importCMD = &cobra.Command{
	Use:   "import [file]",
	Short: "copy reminders from a csv file into postgres",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path := cfg.Reminders.Path
		if len(args) == 1 {
			path = args[0]
		}

		source, err := csvfile.NewReminderStore(path)
		if err != nil {
			return err
		}

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			slog.Error("Failed to connect to database", slog.String("type", "db"), slog.Any("error", err))
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			return err
		}

		importer := migration.NewImporter(source, db)
		importer.SetBatchSize(batchSize)
		n, err := importer.Run(ctx)
		if err != nil {
			slog.Error("Import failed", slog.String("type", "db"), slog.Any("error", err))
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d reminders from %s\n", n, path)
		return nil
	},
}

func init() {
	importCMD.Flags().IntVar(&batchSize, "batch-size", 1000, "rows per COPY")
	rootCmd.AddCommand(importCMD)
}
