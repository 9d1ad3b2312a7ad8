package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ellavondegurechaff/hearth/internal/gateways/csvfile"
	"github.com/spf13/cobra"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate [file]",
	Short: "upgrade a legacy reminders csv to the current layout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path = cfg.Reminders.Path
		}

		n, err := csvfile.MigrateLegacy(path)
		if err != nil {
			slog.Error("Migration failed", slog.String("type", "error"), slog.Any("error", err))
			return err
		}
		if n == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already up to date\n", path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %d reminders in %s\n", n, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
