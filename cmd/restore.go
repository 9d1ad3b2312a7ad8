package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ellavondegurechaff/hearth/hearth/services"
	"github.com/ellavondegurechaff/hearth/internal/gateways/csvfile"
	"github.com/spf13/cobra"
)

var overwrite bool

var restoreCMD = &cobra.Command{
	Use:   "restore",
	Short: "download the latest reminders snapshot from spaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Spaces.Enabled() {
			return errors.New("spaces is not configured")
		}

		path := cfg.Reminders.Path
		if _, err := os.Stat(path); err == nil && !overwrite {
			return fmt.Errorf("%s already exists, pass --overwrite to replace it", path)
		}

		spaces, err := services.NewSpacesService(ctx, cfg.Spaces.Key, cfg.Spaces.Secret, cfg.Spaces.Region, cfg.Spaces.Bucket, cfg.Spaces.Prefix)
		if err != nil {
			return err
		}
		data, err := spaces.Download(ctx, filepath.Base(path))
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		// opening the store upgrades a legacy snapshot in place
		if _, err := csvfile.NewReminderStore(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored %s from %s\n", path, spaces.GetBucket())
		return nil
	},
}

func init() {
	restoreCMD.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing reminders file")
	rootCmd.AddCommand(restoreCMD)
}
