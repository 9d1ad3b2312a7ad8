package cmd

import (
	"context"
	"log/slog"

	"github.com/ellavondegurechaff/hearth/hearth"
	"github.com/ellavondegurechaff/hearth/hearth/logger"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "hearthctl",
	Short:         "maintenance tasks for the hearth bot",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(slog.New(logger.NewHandler(logger.Options{
			Console: cmd.ErrOrStderr(),
		})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func loadConfig() (*hearth.Config, error) {
	return hearth.LoadConfig(configPath)
}
