package cmd

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"bugtrack/internal/bootstrap/config"
	"bugtrack/internal/bootstrap/logging"
	"bugtrack/internal/client"
	"bugtrack/internal/errs"
	"bugtrack/internal/usecase/console"
)

// The console talks to the server over HTTP only; it never opens the
// database, so it bootstraps config directly instead of via withApp.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive bug tracking console",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		cfg, err := config.Load(ctx, cfgFile)
		if err != nil {
			return errs.Wrap(err, "load config")
		}

		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")

		model := console.NewModel(ctx, client.New(cfg.Client), console.Options{
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run console")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().Duration("refresh-interval", 5*time.Second, "Auto refresh interval")
}
