package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bugtrack/internal/bootstrap"
	"bugtrack/internal/bootstrap/logging"
	"bugtrack/internal/errs"
	"bugtrack/internal/transport/httpapi"
	"bugtrack/internal/usecase/tracker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bug tracking REST API server",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *tracker.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server := httpapi.NewServer(app.Config.Server, svc)
		if err := server.Run(signalCtx); err != nil {
			return errs.Wrap(err, "run api server")
		}

		logging.Info(ctx, "server stopped")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
