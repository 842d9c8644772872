package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"multicloud/internal/api"
	"multicloud/internal/flags"
)

func newServeCmd(app *appContainer) *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Multi-Cloud API locally",
		Long: `Serves the same two endpoints the deployed container exposes ('/' and
'/health') on the local machine. Useful for verifying the workload before
provisioning anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := addr
			if listenAddr == "" {
				listenAddr = app.Config.API.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return api.New(listenAddr, app.Logger).Run(ctx)
		},
	}
	serveCmd.Flags().StringVar(&addr, flags.Addr, "", "Listen address (default from api.addr config, else :8080)")

	return serveCmd
}
