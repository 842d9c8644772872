package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"multicloud/internal/flags"
)

func newRootCmd(app *appContainer) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "multicloud",
		Short: "Multicloud deploys one containerized API to AWS, Azure, or GCP.",
		Long: `A unified CLI to provision the Multi-Cloud API onto a cloud provider.
Pick a provider and a deployment type (serverless function, virtual machine,
or managed Kubernetes) and multicloud drives the infrastructure tooling for
you: it validates the configuration, selects the matching infrastructure
template, and hands it to pulumi (and kubectl for cluster targets).`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				app.LogLevel.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&debug, flags.Debug, flags.DebugShort, false, "Enable verbose logging")

	rootCmd.AddCommand(
		newDeployCmd(app),
		newPreviewCmd(app),
		newDestroyCmd(app),
		newTemplatesCmd(app),
		newConfigCmd(app),
		newBackendCmd(app),
		newDoctorCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}

func Execute(app *appContainer) {
	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
