package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"multicloud/internal/flags"
)

func newBackendCmd(app *appContainer) *cobra.Command {
	backendCmd := &cobra.Command{
		Use:   "backend",
		Short: "Manage the infrastructure state backend",
	}

	var (
		provider string
		bucket   string
	)

	backendInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the state bucket for a provider if it does not exist",
		Long: `Ensures the bucket (or container, on azure) that holds infrastructure state
exists for the given provider. Safe to run repeatedly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.DeployService.InitBackend(cmd.Context(), provider, bucket); err != nil {
				return err
			}
			fmt.Printf("State backend '%s' ready on provider %s.\n", bucket, provider)
			return nil
		},
	}
	backendInitCmd.Flags().StringVarP(&provider, flags.Provider, flags.ProviderShort, "", "Target cloud provider (aws, azure, gcp)")
	backendInitCmd.Flags().StringVarP(&bucket, flags.Bucket, flags.BucketShort, "", "Name of the state bucket or container")
	_ = backendInitCmd.MarkFlagRequired(flags.Provider)
	_ = backendInitCmd.MarkFlagRequired(flags.Bucket)

	backendCmd.AddCommand(backendInitCmd)
	return backendCmd
}
