package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"multicloud/internal/flags"
	"multicloud/internal/ui/picker"
	"multicloud/internal/ui/prompt"
	"multicloud/pkg/provision"
)

type deployFlags struct {
	provider       string
	deploymentType string
	appName        string
	region         string
	location       string
	project        string
	zone           string
	image          string
	force          bool
}

func registerDeployFlags(cmd *cobra.Command, cmdFlags *deployFlags) {
	cmd.Flags().StringVarP(&cmdFlags.provider, flags.Provider, flags.ProviderShort, "", "Target cloud provider (aws, azure, gcp)")
	cmd.Flags().StringVarP(&cmdFlags.deploymentType, flags.Type, flags.TypeShort, "", "Deployment type for the provider (e.g. lambda, eks, aks, gke)")
	cmd.Flags().StringVarP(&cmdFlags.appName, flags.AppName, flags.AppNameShort, "", "Application name used for resource naming")
	cmd.Flags().StringVarP(&cmdFlags.region, flags.Region, flags.RegionShort, "", "Region for aws and gcp targets")
	cmd.Flags().StringVarP(&cmdFlags.location, flags.Location, flags.LocationShort, "", "Location for azure targets")
	cmd.Flags().StringVar(&cmdFlags.project, flags.Project, "", "GCP project ID")
	cmd.Flags().StringVar(&cmdFlags.zone, flags.Zone, "", "GCP compute zone")
	cmd.Flags().StringVarP(&cmdFlags.image, flags.Image, flags.ImageShort, "", "Container image applied to cluster manifests")
}

// Builds the raw input map the resolver consumes. Only explicitly provided
// values are included so persisted defaults still apply.
func (f *deployFlags) input(interactive bool) (map[string]string, error) {
	provider := f.provider
	if provider == "" && interactive {
		chosen, err := picker.Select("Select a provider", provision.ProviderNames())
		if err != nil {
			return nil, err
		}
		provider = chosen
	}

	deploymentType := f.deploymentType
	if deploymentType == "" && interactive && provider != "" {
		p, err := provision.ParseProvider(provider)
		if err != nil {
			return nil, err
		}
		chosen, err := picker.Select(fmt.Sprintf("Select a deployment type for %s", p), provision.DeploymentTypes(p))
		if err != nil {
			return nil, err
		}
		deploymentType = chosen
	}

	input := make(map[string]string)
	for key, value := range map[string]string{
		"provider":       provider,
		"deploymentType": deploymentType,
		"appName":        f.appName,
		"region":         f.region,
		"location":       f.location,
		"project":        f.project,
		"zone":           f.zone,
		"image":          f.image,
	} {
		if value != "" {
			input[key] = value
		}
	}
	return input, nil
}

func newDeployCmd(app *appContainer) *cobra.Command {
	cmdFlags := deployFlags{}

	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision the API onto a cloud provider",
		Long: `Validates the deployment configuration, selects the matching infrastructure
template, and provisions it. For managed Kubernetes targets (eks, aks, gke)
the workload and service manifests are applied after the infrastructure is up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := cmdFlags.input(stdinIsTerminal())
			if err != nil {
				return err
			}

			result, err := app.DeployService.Deploy(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Println(app.DeployFormatter.FormatDeploySummary(result.Config, result.Template, result.ManifestsApplied))
			return nil
		},
	}
	registerDeployFlags(deployCmd, &cmdFlags)

	return deployCmd
}

func newPreviewCmd(app *appContainer) *cobra.Command {
	cmdFlags := deployFlags{}

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the changes a deployment would make",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := cmdFlags.input(stdinIsTerminal())
			if err != nil {
				return err
			}

			result, err := app.DeployService.Preview(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Println(result.Output)
			return nil
		},
	}
	registerDeployFlags(previewCmd, &cmdFlags)

	return previewCmd
}

func newDestroyCmd(app *appContainer) *cobra.Command {
	cmdFlags := deployFlags{}

	destroyCmd := &cobra.Command{
		Use:   "destroy",
		Short: "Tear down previously provisioned infrastructure",
		Long: `Destroys all infrastructure of a deployment. This is a separate, manual
operation: deploy never rolls anything back on its own. You will be asked to
type the application name unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := cmdFlags.input(stdinIsTerminal())
			if err != nil {
				return err
			}

			dc, err := app.DeployService.Resolve(input)
			if err != nil {
				return err
			}

			if !cmdFlags.force {
				confirmed, err := prompt.NewStandardPrompter(os.Stdin, os.Stdout).ConfirmDestroy(dc.AppName, string(dc.Provider))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Destroy canceled.")
					return nil
				}
			}

			if _, err := app.DeployService.Destroy(cmd.Context(), input); err != nil {
				return err
			}

			fmt.Printf("Destroyed %s on provider %s.\n", dc.AppName, dc.Provider)
			return nil
		},
	}
	registerDeployFlags(destroyCmd, &cmdFlags)
	destroyCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Skip the confirmation prompt")

	return destroyCmd
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
