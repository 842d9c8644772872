package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTemplatesCmd(app *appContainer) *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the available infrastructure templates",
	}

	templatesListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all provider and deployment type combinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(app.DeployFormatter.FormatTemplateMatrix())
			return nil
		},
	}

	templatesCmd.AddCommand(templatesListCmd)
	return templatesCmd
}
