package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *appContainer) *cobra.Command {
	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and provider credentials",
		Long: `Probes the required external tools (pulumi, kubectl) and the credentials of
every configured provider, then reports each result. Exits non-zero when any
check fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := app.DoctorService.Run(cmd.Context())

			failed := 0
			for _, result := range results {
				fmt.Println(app.DeployFormatter.FormatCheck(result.Name, result.OK, result.Detail))
				if !result.OK {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}

	return doctorCmd
}
