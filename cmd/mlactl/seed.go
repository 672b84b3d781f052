package main

import (
	"fmt"
	"os"

	"github.com/rpggio/mlaconnect/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load a YAML fixture",
		Long: `Load constituencies, grievances, projects, polls and users from a YAML
fixture. Rows go through the same services the server uses, so every
record is validated and logged in the activity feed.

The fixture names its tenant. --tenant overrides it when given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			fixture, err := seed.Parse(file)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tenant") {
				fixture.Tenant = opts.tenant
			}

			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.DB.Close()

			sum, err := seed.NewLoader(a.SeedServices(), opts.logger).Load(cmd.Context(), fixture)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"seeded tenant %s: %d constituencies, %d grievances, %d projects, %d polls, %d users\n",
				fixture.Tenant, sum.Constituencies, sum.Grievances, sum.Projects, sum.Polls, sum.Users)
			return err
		},
	}
}
