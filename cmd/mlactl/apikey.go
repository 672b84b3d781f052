package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAPIKeyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys",
	}

	var description string
	add := &cobra.Command{
		Use:   "add <token>",
		Short: "Register a bearer token for the tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer a.DB.Close()

			if err := a.APIKeys.Add(cmd.Context(), args[0], opts.tenant, description); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added API key for tenant %s\n", opts.tenant)
			return err
		},
	}
	add.Flags().StringVar(&description, "description", "", "note stored with the key")

	cmd.AddCommand(add)
	return cmd
}
