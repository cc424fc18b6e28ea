package main

import (
	"github.com/spf13/cobra"

	"github.com/go-petr/bank-insights/internal/reportservice"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available reports and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), reportservice.New(nil, nil).Reports())
		},
	}
}
