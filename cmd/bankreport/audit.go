package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errFindings = errors.New("data quality findings")

type auditFlags struct {
	failOnFindings bool
}

func newAuditCmd(root *rootFlags) *cobra.Command {
	flags := &auditFlags{}

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run every data quality check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, ctx, done, err := root.service(cmd)
			if err != nil {
				return err
			}
			defer done()

			findings, err := service.Audit(ctx)
			if err != nil {
				return err
			}

			if err := printJSON(cmd.OutOrStdout(), findings); err != nil {
				return err
			}

			if flags.failOnFindings && findings.Total() > 0 {
				return fmt.Errorf("%w: %d", errFindings, findings.Total())
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.failOnFindings, "fail-on-findings", false, "Exit with an error when any check reports a finding")

	return cmd
}
