package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/go-petr/bank-insights/internal/domain"
)

type runFlags struct {
	days      int
	months    int
	n         int
	threshold string
	accountID int64
}

func (f runFlags) params() (domain.ReportParams, error) {
	p := domain.ReportParams{
		Days:      f.days,
		Months:    f.months,
		N:         f.n,
		AccountID: f.accountID,
	}

	if f.threshold != "" {
		threshold, err := decimal.NewFromString(f.threshold)
		if err != nil {
			return p, fmt.Errorf("%w: threshold %q is not a decimal", domain.ErrInvalidParameter, f.threshold)
		}
		p.Threshold = threshold
	}

	return p, nil
}

func newRunCmd(root *rootFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <report> [report...]",
		Short: "Run one or more reports",
		Long: `Run the named reports and print their rows as JSON.

Several reports named at once share the same parameters and are evaluated
against a single read of the tables. Use "bankreport list" for the names.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := flags.params()
			if err != nil {
				return err
			}

			service, ctx, done, err := root.service(cmd)
			if err != nil {
				return err
			}
			defer done()

			if len(args) == 1 {
				res, err := service.Run(ctx, args[0], params)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			}

			reqs := make([]domain.ReportRequest, len(args))
			for i, name := range args {
				reqs[i] = domain.ReportRequest{Name: name, Params: params}
			}

			results, err := service.RunBatch(ctx, reqs)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVar(&flags.days, "days", 0, "Trailing window in days")
	cmd.Flags().IntVar(&flags.months, "months", 0, "Trailing window in calendar months")
	cmd.Flags().IntVarP(&flags.n, "n", "n", 0, "Number of customers to return")
	cmd.Flags().StringVar(&flags.threshold, "threshold", "", "Withdrawal amount threshold")
	cmd.Flags().Int64Var(&flags.accountID, "account-id", 0, "Restrict to one account (0 means all)")

	return cmd
}
