package commands

import (
	"context"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/spf13/cobra"
)

type scopeFlags struct {
	companyID    int64
	fiscalYearID int64
}

func (f *scopeFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.companyID, "company", 0, "company id")
	cmd.Flags().Int64Var(&f.fiscalYearID, "fiscal-year", 0, "fiscal year id")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("fiscal-year")
}

func newReportCommand(env Env, opts *rootOptions) *cobra.Command {
	scope := &scopeFlags{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the statements of a fiscal year",
	}

	var compute bool
	balance := &cobra.Command{
		Use:   "balance",
		Short: "Trial balance (recomputed with --compute)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, env, func(svc *portssvc.ServiceContainer) error {
				var tb *domain.TrialBalance
				var err error
				if compute {
					tb, err = svc.Reporting.ComputeBalance(cmd.Context(), scope.companyID, scope.fiscalYearID, opts.actor())
				} else {
					tb, err = svc.Reporting.GetBalance(cmd.Context(), scope.companyID, scope.fiscalYearID)
				}
				if err != nil {
					return err
				}
				return printTrialBalance(cmd.OutOrStdout(), tb)
			})
		},
	}
	balance.Flags().BoolVar(&compute, "compute", false, "recompute before printing")

	subcommands := []*cobra.Command{
		balance,
		reportCommand(env, "income", "Income statement (compte de résultat)",
			func(ctx context.Context, svc *portssvc.ServiceContainer, cmd *cobra.Command) error {
				is, err := svc.Reporting.IncomeStatement(ctx, scope.companyID, scope.fiscalYearID)
				if err != nil {
					return err
				}
				return printIncomeStatement(cmd.OutOrStdout(), is)
			}),
		reportCommand(env, "sheet", "Balance sheet (bilan)",
			func(ctx context.Context, svc *portssvc.ServiceContainer, cmd *cobra.Command) error {
				bs, err := svc.Reporting.BalanceSheet(ctx, scope.companyID, scope.fiscalYearID)
				if err != nil {
					return err
				}
				return printBalanceSheet(cmd.OutOrStdout(), bs)
			}),
		reportCommand(env, "vat", "VAT recap",
			func(ctx context.Context, svc *portssvc.ServiceContainer, cmd *cobra.Command) error {
				recap, err := svc.Reporting.VATRecap(ctx, scope.companyID, scope.fiscalYearID)
				if err != nil {
					return err
				}
				return printVATRecap(cmd.OutOrStdout(), recap)
			}),
	}
	for _, sub := range subcommands {
		scope.bind(sub)
		cmd.AddCommand(sub)
	}
	return cmd
}

func reportCommand(env Env, use, short string, run func(context.Context, *portssvc.ServiceContainer, *cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, env, func(svc *portssvc.ServiceContainer) error {
				return run(cmd.Context(), svc, cmd)
			})
		},
	}
}
