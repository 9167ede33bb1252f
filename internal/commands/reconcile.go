package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/spf13/cobra"
)

func newReconcileCommand(env Env, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Lettrage: reconcile and unreconcile movements",
	}
	cmd.AddCommand(
		newReconcileManualCommand(env, opts),
		newReconcileAutoCommand(env, opts),
		newReconcileUndoCommand(env, opts),
	)
	return cmd
}

func newReconcileManualCommand(env Env, opts *rootOptions) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:     "manual <movement-id> <movement-id>...",
		Short:   "Reconcile a zero-sum set of movements of one account",
		Example: "  compta reconcile manual 12 15 --code AB",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid movement id %q", a)
				}
				ids = append(ids, id)
			}

			return withServices(cmd, env, func(svc *portssvc.ServiceContainer) error {
				res, err := svc.Reconciliation.Reconcile(cmd.Context(), ids, code, opts.actor())
				if res != nil {
					fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "code to assign (next free code when empty)")
	return cmd
}

func newReconcileAutoCommand(env Env, opts *rootOptions) *cobra.Command {
	var scope domain.ReconciliationScope
	var thirdParty int64

	cmd := &cobra.Command{
		Use:     "auto",
		Short:   "Pair opposite movements of equal amount on one account",
		Example: "  compta reconcile auto --company 1 --fiscal-year 3 --account 411000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("third-party") {
				scope.ThirdPartyID = &thirdParty
			}

			return withServices(cmd, env, func(svc *portssvc.ServiceContainer) error {
				res, err := svc.Reconciliation.AutoReconcile(cmd.Context(), scope, opts.actor())
				if res != nil && len(res.Codes) > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "codes:", strings.Join(res.Codes, " "))
				}
				if res != nil {
					fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				}
				return err
			})
		},
	}
	cmd.Flags().Int64Var(&scope.CompanyID, "company", 0, "company id")
	cmd.Flags().Int64Var(&scope.FiscalYearID, "fiscal-year", 0, "fiscal year id")
	cmd.Flags().StringVar(&scope.AccountNumber, "account", "", "account number")
	cmd.Flags().Int64Var(&thirdParty, "third-party", 0, "restrict to one third party")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("fiscal-year")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newReconcileUndoCommand(env Env, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "undo <code>",
		Short:   "Clear a reconciliation code",
		Example: "  compta reconcile undo AB",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, env, func(svc *portssvc.ServiceContainer) error {
				res, err := svc.Reconciliation.Unreconcile(cmd.Context(), args[0], opts.actor())
				if res != nil {
					fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				}
				return err
			})
		},
	}
}
