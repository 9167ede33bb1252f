package commands

import (
	"fmt"

	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/spf13/cobra"
)

func newCloseCommand(env Env, opts *rootOptions) *cobra.Command {
	scope := &scopeFlags{}
	var checks bool

	cmd := &cobra.Command{
		Use:     "close",
		Short:   "Close a fiscal year",
		Example: "  compta close --company 1 --fiscal-year 3 --checks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, env, func(svc *portssvc.ServiceContainer) error {
				out := cmd.OutOrStdout()
				if checks {
					results, err := svc.Closing.RunConsistencyChecks(cmd.Context(), scope.companyID, scope.fiscalYearID)
					if err != nil {
						return err
					}
					failed := 0
					for _, c := range results {
						status := "ok"
						if !c.Passed {
							status = "FAILED"
							failed++
						}
						fmt.Fprintf(out, "%-32s %-6s %s\n", c.Name, status, c.Detail)
					}
					if failed > 0 {
						return fmt.Errorf("%d consistency check(s) failed, fiscal year not closed", failed)
					}
				}

				res, err := svc.Closing.CloseFiscalYear(cmd.Context(), scope.companyID, scope.fiscalYearID, opts.actor())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, res.Message)
				return nil
			})
		},
	}
	scope.bind(cmd)
	cmd.Flags().BoolVar(&checks, "checks", false, "run the consistency checks first and stop on failure")
	return cmd
}
