package commands

import (
	"errors"
	"fmt"

	"github.com/SscSPs/compta_core/internal/core/domain"
	"github.com/SscSPs/compta_core/internal/utils/accounting"
	"github.com/spf13/cobra"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "classify <account-number> <nature>",
		Short:   "Check a declared nature against the PCG rules",
		Example: "  compta classify 401000 passif",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nature := domain.Nature(args[1])
			if !nature.IsValid() {
				return fmt.Errorf("unknown nature %q", args[1])
			}
			res := accounting.Classify(args[0], nature)
			if !res.Valid {
				return errors.New(res.Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}
