package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/dto"
	"github.com/spf13/cobra"
)

func newValidateCommand(env Env) *cobra.Command {
	return &cobra.Command{
		Use:     "validate <entry.json>",
		Short:   "Validate a proposed entry without booking it",
		Long:    "Reads a JSON entry (fiscalYearID, reference, label, entryDate, movements) and runs the entry checks.",
		Example: "  compta validate facture-001.json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading entry: %w", err)
			}
			var req dto.ValidateEntryRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return fmt.Errorf("parsing entry: %w", err)
			}
			candidate, err := dto.ToCandidate(req.EntryHeader, req.Movements)
			if err != nil {
				return err
			}

			return withServices(cmd, env, func(svc *portssvc.ServiceContainer) error {
				res, err := svc.Entry.ValidateEntry(cmd.Context(), req.FiscalYearID, candidate)
				if err != nil {
					return err
				}
				if !res.Valid {
					return errors.New(res.Message)
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				return nil
			})
		},
	}
}
