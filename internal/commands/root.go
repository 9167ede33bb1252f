// Package commands implements the compta operator CLI.
package commands

import (
	"context"
	"os"

	"github.com/SscSPs/compta_core/internal/core/domain"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/spf13/cobra"
)

// Env supplies the collaborators commands need. Services is called at most
// once per command run; the returned func releases what it opened.
type Env struct {
	Services func(ctx context.Context) (*portssvc.ServiceContainer, func(), error)
	Migrate  func(ctx context.Context) (bool, error)
}

type rootOptions struct {
	user string
	role string
}

func (o *rootOptions) actor() domain.Actor {
	return domain.Actor{UserID: o.user, Role: domain.Role(o.role)}
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(env Env) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "compta",
		Short: "Double-entry bookkeeping operations on the PCG ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.user, "user", os.Getenv("USER"), "user recorded in the audit trail")
	rootCmd.PersistentFlags().StringVar(&opts.role, "role", string(domain.RoleAccountant), "role of the user (ADMIN, COMPTABLE, LECTEUR)")

	rootCmd.AddCommand(
		newClassifyCommand(),
		newValidateCommand(env),
		newReconcileCommand(env, opts),
		newReportCommand(env, opts),
		newCloseCommand(env, opts),
		newMigrateCommand(env),
	)

	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	return rootCmd
}

// withServices opens the service container for the duration of run.
func withServices(cmd *cobra.Command, env Env, run func(svc *portssvc.ServiceContainer) error) error {
	svc, release, err := env.Services(cmd.Context())
	if err != nil {
		return err
	}
	defer release()
	return run(svc)
}
