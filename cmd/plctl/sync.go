package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/app"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/config"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/domain"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run a single reconciliation cycle",
		// Результат цикла — не ошибка команды: как и у демона в режиме once,
		// неудавшийся цикл печатается, но процесс завершается нулём.
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefixListID == "" {
				return errPrefixListIDRequired
			}
			d := getDeps(cmd)

			monitor := app.NewMonitorService(d.resolver, d.repo, &config.Monitor{
				PrefixListID:     prefixListID,
				EntryDescription: entryTag,
				CIDRSuffix:       cidrSuffix,
			})

			out := monitor.Reconcile(cmd.Context())
			switch out.Kind {
			case domain.OutcomeUpdated:
				fmt.Fprintf(cmd.OutOrStdout(), "updated: %s (replaced %d entries)\n", out.CIDR, out.Removed)
			case domain.OutcomeAlreadyPresent:
				fmt.Fprintf(cmd.OutOrStdout(), "already present: %s\n", out.CIDR)
			case domain.OutcomeUnchanged:
				// Недостижимо для свежего MonitorService (первый цикл всегда
				// считается изменением), но случай обрабатываем.
				fmt.Fprintln(cmd.OutOrStdout(), "unchanged")
			case domain.OutcomeFailed:
				fmt.Fprintf(cmd.OutOrStdout(), "failed: %v\n", out.Err)
			}
			return nil
		},
	}
}
