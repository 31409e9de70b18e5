package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/adapters/ipresolver"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/ports"
	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/storage/ec2pl"
)

type ctxKey string

const depsKey ctxKey = "deps"

// deps — коллабораторы, общие для всех команд.
type deps struct {
	repo     ports.PrefixListRepo
	resolver ports.IPResolver
}

var (
	region       string
	prefixListID string
	entryTag     string
	ipServiceURL string
	cidrSuffix   int
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "plctl",
		Short: "Prefix list updater admin CLI",
		Example: `	plctl --prefix-list-id pl-0123456789abcdef0 entries list
	plctl --prefix-list-id pl-0123456789abcdef0 entries prune
	plctl ip
	plctl --prefix-list-id pl-0123456789abcdef0 sync`,
		// Создаём коллабораторов и кладём их в context перед выполнением любой команды
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// тесты кладут фейки в context заранее
			if _, ok := cmd.Context().Value(depsKey).(*deps); ok {
				return nil
			}

			repo, err := ec2pl.New(cmd.Context(), region)
			if err != nil {
				return err
			}

			d := &deps{
				repo:     repo,
				resolver: ipresolver.New(ipServiceURL, 10*time.Second),
			}
			cmd.SetContext(context.WithValue(cmd.Context(), depsKey, d))

			return nil
		},
	}

	root.PersistentFlags().StringVar(
		&region,
		"region",
		os.Getenv("AWS_REGION"),
		"AWS region (or AWS_REGION)",
	)
	root.PersistentFlags().StringVar(
		&prefixListID,
		"prefix-list-id",
		getenv("PLU_MONITOR__PREFIX_LIST_ID", ""),
		"Managed prefix list ID (or PLU_MONITOR__PREFIX_LIST_ID)",
	)
	root.PersistentFlags().StringVar(
		&entryTag,
		"description",
		getenv("PLU_MONITOR__ENTRY_DESCRIPTION", "Auto-updated host IP"),
		"Entry description marking entries owned by the updater",
	)
	root.PersistentFlags().StringVar(
		&ipServiceURL,
		"ip-service",
		getenv("PLU_IP_SERVICE__URL", "https://api.ipify.org"),
		"IP detection service URL",
	)
	root.PersistentFlags().IntVar(
		&cidrSuffix,
		"cidr-suffix",
		32,
		"CIDR suffix for the host address",
	)

	root.AddCommand(newIPCmd())
	root.AddCommand(newEntriesCmd())
	root.AddCommand(newSyncCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func getDeps(cmd *cobra.Command) *deps {
	d, _ := cmd.Context().Value(depsKey).(*deps)
	return d
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
