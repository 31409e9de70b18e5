package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/domain"
)

func newIPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ip",
		Short: "Fetch and print the current external IPv4 address",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := getDeps(cmd).resolver.Resolve(cmd.Context())
			if err != nil {
				return err
			}

			addr, err := domain.ParseIPv4(raw)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), addr.String())
			return nil
		},
	}
}
