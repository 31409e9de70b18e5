package main

import (
	"github.com/spf13/cobra"

	"github.com/kariudo/aws-vpc-prefix-list-updater/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion()
		},
	}
}
