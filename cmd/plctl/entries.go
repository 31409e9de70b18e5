package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errPrefixListIDRequired = errors.New("--prefix-list-id is required")

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Inspect and clean owned prefix list entries",
	}

	cmd.AddCommand(
		newEntriesListCmd(),
		newEntriesPruneCmd(),
	)

	return cmd
}

func newEntriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the list version and owned entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefixListID == "" {
				return errPrefixListIDRequired
			}
			d := getDeps(cmd)

			version, err := d.repo.GetVersion(cmd.Context(), prefixListID)
			if err != nil {
				return err
			}

			owned, err := d.repo.GetOwnedEntries(cmd.Context(), prefixListID, entryTag)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s version %d, %d owned entries\n", prefixListID, version, len(owned))
			for _, e := range owned {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.CIDR, e.Description)
			}
			return nil
		},
	}
}

func newEntriesPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove ALL owned entries from the prefix list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if prefixListID == "" {
				return errPrefixListIDRequired
			}
			d := getDeps(cmd)

			owned, err := d.repo.GetOwnedEntries(cmd.Context(), prefixListID, entryTag)
			if err != nil {
				return err
			}
			if len(owned) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to prune")
				return nil
			}

			version, err := d.repo.GetVersion(cmd.Context(), prefixListID)
			if err != nil {
				return err
			}

			removals := make([]string, 0, len(owned))
			for _, e := range owned {
				removals = append(removals, e.CIDR)
			}

			newVersion, err := d.repo.ReplaceEntries(cmd.Context(), prefixListID, version, removals, nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries, list at version %d\n", len(removals), newVersion)
			return nil
		},
	}
}