package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRootHashCmd returns the command that fetches the current root hash.
func newRootHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Fetch the current root hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := fetchRoot()
			if err != nil {
				return err
			}
			fmt.Printf("Root hash: %v\n", res.Root)
			fmt.Printf("Tree size: %v\n", res.Size)
			return nil
		},
	}
}

// newLeavesCmd returns the command that fetches the full leaf sequence.
func newLeavesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaves",
		Short: "Fetch all leaf hashes in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := fetchLeaves()
			if err != nil {
				return err
			}
			for i, leaf := range res.Leaves {
				fmt.Printf("%v: %v\n", i, leaf)
			}
			return nil
		},
	}
}
