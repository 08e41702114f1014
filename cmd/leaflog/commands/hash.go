package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newHashCmd returns the command that prints the leaf hash for a value
// without submitting anything.
func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <value>",
		Short: "Print the leaf hash for a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("failed to parse value: %w", err)
			}
			fmt.Printf("Value hash: %v\n", valueHash(uint32(value)))
			return nil
		},
	}
}
