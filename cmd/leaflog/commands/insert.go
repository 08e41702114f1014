package commands

import (
	"fmt"
	"strconv"

	"github.com/Bren2010/leaflog/tree/accumulator"
	"github.com/spf13/cobra"
)

// newInsertCmd returns the command that submits a leaf to the server.
func newInsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert [value]",
		Short: "Hash a value and insert it as a leaf",
		Long: `Insert submits a leaf hash to the server and prints the new root.

By default the leaf is the SHA-256 hash of the given integer value. A raw
32-byte leaf hash can be submitted instead with --hash.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawHash, err := cmd.Flags().GetString("hash")
			if err != nil {
				return err
			}

			var leaf accumulator.Hash
			switch {
			case rawHash != "":
				if len(args) > 0 {
					return fmt.Errorf("cannot give both a value and --hash")
				}
				if leaf, err = accumulator.ParseHash(rawHash); err != nil {
					return err
				}
			case len(args) == 1:
				value, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("failed to parse value: %w", err)
				}
				leaf = valueHash(uint32(value))
			default:
				return fmt.Errorf("either a value or --hash is required")
			}

			res, err := insertLeaf(leaf)
			if err != nil {
				return err
			}
			fmt.Printf("Leaf hash: %v\n", leaf)
			fmt.Printf("Root hash: %v\n", res.Root)
			fmt.Printf("Tree size: %v\n", res.Size)
			return nil
		},
	}
	cmd.Flags().String("hash", "", "Hex-encoded 32-byte leaf hash to submit as-is")
	return cmd
}
