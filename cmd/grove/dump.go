package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// dumpCmd builds a forest from the keys given on the command line and
// prints its structure, which makes split and promotion behaviour easy
// to eyeball.
var dumpCmd = &cobra.Command{
	Use:   "dump [key]...",
	Short: "Insert the given integer keys and print the forest structure",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := newForest()
		if err != nil {
			return err
		}

		keys := make([]int64, 0, len(args))
		for _, arg := range args {
			x, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("bad key %q: %w", arg, err)
			}
			keys = append(keys, x)
		}
		if err := f.InsertBulk(keys); err != nil {
			return err
		}
		if err := f.CheckInvariants(); err != nil {
			return err
		}

		fmt.Print(f.Dump())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
