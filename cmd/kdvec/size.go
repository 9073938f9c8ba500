package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nearbyte/kdvec/internal/store"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Print the number of documents in the snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := store.Load(cfg.SnapshotPath)
		if err != nil {
			return err
		}
		fmt.Println(ix.Size())
		return nil
	},
}
