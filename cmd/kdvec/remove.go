package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nearbyte/kdvec/internal/store"
)

var (
	removeFromFile string
	removeID       string
	removeTitle    string
	removeURL      string
	removeVector   string
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove documents from the snapshot by exact (vector, fingerprint) match",
	RunE: func(cmd *cobra.Command, args []string) error {
		resource, err := resourceFromFlagsOrFile(removeFromFile, removeID, removeTitle, removeURL, removeVector)
		if err != nil {
			return err
		}

		return store.WithLock(cfg.SnapshotPath, func() error {
			ix, err := store.Load(cfg.SnapshotPath)
			if err != nil {
				return err
			}
			removed, err := ix.Remove(resource)
			if err != nil {
				return fmt.Errorf("remove from index: %w", err)
			}
			if err := store.Save(cfg.SnapshotPath, ix); err != nil {
				return err
			}
			fmt.Printf("removed %d point(s); snapshot now holds %d document(s)\n", removed, ix.Size())
			return nil
		})
	},
}

func init() {
	removeCmd.Flags().StringVar(&removeFromFile, "from", "", "path to a JSON file holding a kdvec.Resource")
	removeCmd.Flags().StringVar(&removeID, "id", "", "document ID (single-document form)")
	removeCmd.Flags().StringVar(&removeTitle, "title", "", "document title (single-document form)")
	removeCmd.Flags().StringVar(&removeURL, "url", "", "document URL (single-document form)")
	removeCmd.Flags().StringVar(&removeVector, "vector", "", "comma-separated embedding (single-document form)")
}
