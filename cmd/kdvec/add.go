package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nearbyte/kdvec"
	"github.com/nearbyte/kdvec/internal/store"
)

var (
	addFromFile string
	addID       string
	addTitle    string
	addURL      string
	addVector   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add documents to the snapshot, either from --from a file or a single --id/--vector pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		resource, err := resourceFromFlagsOrFile(addFromFile, addID, addTitle, addURL, addVector)
		if err != nil {
			return err
		}

		return store.WithLock(cfg.SnapshotPath, func() error {
			ix, err := store.Load(cfg.SnapshotPath)
			if err != nil {
				return err
			}
			if err := ix.Add(resource); err != nil {
				return fmt.Errorf("add to index: %w", err)
			}
			if err := store.Save(cfg.SnapshotPath, ix); err != nil {
				return err
			}
			fmt.Printf("added %d document(s); snapshot now holds %d\n", len(resource.Embeddings), ix.Size())
			return nil
		})
	},
}

func init() {
	addCmd.Flags().StringVar(&addFromFile, "from", "", "path to a JSON file holding a kdvec.Resource")
	addCmd.Flags().StringVar(&addID, "id", "", "document ID (single-document form)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "document title (single-document form)")
	addCmd.Flags().StringVar(&addURL, "url", "", "document URL (single-document form)")
	addCmd.Flags().StringVar(&addVector, "vector", "", "comma-separated embedding (single-document form)")
}

func resourceFromFlagsOrFile(fromFile, id, title, url, vector string) (kdvec.Resource, error) {
	if fromFile != "" {
		return readResourceFile(fromFile)
	}
	if id == "" || vector == "" {
		return kdvec.Resource{}, fmt.Errorf("either --from or both --id and --vector are required")
	}
	vec, err := parseVector(vector)
	if err != nil {
		return kdvec.Resource{}, err
	}
	return kdvec.Resource{Embeddings: []kdvec.ResourceItem{
		{ID: id, Title: title, URL: url, Embeddings: vec},
	}}, nil
}
