package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nearbyte/kdvec"
	"github.com/nearbyte/kdvec/internal/store"
)

var buildFromFile string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a fresh snapshot from a resource JSON file, replacing any existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		resource, err := readResourceFile(buildFromFile)
		if err != nil {
			return err
		}

		return store.WithLock(cfg.SnapshotPath, func() error {
			ix, err := kdvec.Build(resource)
			if err != nil {
				return fmt.Errorf("build index: %w", err)
			}
			if err := store.Save(cfg.SnapshotPath, ix); err != nil {
				return err
			}
			fmt.Printf("built snapshot with %d documents at %s\n", ix.Size(), cfg.SnapshotPath)
			return nil
		})
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildFromFile, "from", "", "path to a JSON file holding a kdvec.Resource")
	_ = buildCmd.MarkFlagRequired("from")
}

func readResourceFile(path string) (kdvec.Resource, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return kdvec.Resource{}, fmt.Errorf("read resource file %s: %w", path, err)
	}
	var resource kdvec.Resource
	if err := json.Unmarshal(blob, &resource); err != nil {
		return kdvec.Resource{}, fmt.Errorf("parse resource file %s: %w", path, err)
	}
	return resource, nil
}
