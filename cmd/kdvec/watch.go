package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nearbyte/kdvec/internal/store"
	"github.com/nearbyte/kdvec/internal/watch"
)

var watchSource string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a resource JSON file and reindex the snapshot whenever it changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchSource == "" {
			return fmt.Errorf("--source is required")
		}

		if err := reindexFromSource(watchSource); err != nil {
			return err
		}
		fmt.Printf("watching %s, reindexing %s on change (ctrl-c to stop)\n", watchSource, cfg.SnapshotPath)

		window := time.Duration(cfg.DebounceMillis) * time.Millisecond
		w, err := watch.New(window)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer w.Stop()

		if err := w.Add(watchSource); err != nil {
			return fmt.Errorf("watch %s: %w", watchSource, err)
		}
		go w.Run()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		for {
			select {
			case <-sigCh:
				fmt.Println("stopping")
				return nil
			case path := <-w.Changed():
				if err := reindexFromSource(path); err != nil {
					fmt.Fprintf(os.Stderr, "reindex failed: %v\n", err)
					continue
				}
				fmt.Printf("reindexed from %s\n", path)
			case err := <-w.Errors():
				fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchSource, "source", "", "path to the resource JSON file to watch")
}

func reindexFromSource(path string) error {
	resource, err := readResourceFile(path)
	if err != nil {
		return err
	}
	return store.WithLock(cfg.SnapshotPath, func() error {
		ix, err := store.Load(cfg.SnapshotPath)
		if err != nil {
			return err
		}
		if err := ix.Reindex(resource); err != nil {
			return fmt.Errorf("reindex: %w", err)
		}
		return store.Save(cfg.SnapshotPath, ix)
	})
}
