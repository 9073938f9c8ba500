// Command kdvec is a CLI front end for the kdvec in-memory vector index: it
// loads a JSON snapshot from disk, applies one mutation or query, and
// (for mutations) writes the snapshot back. Mutations hold an exclusive
// file lock from load to write so two of them against the same file never
// interleave; search and size read the snapshot without taking the lock.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nearbyte/kdvec/internal/ui"
)

var (
	configPath   string
	snapshotPath string
	noColor      bool
	cfg          cliConfig
)

var rootCmd = &cobra.Command{
	Use:   "kdvec",
	Short: "A k-d tree vector similarity index, driven from the command line",
	Long:  "kdvec manages a JSON snapshot of a k-nearest-neighbor vector index: build it, mutate it, query it, or watch it for external changes.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		if snapshotPath != "" {
			cfg.SnapshotPath = snapshotPath
		}
		if noColor {
			cfg.NoColor = true
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "path to the snapshot file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")

	rootCmd.AddCommand(buildCmd, addCmd, removeCmd, searchCmd, sizeCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, stylesFor().Error.Render(err.Error()))
		os.Exit(1)
	}
}

func stylesFor() ui.Styles {
	if cfg.NoColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		return ui.PlainStyles()
	}
	return ui.DefaultStyles()
}

// parseVector parses a comma-separated list of floats, e.g. "1,0.5,-2".
func parseVector(s string) ([]float32, error) {
	parts := strings.Split(s, ",")
	vec := make([]float32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", p, err)
		}
		vec = append(vec, float32(v))
	}
	return vec, nil
}
