package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nearbyte/kdvec"
	"github.com/nearbyte/kdvec/internal/store"
)

var (
	searchVector string
	searchTopK   int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find the nearest documents to a query vector",
	RunE: func(cmd *cobra.Command, args []string) error {
		vec, err := parseVector(searchVector)
		if err != nil {
			return err
		}

		ix, err := store.Load(cfg.SnapshotPath)
		if err != nil {
			return err
		}

		k := searchTopK
		if k <= 0 {
			k = cfg.TopK
		}
		results, err := ix.Search(kdvec.EmbeddingQuery{Vector: vec}, k)
		if err != nil {
			return fmt.Errorf("search index: %w", err)
		}

		fmt.Println(renderResults(results))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchVector, "vector", "", "comma-separated query embedding")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 0, "number of results (0 uses the config default)")
	_ = searchCmd.MarkFlagRequired("vector")
}

func renderResults(results []kdvec.SearchResult) string {
	styles := stylesFor()
	if len(results) == 0 {
		return styles.Dim.Render("no results")
	}

	var rows []string
	rows = append(rows, styles.Header.Render(fmt.Sprintf("%-24s %-8s %s", "ID", "SCORE", "TITLE")))
	for _, r := range results {
		line := fmt.Sprintf("%-24s %-8.4f %s", r.Document.ID, r.SimilarityScore, r.Document.Title)
		rows = append(rows, styles.Row.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
