package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchTopK     int
	searchMinScore float64
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Show the corpus chunks retrieved for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		topK, minScore := a.cfg.Retrieval.TopK, a.cfg.Retrieval.MinScore
		if cmd.Flags().Changed("top-k") {
			topK = searchTopK
		}
		if cmd.Flags().Changed("min-score") {
			minScore = searchMinScore
		}
		results := a.index.Retrieve(strings.Join(args, " "), topK, minScore)
		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "no relevant chunks")
			return nil
		}
		for i, r := range results {
			fmt.Fprintf(out, "%d. chunk %d  score=%.3f\n   %s\n", i+1, r.Chunk.ID, r.Score, r.Chunk.Text)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 3, "maximum number of chunks")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0.1, "exclusive similarity threshold")
}
