package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"helpdesk/internal/summarizer"
)

var indexSummary int

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the index and print corpus statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if a.index.Len() == 0 {
			fmt.Fprintf(out, "corpus %s: not loaded, answers will be ungrounded\n", a.cfg.Corpus.Path)
			return nil
		}
		fmt.Fprintf(out, "corpus:     %s\n", a.cfg.Corpus.Path)
		for _, f := range a.corpus.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		fmt.Fprintf(out, "chunks:     %d (max %d chars)\n", a.index.Len(), a.cfg.Chunker.MaxSize)
		fmt.Fprintf(out, "vocabulary: %d terms\n", a.index.Vocabulary())
		if indexSummary > 0 {
			fmt.Fprintf(out, "\n%s\n", summarizer.NewFrequencySummarizer().Summarize(a.corpus.Text, indexSummary))
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().IntVar(&indexSummary, "summary", 3, "number of summary sentences to print (0 disables)")
}
