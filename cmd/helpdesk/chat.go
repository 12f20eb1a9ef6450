package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"helpdesk/internal/summarizer"
	"helpdesk/internal/tui"
)

var summarySentences int

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		gen, err := a.generator()
		if err != nil {
			return err
		}
		summary := "No knowledge base loaded; answers are not grounded."
		if a.corpus.Text != "" {
			summary = summarizer.NewFrequencySummarizer().Summarize(a.corpus.Text, summarySentences)
		}
		m := tui.New(cmd.Context(), a.answerService(gen), summary)
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	chatCmd.Flags().IntVar(&summarySentences, "summary", 2, "number of corpus summary sentences shown in the header")
}
