package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "helpdesk",
	Short: "Knowledge-base question answering service",
	Long: `helpdesk answers free-text questions about a small knowledge base.
Greetings, predefined answers and rule-based answers are handled locally;
everything else is answered by a hosted language model, grounded in the
corpus chunks that match the question when there are any.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to YAML config file (defaults are used if it does not exist)")
	rootCmd.AddCommand(serveCmd, chatCmd, askCmd, searchCmd, indexCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
