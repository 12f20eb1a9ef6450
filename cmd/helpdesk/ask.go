package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askVerbose bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question and exit",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		gen, err := a.generator()
		if err != nil {
			return err
		}
		ans := a.answerService(gen).Answer(cmd.Context(), strings.Join(args, " "))
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ans.Text)
		if askVerbose {
			fmt.Fprintf(out, "\nsource: %s\n", ans.Source)
			for _, d := range ans.Documents {
				fmt.Fprintf(out, "[%s] %s\n", d.ID, d.Text)
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVarP(&askVerbose, "verbose", "v", false, "print the resolution source and grounding documents")
}
