package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/spf13/cobra"
)

var quizzesCmd = &cobra.Command{
	Use:   "quizzes",
	Short: "List the built-in quizzes",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := quiz.LoadBuiltins()
		if err != nil {
			return fmt.Errorf("load quizzes: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tYEAR\tQUESTIONS")
		for _, q := range registry.List() {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", q.ID, q.Title, q.GradeLevel, len(q.Questions))
		}
		return w.Flush()
	},
}
