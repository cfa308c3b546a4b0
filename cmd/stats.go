package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <student-id>",
	Short: "Show a student's quiz results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, registry, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		student, err := st.Students().Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("find student: %w", err)
		}

		attempts, err := st.Attempts().ListByStudent(ctx, student.ID)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}

		fmt.Printf("%s (year %d) — %d attempt(s)\n\n", student.Name, student.Grade, len(attempts))
		if len(attempts) == 0 {
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tQUIZ\tSCORE")
		for _, a := range attempts {
			title := a.QuizID
			if q, ok := registry.Get(a.QuizID); ok {
				title = q.Title
			}
			score := "in progress"
			if a.Completed() {
				score = fmt.Sprintf("%.0f/%.0f (%.0f%%)", a.Score, a.MaxScore, a.Percent)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.StartedAt.Format("2006-01-02"), title, score)
		}
		return w.Flush()
	},
}
