package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "Manage the student roster",
}

var studentsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a student",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		if year < 1 || year > 6 {
			return fmt.Errorf("school year must be 1-6, got %d", year)
		}

		st, _, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.Students().Create(cmd.Context(), args[0], year)
		if err != nil {
			return fmt.Errorf("add student: %w", err)
		}
		fmt.Printf("Added %s (year %d): %s\n", args[0], year, id)
		return nil
	},
}

var studentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all students",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		roster, err := st.Students().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list students: %w", err)
		}
		if len(roster) == 0 {
			fmt.Println("No students yet. Add one with: coinwise students add <name>")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tYEAR\tATTEMPTS\tLAST PLAYED")
		for _, s := range roster {
			last := "-"
			if s.LastAttemptAt != nil {
				last = s.LastAttemptAt.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", s.ID, s.Name, s.Grade, s.TotalAttempts, last)
		}
		return w.Flush()
	},
}

var studentsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a student and all their attempts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Students().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("remove student: %w", err)
		}
		fmt.Println("Removed", args[0])
		return nil
	},
}

func init() {
	studentsAddCmd.Flags().Int("year", 1, "School year (1-6)")

	studentsCmd.AddCommand(studentsAddCmd)
	studentsCmd.AddCommand(studentsListCmd)
	studentsCmd.AddCommand(studentsRmCmd)
}
