package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/abhisek/coinwise/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <quiz-id>",
	Short: "Export quiz results as CSV",
	Long:  "Export every student's latest completed attempt at a quiz as CSV, one row per student.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, registry, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		students, err := st.Students().List(ctx)
		if err != nil {
			return fmt.Errorf("list students: %w", err)
		}

		var out io.Writer = os.Stdout
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		exporter := export.New(st.Attempts(), registry)
		if err := exporter.WriteQuiz(ctx, out, args[0], students); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Write CSV to a file instead of stdout")
}
