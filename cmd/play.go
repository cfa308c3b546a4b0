package cmd

import (
	"fmt"

	"github.com/abhisek/coinwise/internal/app"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the quiz game",
	Long:  "Start the quiz game. With --student and --quiz, jump straight into that quiz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetString("student")
		quizID, _ := cmd.Flags().GetString("quiz")
		if (studentID == "") != (quizID == "") {
			return fmt.Errorf("--student and --quiz must be used together")
		}
		if studentID == "" {
			return runApp(cmd)
		}

		st, registry, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		student, err := st.Students().Get(cmd.Context(), studentID)
		if err != nil {
			return fmt.Errorf("find student: %w", err)
		}
		if _, ok := registry.Get(quizID); !ok {
			return fmt.Errorf("unknown quiz %q (see: coinwise quizzes)", quizID)
		}

		return app.Run(app.Options{
			Store:        st,
			Registry:     registry,
			StartStudent: student,
			StartQuiz:    quizID,
		})
	},
}

func init() {
	playCmd.Flags().String("student", "", "Student ID to play as")
	playCmd.Flags().String("quiz", "", "Quiz ID to play")
}
