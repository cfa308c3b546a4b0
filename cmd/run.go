package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/coinwise/internal/app"
	"github.com/abhisek/coinwise/internal/quiz"
	"github.com/abhisek/coinwise/internal/store"
	"github.com/spf13/cobra"
)

// openEnv opens the store and loads the built-in quizzes, seeding
// their definitions so exports read the same source attempts were
// taken against. The caller owns closing the store.
func openEnv(cmd *cobra.Command) (*store.Store, *quiz.Registry, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	registry, err := quiz.LoadBuiltins()
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("load quizzes: %w", err)
	}

	ctx := context.Background()
	for _, q := range registry.List() {
		payload, err := json.Marshal(q)
		if err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("encode quiz %s: %w", q.ID, err)
		}
		if err := st.Quizzes().Seed(ctx, q, payload); err != nil {
			st.Close()
			return nil, nil, fmt.Errorf("seed quiz %s: %w", q.ID, err)
		}
	}

	return st, registry, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, registry, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	return app.Run(app.Options{
		Store:    st,
		Registry: registry,
	})
}
