package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quizsmith/quizsmith/internal/llm"
	"github.com/quizsmith/quizsmith/internal/logger"
	"github.com/quizsmith/quizsmith/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizsmith",
	Short: "Quiz generation and LaTeX rendering service",
	Long: `quizsmith turns study text into multiple-choice and short-answer questions,
analyzes wrong answers and solves problems through a hosted LLM gateway.
It also renders text with $inline$ and $$display$$ math.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite event log (overrides QUIZSMITH_DB env var)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log output: prod (JSON) or dev (console); default QUIZSMITH_LOG_MODE")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider (overrides QUIZSMITH_LLM_PROVIDER)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZSMITH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// recordingRequested reports whether the user asked for an event log.
func recordingRequested(cmd *cobra.Command) bool {
	p, _ := cmd.Flags().GetString("db")
	return p != "" || os.Getenv("QUIZSMITH_DB") != ""
}

func newLogger(cmd *cobra.Command) (*logger.Logger, error) {
	mode, _ := cmd.Flags().GetString("log-mode")
	if mode == "" {
		mode = os.Getenv("QUIZSMITH_LOG_MODE")
	}
	return logger.New(mode)
}

// llmConfig reads the environment and applies command-line overrides.
func llmConfig(cmd *cobra.Command) llm.Config {
	cfg := llm.ConfigFromEnv()
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.Provider = p
	}
	return cfg
}

// openRecorder opens the event log when requested. The returned close
// function is always safe to call.
func openRecorder(cmd *cobra.Command) (store.EventRepo, func(), error) {
	if !recordingRequested(cmd) {
		return nil, func() {}, nil
	}
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st.EventRepo(), func() { _ = st.Close() }, nil
}

func newProvider(ctx context.Context, cmd *cobra.Command, repo store.EventRepo, log *logger.Logger) (llm.Provider, error) {
	provider, err := llm.NewProvider(ctx, llmConfig(cmd), repo, log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	if _, ok := provider.(*llm.UnconfiguredProvider); ok {
		log.Warn("LLM provider is not configured; completion requests will fail", "provider", provider.ModelID())
	}
	return provider, nil
}
