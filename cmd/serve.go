package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/quizsmith/quizsmith/internal/completion"
	"github.com/quizsmith/quizsmith/internal/observability"
	"github.com/quizsmith/quizsmith/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the completion functions and the LaTeX renderer over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUIZSMITH_ADDR and PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	shutdownTracing := observability.InitTracing(ctx, log, observability.TracingConfigFromEnv("quizsmith", currentVersion()))
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	repo, closeRepo, err := openRecorder(cmd)
	if err != nil {
		return err
	}
	defer closeRepo()

	provider, err := newProvider(ctx, cmd, repo, log)
	if err != nil {
		return err
	}

	cfg := server.ConfigFromEnv()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	cfg.Version = currentVersion()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(cfg, completion.NewRunner(provider, log), log)
	return srv.Run(ctx)
}
