// Command tipline runs the income-tracking assistant server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tipline/internal/agent"
	"tipline/internal/config"
	"tipline/internal/llm"
	"tipline/internal/server"
	"tipline/internal/store"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "tipline",
		Short: "Conversational income tracker for tipped and gig workers",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "tipline.yaml", "path to config file")

	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the agent HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := buildLogger(cfg.Log.Level)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return runServer(cfg, logger)
		},
	}
}

func runServer(cfg *config.Config, logger *zap.Logger) error {
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	llmCfg := llm.DefaultConfig(cfg.Gemini.APIKey)
	if cfg.Gemini.Model != "" {
		llmCfg.Model = cfg.Gemini.Model
	}
	if cfg.Gemini.BaseURL != "" {
		llmCfg.BaseURL = cfg.Gemini.BaseURL
	}
	llmCfg.Timeout = cfg.GeminiTimeout()
	client := llm.NewGeminiClient(llmCfg, logger)

	dispatcher := agent.New(client, st, logger)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(dispatcher, logger).Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("db", cfg.Database.Path),
			zap.String("model", cfg.Gemini.Model))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
