package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-engine/internal/server"
	"github.com/jonathan/resume-engine/internal/server/ratelimit"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for parsing, matching, ranking and batch processing.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.client == nil {
		a.log.Warn("no API key configured, resume parsing endpoints will use fallback extraction")
	}

	port := servePort
	if port == 0 {
		port = a.cfg.Server.Port
	}
	rl := a.cfg.Server.RateLimit

	srv := server.New(server.Config{
		Port:             port,
		ReadTimeout:      a.cfg.Server.ReadTimeout,
		WriteTimeout:     a.cfg.Server.WriteTimeout,
		RateLimit:        ratelimit.NewConfig(rl.Enabled, rl.RPS, rl.Burst),
		BatchConcurrency: a.cfg.Batch.Concurrency,
	}, server.Deps{
		Extractor:     a.extractor,
		Builder:       a.builder,
		Canonicalizer: a.canon,
		Analyzer:      a.analyzer,
		Scorer:        a.scorer,
		QueryParser:   a.queryParser,
		Processor:     a.processor,
		Metrics:       a.metrics,
		Log:           a.log,
	})
	return srv.Start(ctx)
}
