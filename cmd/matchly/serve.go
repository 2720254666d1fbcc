package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/matchly/internal/embedding"
	"github.com/jonathan/matchly/internal/fetch"
	"github.com/jonathan/matchly/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes analysis, matching, normalization and history endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	eng, err := newEngine(ctx, cfg, true, logger)
	if err != nil {
		return err
	}

	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:           port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		MaxJDChars:     cfg.MaxJDChars,
		Threshold:      cfg.MatchThreshold,
		FetchOptions: fetch.PostingOptions{
			UseBrowser: cfg.UseBrowser,
			Logger:     logger,
		},
	}, server.Deps{
		Analyzer: eng.analyzer,
		Matcher:  eng.matcher,
		Store:    eng.store,
		Logger:   logger,
	})
	if err != nil {
		eng.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}
	// the server closes the store on shutdown
	defer func() { _ = embedding.Close(eng.embedder) }()

	logger.Info("starting server",
		zap.Int("port", port),
		zap.String("embedding", eng.embedder.Name()),
		zap.Bool("history", eng.store != nil))
	return srv.Start()
}
