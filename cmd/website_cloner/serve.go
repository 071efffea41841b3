package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/website-cloner/internal/llm"
	"github.com/jonathan/website-cloner/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Start an HTTP server that exposes endpoints for scraping websites and generating HTML clones.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	llmClient, err := llm.NewClient(context.Background(), a.cfg.LLMClientConfig(), a.cfg.LLM.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	port := a.cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}

	srv := server.New(server.Config{
		Port:           port,
		AllowedOrigin:  a.cfg.Server.AllowedOrigin,
		ScreenshotsDir: a.cfg.Scrape.ScreenshotsDir,
		PublicPrefix:   publicPrefix,
	}, a.repo, a.scraper, a.builder, llmClient)

	return srv.Start()
}
