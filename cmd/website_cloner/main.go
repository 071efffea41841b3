// Package main provides the entry point for the website cloner service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "website_cloner",
	Short: "Website scraping and cloning service",
	Long:  "Website cloner scrapes a page's markup, assets, and a full-page screenshot, then uses a multimodal model to generate a self-contained HTML clone.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
