package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/website-cloner/internal/clone"
	"github.com/jonathan/website-cloner/internal/llm"
)

var cloneOut string

var cloneCmd = &cobra.Command{
	Use:   "clone <url-id>",
	Short: "Generate an HTML clone from a stored scrape record",
	Long:  "Build a multimodal prompt from the stored record under the given normalized id, call the configured model, and write the cloned HTML.",
	Args:  cobra.ExactArgs(1),
	RunE:  runClone,
}

func init() {
	cloneCmd.Flags().StringVarP(&cloneOut, "out", "o", "", "Output file (defaults to stdout)")
	rootCmd.AddCommand(cloneCmd)
}

func runClone(_ *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.repo.Close()

	ctx := context.Background()

	prompt, err := a.builder.Build(ctx, args[0])
	if err != nil {
		return err
	}

	llmClient, err := llm.NewClient(ctx, a.cfg.LLMClientConfig(), a.cfg.LLM.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer llmClient.Close()

	raw, err := llmClient.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("failed to clone website: %w", err)
	}

	html := clone.Sanitize(raw)

	if cloneOut != "" {
		if err := os.WriteFile(cloneOut, []byte(html), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Cloned HTML written to %s\n", cloneOut)
		return nil
	}

	fmt.Fprintln(os.Stdout, html)
	return nil
}
