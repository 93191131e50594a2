// Package main provides the resume engine CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	apiKeyFlag string
)

var rootCmd = &cobra.Command{
	Use:           "resume_engine",
	Short:         "Resume understanding and skill matching engine",
	Long:          "Resume engine extracts structured profiles from resume text, matches them against job requirements and ranks candidates for search queries.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries to stderr")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
