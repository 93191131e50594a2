package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-engine/internal/ingestion"
	"github.com/jonathan/resume-engine/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume file into a structured document and candidate profile",
	Long:  "Parse a resume file (text, markdown or HTML) into a structured ResumeDocument with a confidence score, plus the CandidateProfile derived from it.",
	RunE:  runParse,
}

var (
	parseInputFile  string
	parseOutputFile string
)

// parseOutput is what the parse command writes
type parseOutput struct {
	Document *types.ResumeDocument  `json:"document"`
	Profile  types.CandidateProfile `json:"profile"`
	Source   *ingestion.Metadata    `json:"source"`
}

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to resume file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	input, err := ingestion.Load(parseInputFile)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	doc := a.extractor.Extract(ctx, input.Text)
	out := parseOutput{Document: doc, Profile: a.builder.Build(doc), Source: input.Metadata}

	if verbose {
		fmt.Fprintf(os.Stderr, "%s (%s, %d chars, sha256 %s)\n",
			input.Metadata.Source, input.Metadata.Format, input.Metadata.Chars, input.Metadata.ShortHash())
		a.printer.PrintDocument(doc)
		a.printer.PrintProfile(out.Profile)
	}
	return writeJSON(cmd.OutOrStdout(), parseOutputFile, out)
}
