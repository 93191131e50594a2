package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-engine/internal/ingestion"
	"github.com/jonathan/resume-engine/internal/matching"
	"github.com/jonathan/resume-engine/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a candidate's skills against job requirements",
	Long: `Match a candidate's skills against a requirement and report the skill match percentage,
fit score, gaps and recommendations.

The candidate comes from either --skills (a SkillSet JSON file) or --resume (a resume file,
which requires an API key). The requirement is either --require (a comma separated skill list)
or --job (a job description text file).`,
	RunE: runMatch,
}

var (
	matchSkillsFile string
	matchResumeFile string
	matchRequire    string
	matchJobFile    string
	matchOutputFile string
)

func init() {
	matchCmd.Flags().StringVar(&matchSkillsFile, "skills", "", "Path to SkillSet JSON file")
	matchCmd.Flags().StringVar(&matchResumeFile, "resume", "", "Path to resume file")
	matchCmd.Flags().StringVar(&matchRequire, "require", "", "Comma separated required skills")
	matchCmd.Flags().StringVar(&matchJobFile, "job", "", "Path to job description text file")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	matchCmd.MarkFlagsMutuallyExclusive("skills", "resume")
	matchCmd.MarkFlagsOneRequired("skills", "resume")
	matchCmd.MarkFlagsMutuallyExclusive("require", "job")
	matchCmd.MarkFlagsOneRequired("require", "job")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, matchResumeFile != "")
	if err != nil {
		return err
	}
	defer a.Close()

	req, err := loadRequirement(matchRequire, matchJobFile)
	if err != nil {
		return err
	}

	var candidate types.SkillSet
	if matchSkillsFile != "" {
		if err := readJSON(matchSkillsFile, &candidate); err != nil {
			return err
		}
	} else {
		input, err := ingestion.Load(matchResumeFile)
		if err != nil {
			return fmt.Errorf("failed to load resume: %w", err)
		}
		candidate = a.extractor.Extract(ctx, input.Text).Skills
	}

	result := a.analyzer.CalculateSkillMatch(a.canon.CanonicalizeSet(candidate), req)
	a.metrics.IncMatch()

	if verbose {
		a.printer.PrintMatch(result)
	}
	return writeJSON(cmd.OutOrStdout(), matchOutputFile, result)
}

// loadRequirement builds a requirement from a comma separated list or a job description file
func loadRequirement(list, jobFile string) (matching.Requirement, error) {
	if jobFile != "" {
		content, err := os.ReadFile(jobFile)
		if err != nil {
			return matching.Requirement{}, fmt.Errorf("failed to read job description: %w", err)
		}
		return matching.FromJobDescription(string(content)), nil
	}
	return matching.FromSkills(splitList(list)...), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
