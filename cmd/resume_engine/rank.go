package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-engine/internal/ranking"
	"github.com/jonathan/resume-engine/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidate profiles against a search query",
	Long:  "Rank a JSON array of CandidateProfiles against either a free-text --query, parsed into a SearchIntent, or a SearchIntent JSON file given with --intent.",
	RunE:  runRank,
}

var (
	rankProfilesFile string
	rankQuery        string
	rankIntentFile   string
	rankOutputFile   string
)

// rankOutput is what the rank command writes
type rankOutput struct {
	Intent  types.SearchIntent        `json:"intent"`
	Source  string                    `json:"source"`
	Results []ranking.RankedCandidate `json:"results"`
}

func init() {
	rankCmd.Flags().StringVar(&rankProfilesFile, "profiles", "", "Path to JSON array of candidate profiles (required)")
	rankCmd.Flags().StringVarP(&rankQuery, "query", "q", "", "Free-text search query")
	rankCmd.Flags().StringVar(&rankIntentFile, "intent", "", "Path to SearchIntent JSON file")
	rankCmd.Flags().StringVarP(&rankOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	_ = rankCmd.MarkFlagRequired("profiles")
	rankCmd.MarkFlagsMutuallyExclusive("query", "intent")
	rankCmd.MarkFlagsOneRequired("query", "intent")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	var profiles []types.CandidateProfile
	if err := readJSON(rankProfilesFile, &profiles); err != nil {
		return err
	}
	if len(profiles) == 0 {
		return fmt.Errorf("no profiles in %s", rankProfilesFile)
	}

	out := rankOutput{Source: "file"}
	if rankIntentFile != "" {
		if err := readJSON(rankIntentFile, &out.Intent); err != nil {
			return err
		}
	} else {
		parsed := a.queryParser.Parse(ctx, rankQuery)
		if verbose {
			a.printer.PrintIntent(parsed)
		}
		out.Intent, out.Source = parsed.Intent, parsed.Source
	}

	out.Results = a.scorer.Rank(profiles, out.Intent)
	a.metrics.IncRanking()

	if verbose {
		a.printer.PrintRanking(out.Results)
	}
	return writeJSON(cmd.OutOrStdout(), rankOutputFile, out)
}
