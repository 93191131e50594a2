package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-engine/internal/ingestion"
	"github.com/jonathan/resume-engine/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file|dir>...",
	Short: "Parse and optionally match many resumes concurrently",
	Long: `Parse every given resume file, or every file inside a given directory, and build
a candidate profile for each. With --require or --job each profile is also matched against
the requirement. One failing resume does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchRequire     string
	batchJobFile     string
	batchConcurrency int
	batchOutputFile  string
)

func init() {
	batchCmd.Flags().StringVar(&batchRequire, "require", "", "Comma separated required skills")
	batchCmd.Flags().StringVar(&batchJobFile, "job", "", "Path to job description text file")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Resumes processed at once (defaults to batch.concurrency)")
	batchCmd.Flags().StringVarP(&batchOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	batchCmd.MarkFlagsMutuallyExclusive("require", "job")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	items, err := loadItems(paths)
	if err != nil {
		return err
	}

	opts := pipeline.Options{Concurrency: batchConcurrency}
	if opts.Concurrency <= 0 {
		opts.Concurrency = a.cfg.Batch.Concurrency
	}
	if batchRequire != "" || batchJobFile != "" {
		req, err := loadRequirement(batchRequire, batchJobFile)
		if err != nil {
			return err
		}
		opts.Requirement = &req
	}
	if verbose {
		opts.OnProgress = func(ev pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s %s\n", ev.Index+1, len(items), ev.ID, ev.Status)
		}
	}

	results, err := a.processor.RunBatch(ctx, items, opts)
	if err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}

	if verbose {
		a.printer.PrintBatch(results)
	}
	return writeJSON(cmd.OutOrStdout(), batchOutputFile, results)
}

// loadItems reads every path into a batch item. Items are named after the file; files sharing
// a base name get the short content hash appended.
func loadItems(paths []string) ([]pipeline.Item, error) {
	items := make([]pipeline.Item, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		doc, err := ingestion.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}

		id := filepath.Base(path)
		if seen[id] {
			id = id + "@" + doc.Metadata.ShortHash()
		}
		seen[id] = true
		items = append(items, pipeline.Item{ID: id, Text: doc.Text})
	}
	return items, nil
}

// expandPaths replaces each directory argument with the regular files directly inside it
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no resume files found")
	}
	return paths, nil
}
