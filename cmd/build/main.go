// Command build runs the offline pipeline: reading the per-operator feed
// directories, assembling the timetable artifacts, reconciling stations and
// transfers, and writing the autocomplete database.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/TrainNomad/raptor-backend/internal/feed"
	"github.com/TrainNomad/raptor-backend/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:          "build",
	Short:        "Offline schedule build pipeline",
	Long:         "Builds the query engine's schedule artifacts from raw operator feeds",
	SilenceUsage: true,
}

var (
	feedsDir     string
	dataDir      string
	manifestPath string
	searchDBPath string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&feedsDir, "feeds", "./feeds", "Directory holding one GTFS directory per operator")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "./data", "Artifact output directory")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "Curated station manifest CSV (optional)")
	rootCmd.PersistentFlags().StringVar(&searchDBPath, "search-db", "./search.db", "SQLite autocomplete database path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logging.NewStructuredLogger(os.Stdout, level)
}

// loadFeeds reads every operator directory under the feeds root in parallel.
// The directory name is the operator prefix. Output order is fixed by
// sorting on operator, so the merge is independent of completion order.
func loadFeeds(logger *slog.Logger) ([]*feed.Feed, error) {
	entries, err := os.ReadDir(feedsDir)
	if err != nil {
		return nil, fmt.Errorf("reading feeds directory: %w", err)
	}

	var g errgroup.Group
	results := make([]*feed.Feed, len(entries))
	for i, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		g.Go(func() error {
			f, err := feed.ReadDir(feedsDir+"/"+entry.Name(), entry.Name(), logger)
			if err != nil {
				return fmt.Errorf("reading feed %s: %w", entry.Name(), err)
			}
			results[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var feeds []*feed.Feed
	for _, f := range results {
		if f != nil {
			feeds = append(feeds, f)
		}
	}
	sort.Slice(feeds, func(i, j int) bool { return feeds[i].Operator < feeds[j].Operator })
	if len(feeds) == 0 {
		return nil, fmt.Errorf("no operator directories found under %s", feedsDir)
	}
	return feeds, nil
}
