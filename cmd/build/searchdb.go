package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/logging"
	"github.com/TrainNomad/raptor-backend/internal/searchdb"
)

var searchDBCmd = &cobra.Command{
	Use:   "searchdb",
	Short: "Write the SQLite autocomplete database from the station index",
	RunE:  runSearchDB,
}

func init() {
	rootCmd.AddCommand(searchDBCmd)
}

func runSearchDB(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	bundle, err := artifact.Load(dataDir)
	if err != nil {
		return fmt.Errorf("loading artifacts (run the timetable and transfers steps first): %w", err)
	}

	return writeSearchDB(cmd.Context(), bundle, logger)
}

func writeSearchDB(ctx context.Context, bundle *artifact.Bundle, logger *slog.Logger) error {
	client, err := searchdb.Create(searchDBPath)
	if err != nil {
		return err
	}
	defer logging.SafeClose(client, nil, "search database")

	if err := client.Populate(ctx, bundle.Stations); err != nil {
		return fmt.Errorf("populating search database: %w", err)
	}
	logger.Info("search database written", "path", searchDBPath, "stations", len(bundle.Stations))
	return nil
}
