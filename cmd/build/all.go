package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/timetable"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the full pipeline: timetable, transfers, searchdb",
	RunE:  runAll,
}

func init() {
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	feeds, err := loadFeeds(logger)
	if err != nil {
		return err
	}

	bundle := timetable.Build(feeds, logger)
	if err := reconcileBundle(bundle, feeds, logger); err != nil {
		return err
	}
	if err := artifact.Save(dataDir, bundle); err != nil {
		return fmt.Errorf("saving artifacts: %w", err)
	}

	if err := writeSearchDB(cmd.Context(), bundle, logger); err != nil {
		return err
	}

	logger.Info("build complete",
		"stops", bundle.Meta.StopCount,
		"trips", bundle.Meta.TripCount,
		"stations", bundle.Meta.StationCount,
	)
	return nil
}
