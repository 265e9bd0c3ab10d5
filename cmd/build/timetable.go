package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/timetable"
)

var timetableCmd = &cobra.Command{
	Use:   "timetable",
	Short: "Build the merged timetable artifacts from the operator feeds",
	RunE:  runTimetable,
}

func init() {
	rootCmd.AddCommand(timetableCmd)
}

func runTimetable(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	feeds, err := loadFeeds(logger)
	if err != nil {
		return err
	}

	bundle := timetable.Build(feeds, logger)
	if err := artifact.Save(dataDir, bundle); err != nil {
		return fmt.Errorf("saving artifacts: %w", err)
	}

	logger.Info("timetable built",
		"stops", bundle.Meta.StopCount,
		"routes", bundle.Meta.RouteCount,
		"trips", bundle.Meta.TripCount,
	)
	return nil
}
