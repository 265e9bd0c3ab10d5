package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/feed"
	"github.com/TrainNomad/raptor-backend/internal/reconcile"
)

var transfersCmd = &cobra.Command{
	Use:   "transfers",
	Short: "Reconcile stations and build the transfer index",
	Long:  "Requires the timetable artifacts; rereads the feeds for parent areas and feed-declared transfers.",
	RunE:  runTransfers,
}

func init() {
	rootCmd.AddCommand(transfersCmd)
}

func runTransfers(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	bundle, err := artifact.Load(dataDir)
	if err != nil {
		return fmt.Errorf("loading artifacts (run the timetable step first): %w", err)
	}
	feeds, err := loadFeeds(logger)
	if err != nil {
		return err
	}

	if err := reconcileBundle(bundle, feeds, logger); err != nil {
		return err
	}

	if err := artifact.Save(dataDir, bundle); err != nil {
		return fmt.Errorf("saving artifacts: %w", err)
	}
	logger.Info("reconciliation done",
		"stations", len(bundle.Stations),
		"stops_with_transfers", len(bundle.Transfers),
	)
	return nil
}

// reconcileBundle runs the station and transfer passes over a built bundle,
// replacing its station and transfer artifacts.
func reconcileBundle(bundle *artifact.Bundle, feeds []*feed.Feed, logger *slog.Logger) error {
	manifest, err := reconcile.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("loading station manifest: %w", err)
	}

	parents := map[string]string{}
	var feedTransfers []feed.TransferPair
	for _, f := range feeds {
		for id, parent := range f.Parents {
			parents[id] = parent
		}
		feedTransfers = append(feedTransfers, f.Transfers...)
	}

	bundle.Stations = reconcile.BuildStations(bundle.Stops, parents, feedTransfers, manifest, logger)
	bundle.Transfers = reconcile.BuildTransferIndex(bundle.Stops, manifest, bundle.Stations, logger)
	bundle.Meta.StationCount = len(bundle.Stations)
	return nil
}
