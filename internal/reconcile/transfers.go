package reconcile

import (
	"log/slog"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/utils"
)

// walkingRadiusMeters is the distance within which two stops are considered
// siblings reachable on foot.
const walkingRadiusMeters = 300

// BuildTransferIndex produces, for each stop, the sibling stops reachable by
// walking. Same-station links are persisted as plain identifiers (the
// category is recovered from operator-prefix equality at load time);
// inter-city links carry an explicit tag.
func BuildTransferIndex(
	stops map[string]artifact.Stop,
	manifest []ManifestStation,
	stations []artifact.Station,
	logger *slog.Logger,
) map[string][]artifact.TransferEntry {
	if logger == nil {
		logger = slog.Default()
	}

	type edge struct{ from, to string }
	sameStation := map[edge]bool{}
	interCity := map[edge]bool{}

	addSame := func(a, b string) {
		if a == b {
			return
		}
		sameStation[edge{a, b}] = true
		sameStation[edge{b, a}] = true
	}

	// Geographic pairing via an r-tree box query, then exact haversine.
	tree := &rtree.RTree{}
	for id, s := range stops {
		if s.Lat == 0 && s.Lon == 0 {
			continue
		}
		tree.Insert([2]float64{s.Lat, s.Lon}, [2]float64{s.Lat, s.Lon}, id)
	}
	for id, s := range stops {
		if s.Lat == 0 && s.Lon == 0 {
			continue
		}
		bounds := utils.CalculateBounds(s.Lat, s.Lon, walkingRadiusMeters)
		tree.Search(
			[2]float64{bounds.MinLat, bounds.MinLon},
			[2]float64{bounds.MaxLat, bounds.MaxLon},
			func(min, max [2]float64, data interface{}) bool {
				other := data.(string)
				if other == id {
					return true
				}
				o := stops[other]
				if blacklisted(blacklistKey(id, s.Name), blacklistKey(other, o.Name)) {
					return true
				}
				if utils.Distance(s.Lat, s.Lon, o.Lat, o.Lon) <= walkingRadiusMeters {
					addSame(id, other)
				}
				return true
			},
		)
	}

	// Manifest enrichment: every unordered pair within a curated station is
	// a same-station link, overriding whatever geography said.
	for _, m := range manifest {
		ids := m.StopIDs()
		for i := 0; i < len(ids); i++ {
			if _, known := stops[ids[i]]; !known {
				continue
			}
			for j := i + 1; j < len(ids); j++ {
				if _, known := stops[ids[j]]; known {
					addSame(ids[i], ids[j])
				}
			}
		}
	}

	// Cross-operator name linking: TI stops joined to SNCF stops sharing a
	// normalized name.
	sncfByName := map[string][]string{}
	for id, s := range stops {
		if s.Operator == "SNCF" {
			if key := NormalizeName(s.Name); key != "" {
				sncfByName[key] = append(sncfByName[key], id)
			}
		}
	}
	for id, s := range stops {
		if s.Operator != "TI" {
			continue
		}
		for _, sncfID := range sncfByName[NormalizeName(s.Name)] {
			addSame(id, sncfID)
		}
	}

	// Inter-city links: stops of different stations in the same
	// (city, country) metropolitan area. Same-station links win.
	type cityKey struct{ city, country string }
	grouped := map[cityKey][]int{}
	for i, st := range stations {
		if st.City == "" {
			continue
		}
		k := cityKey{NormalizeName(st.City), st.Country}
		grouped[k] = append(grouped[k], i)
	}
	for _, idxs := range grouped {
		if len(idxs) < 2 {
			continue
		}
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				for _, a := range stations[idxs[i]].MemberStopIDs {
					for _, b := range stations[idxs[j]].MemberStopIDs {
						if sameStation[edge{a, b}] {
							continue
						}
						interCity[edge{a, b}] = true
						interCity[edge{b, a}] = true
					}
				}
			}
		}
	}

	index := map[string][]artifact.TransferEntry{}
	for e := range sameStation {
		index[e.from] = append(index[e.from], artifact.TransferEntry{ID: e.to})
	}
	for e := range interCity {
		index[e.from] = append(index[e.from], artifact.TransferEntry{ID: e.to, InterCity: true})
	}
	for _, entries := range index {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].InterCity != entries[j].InterCity {
				return !entries[i].InterCity
			}
			return entries[i].ID < entries[j].ID
		})
	}

	logger.Info("transfer index built",
		slog.Int("stops", len(index)),
		slog.Int("sameStationEdges", len(sameStation)),
		slog.Int("interCityEdges", len(interCity)))

	return index
}
