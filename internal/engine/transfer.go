package engine

import "github.com/TrainNomad/raptor-backend/internal/artifact"

// TransferCategory classifies a walking edge. The category is a property of
// the link as seen from its originating side, not of the endpoints, and
// symmetry is not guaranteed.
type TransferCategory int

const (
	SameStationSameOperator TransferCategory = iota
	SameStationCrossOperator
	InterCitySameMetro
)

// MinDwell is the minimum transfer time in seconds applied when a journey
// crosses an edge of this category.
func (c TransferCategory) MinDwell() int {
	switch c {
	case SameStationSameOperator:
		return 3 * 60
	case SameStationCrossOperator:
		return 10 * 60
	default:
		return 45 * 60
	}
}

func (c TransferCategory) String() string {
	switch c {
	case SameStationSameOperator:
		return "same-station-same-operator"
	case SameStationCrossOperator:
		return "same-station-cross-operator"
	default:
		return "inter-city-same-metro"
	}
}

type transferEdge struct {
	to       string
	category TransferCategory
}

// normalizeTransfers lifts the persisted heterogeneous entries into uniform
// categorized edges: tagged entries are inter-city, plain entries default by
// operator-prefix equality.
func normalizeTransfers(raw map[string][]artifact.TransferEntry) map[string][]transferEdge {
	out := make(map[string][]transferEdge, len(raw))
	for from, entries := range raw {
		edges := make([]transferEdge, 0, len(entries))
		fromOp := artifact.Operator(from)
		for _, e := range entries {
			switch {
			case e.InterCity:
				edges = append(edges, transferEdge{to: e.ID, category: InterCitySameMetro})
			case artifact.Operator(e.ID) == fromOp:
				edges = append(edges, transferEdge{to: e.ID, category: SameStationSameOperator})
			default:
				edges = append(edges, transferEdge{to: e.ID, category: SameStationCrossOperator})
			}
		}
		out[from] = edges
	}
	return out
}
