// Package reconcile identifies one physical location across operators. It
// produces the station index (groups of stop identifiers that constitute
// one logical station) and the transfer index (walking edges between
// sibling stops, tagged by category).
package reconcile

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/TrainNomad/raptor-backend/internal/artifact"
	"github.com/TrainNomad/raptor-backend/internal/feed"
)

// geoLinkBlacklist rejects known bad links. A feed-transfer or geographic
// pair is dropped when one side matches the first fragment and the other
// side matches the second (either order). Fragments are in normalized form
// and are checked against both the stop identifier and the stop name, since
// SNCF identifiers carry no station slug while ES identifiers carry no
// display name worth matching. The Paris Est to Paris Nord entry covers a
// recurring false positive: the two stations sit within walking distance
// but are distinct places.
var geoLinkBlacklist = [][2]string{
	{"paris est", "paris nord"},
}

// blacklistKey is the haystack a blacklist fragment is matched against.
func blacklistKey(id, name string) string {
	return NormalizeName(id) + " " + NormalizeName(name)
}

func blacklisted(keyA, keyB string) bool {
	for _, pair := range geoLinkBlacklist {
		if (strings.Contains(keyA, pair[0]) && strings.Contains(keyB, pair[1])) ||
			(strings.Contains(keyB, pair[0]) && strings.Contains(keyA, pair[1])) {
			return true
		}
	}
	return false
}

type stationDraft struct {
	displayName string
	city        string
	country     string
	lat         float64
	lon         float64
	hasCoords   bool
	members     map[string]bool
}

type stationSet struct {
	drafts     []*stationDraft
	assignment map[string]int // stop id -> draft index
	byName     map[string]int // normalized display name -> draft index
}

func (s *stationSet) assign(stopID string, idx int) {
	s.drafts[idx].members[stopID] = true
	s.assignment[stopID] = idx
}

func (s *stationSet) newDraft(d *stationDraft) int {
	idx := len(s.drafts)
	s.drafts = append(s.drafts, d)
	if key := NormalizeName(d.displayName); key != "" {
		if _, taken := s.byName[key]; !taken {
			s.byName[key] = idx
		}
	}
	return idx
}

// BuildStations reconciles the stop universe into logical stations. The
// passes, in order: curated manifest, Eurostar slug matching, feed-transfer
// whitelist, administrative parent folding, normalized-name orphan grouping,
// and the SNCF/ES fusion post-pass. The pass order makes the reconciliation
// idempotent over its inputs.
func BuildStations(
	stops map[string]artifact.Stop,
	parents map[string]string,
	feedTransfers []feed.TransferPair,
	manifest []ManifestStation,
	logger *slog.Logger,
) []artifact.Station {
	if logger == nil {
		logger = slog.Default()
	}

	set := &stationSet{
		assignment: map[string]int{},
		byName:     map[string]int{},
	}

	// Pass 1: curated manifest.
	for _, m := range manifest {
		idx := set.newDraft(&stationDraft{
			displayName: m.Name,
			city:        m.City,
			country:     m.Country,
			lat:         m.Lat,
			lon:         m.Lon,
			hasCoords:   m.Lat != 0 || m.Lon != 0,
			members:     map[string]bool{},
		})
		for _, id := range m.StopIDs() {
			if _, known := stops[id]; known {
				set.assign(id, idx)
			}
		}
	}

	// Pass 2: Eurostar slug heuristics. ES identifiers are slugs like
	// "paris_nord_3"; the slug minus its platform suffix names the station.
	for id := range stops {
		if _, assigned := set.assignment[id]; assigned || artifact.Operator(id) != "ES" {
			continue
		}
		if idx, ok := set.byName[eurostarSlugName(id)]; ok {
			set.assign(id, idx)
		}
	}

	// Pass 3: whitelist from the feeds' own transfer tables, minus the
	// blacklist. A whitelisted pair pulls an unassigned stop into its
	// partner's station.
	whitelist := make([]feed.TransferPair, 0, len(feedTransfers))
	for _, p := range feedTransfers {
		if blacklisted(blacklistKey(p.From, stops[p.From].Name), blacklistKey(p.To, stops[p.To].Name)) {
			continue
		}
		whitelist = append(whitelist, p)
	}
	// Run to fixpoint: chains of pairs can need two passes.
	for changed := true; changed; {
		changed = false
		for _, p := range whitelist {
			fromIdx, fromOK := set.assignment[p.From]
			toIdx, toOK := set.assignment[p.To]
			switch {
			case fromOK && !toOK:
				if _, known := stops[p.To]; known {
					set.assign(p.To, fromIdx)
					changed = true
				}
			case toOK && !fromOK:
				if _, known := stops[p.From]; known {
					set.assign(p.From, toIdx)
					changed = true
				}
			}
		}
	}

	// Pass 4: fold unassigned stops into the station of their
	// administrative parent area, when the feed provides one.
	for id, parent := range parents {
		if _, assigned := set.assignment[id]; assigned {
			continue
		}
		if _, known := stops[id]; !known {
			continue
		}
		if idx, ok := set.assignment[parent]; ok {
			set.assign(id, idx)
		}
	}
	// Siblings under a still-unassigned parent become one station.
	children := map[string][]string{}
	for id, parent := range parents {
		if _, assigned := set.assignment[id]; assigned {
			continue
		}
		if _, known := stops[id]; !known {
			continue
		}
		children[parent] = append(children[parent], id)
	}
	for _, ids := range children {
		sort.Strings(ids)
		first := stops[ids[0]]
		idx := set.newDraft(&stationDraft{
			displayName: first.Name,
			city:        first.Name,
			country:     CountryForStop(ids[0]),
			members:     map[string]bool{},
		})
		for _, id := range ids {
			set.assign(id, idx)
		}
	}

	// Pass 5: orphan stations grouped by normalized name, country inferred
	// from the UIC prefix (Spanish operators forced to ES).
	orphans := map[string][]string{}
	for id := range stops {
		if _, assigned := set.assignment[id]; assigned {
			continue
		}
		key := NormalizeName(stops[id].Name)
		if key == "" {
			key = id
		}
		orphans[key] = append(orphans[key], id)
	}
	orphanKeys := make([]string, 0, len(orphans))
	for key := range orphans {
		orphanKeys = append(orphanKeys, key)
	}
	sort.Strings(orphanKeys)
	for _, key := range orphanKeys {
		ids := orphans[key]
		sort.Strings(ids)
		country := ""
		for _, id := range ids {
			if c := CountryForStop(id); c != "" {
				country = c
				break
			}
		}
		first := stops[ids[0]]
		idx := set.newDraft(&stationDraft{
			displayName: first.Name,
			city:        first.Name,
			country:     country,
			members:     map[string]bool{},
		})
		for _, id := range ids {
			set.assign(id, idx)
		}
	}

	fuseEurostarDuplicates(set, whitelist)

	return finalizeStations(set, stops)
}

// eurostarSlugName turns "ES:paris_nord_3" into the normalized name
// "paris nord".
func eurostarSlugName(id string) string {
	slug := strings.TrimPrefix(id, "ES:")
	parts := strings.Split(slug, "_")
	if len(parts) > 1 && isDigits(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
	}
	return NormalizeName(strings.Join(parts, " "))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// fuseEurostarDuplicates merges an ES-only station into an SNCF-bearing one
// when a whitelisted pair ties them to the same UIC code. The ES-only
// duplicate is emptied and later dropped.
func fuseEurostarDuplicates(set *stationSet, whitelist []feed.TransferPair) {
	hasOp := func(d *stationDraft, op string) bool {
		for id := range d.members {
			if artifact.Operator(id) == op {
				return true
			}
		}
		return false
	}
	onlyOp := func(d *stationDraft, op string) bool {
		for id := range d.members {
			if artifact.Operator(id) != op {
				return false
			}
		}
		return len(d.members) > 0
	}

	for _, p := range whitelist {
		fromIdx, fromOK := set.assignment[p.From]
		toIdx, toOK := set.assignment[p.To]
		if !fromOK || !toOK || fromIdx == toIdx {
			continue
		}
		if UICCode(p.From) == "" || UICCode(p.From) != UICCode(p.To) {
			continue
		}

		keep, drop := fromIdx, toIdx
		if onlyOp(set.drafts[fromIdx], "ES") && hasOp(set.drafts[toIdx], "SNCF") {
			keep, drop = toIdx, fromIdx
		} else if !(onlyOp(set.drafts[toIdx], "ES") && hasOp(set.drafts[fromIdx], "SNCF")) {
			continue
		}

		for id := range set.drafts[drop].members {
			set.assign(id, keep)
		}
		set.drafts[drop].members = map[string]bool{}
	}
}

// operatorScore ranks a station by which operators serve it, so the most
// authoritative naming wins ties in listings.
func operatorScore(operators []string) int {
	weights := map[string]int{
		"SNCF":     16,
		"RENFE":    8,
		"OUIGO_ES": 4,
		"ES":       2,
		"TI":       1,
	}
	score := 0
	for _, op := range operators {
		score += weights[op]
	}
	return score
}

func finalizeStations(set *stationSet, stops map[string]artifact.Stop) []artifact.Station {
	var out []artifact.Station
	for _, d := range set.drafts {
		if len(d.members) == 0 {
			continue
		}

		members := make([]string, 0, len(d.members))
		opSet := map[string]bool{}
		for id := range d.members {
			members = append(members, id)
			if op := artifact.Operator(id); op != "" {
				opSet[op] = true
			}
		}
		sort.Strings(members)
		operators := make([]string, 0, len(opSet))
		for op := range opSet {
			operators = append(operators, op)
		}
		sort.Strings(operators)

		lat, lon := d.lat, d.lon
		if !d.hasCoords {
			n := 0
			lat, lon = 0, 0
			for _, id := range members {
				s := stops[id]
				if s.Lat != 0 || s.Lon != 0 {
					lat += s.Lat
					lon += s.Lon
					n++
				}
			}
			if n > 0 {
				lat /= float64(n)
				lon /= float64(n)
			}
		}

		city := d.city
		if city == "" {
			city = d.displayName
		}

		out = append(out, artifact.Station{
			DisplayName:   d.displayName,
			City:          city,
			Country:       d.country,
			MemberStopIDs: members,
			Operators:     operators,
			Lat:           lat,
			Lon:           lon,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := operatorScore(out[i].Operators), operatorScore(out[j].Operators)
		if si != sj {
			return si > sj
		}
		return out[i].DisplayName < out[j].DisplayName
	})
	return out
}
