package timetable

import (
	"strings"
	"unicode"

	"github.com/TrainNomad/raptor-backend/internal/feed"
)

// Train product classifications stored on trips at build time.
const (
	TypeINOUI          = "INOUI"
	TypeOUIGO          = "OUIGO"
	TypeOUIGOClassique = "OUIGO_CLASSIQUE"
	TypeIC             = "IC"
	TypeICNuit         = "IC_NUIT"
	TypeLyria          = "LYRIA"
	TypeTER            = "TER"
	TypeFrecciarossa   = "FRECCIAROSSA"
	TypeEurostar       = "EUROSTAR"
	TypeNightjet       = "NIGHTJET"
	TypeEC             = "EC"
	TypeThalysCorridor = "THALYS_CORRIDOR"
	TypeICSNCB         = "IC_SNCB"
	TypeICE            = "ICE"
	TypeICDB           = "IC_DB"
	TypeAVE            = "AVE"
	TypeAlvia          = "ALVIA"
	TypeTrain          = "TRAIN"
)

// sncfPlatformTokens maps the platform token embedded in SNCF stop-point
// identifiers (e.g. "StopPoint:OCETGV INOUI-87686006") to a product. Order
// matters: more specific tokens first.
var sncfPlatformTokens = []struct {
	token string
	typ   string
}{
	{"OCETGV INOUI", TypeINOUI},
	{"OCEOUIGO TRAIN CLASSIQUE", TypeOUIGOClassique},
	{"OCEOUIGO", TypeOUIGO},
	{"OCEINTERCITES DE NUIT", TypeICNuit},
	{"OCEINTERCITES", TypeIC},
	{"OCELYRIA", TypeLyria},
	{"OCETRAIN TER", TypeTER},
	{"OCETER", TypeTER},
}

// Classify labels a trip with its product classification. Precedence is
// operator-specific: the platform token in the stop-point identifiers wins
// over trip-identifier substrings, which win over the route short name.
func Classify(operator, tripID, headsign, routeShort string, records []feed.StopTimeRecord) string {
	switch operator {
	case "SNCF":
		return classifySNCF(tripID, headsign, routeShort, records)
	case "TI":
		return TypeFrecciarossa
	case "ES":
		if containsFold(tripID, "thalys") || containsFold(routeShort, "thalys") {
			return TypeThalysCorridor
		}
		return TypeEurostar
	case "SNCB":
		switch strings.ToUpper(strings.TrimSpace(routeShort)) {
		case "IC":
			return TypeICSNCB
		case "EC":
			return TypeEC
		case "NJ":
			return TypeNightjet
		case "OTC":
			return TypeThalysCorridor
		}
		return TypeICSNCB
	case "DB":
		if containsFold(routeShort, "ICE") || containsFold(tripID, "ICE") {
			return TypeICE
		}
		return TypeICDB
	case "RENFE":
		switch {
		case containsFold(routeShort, "ALVIA"):
			return TypeAlvia
		case containsFold(routeShort, "AVE"):
			return TypeAVE
		}
		return TypeAVE
	case "OUIGO_ES":
		return TypeOUIGO
	}
	return TypeTrain
}

func classifySNCF(tripID, headsign, routeShort string, records []feed.StopTimeRecord) string {
	for _, st := range records {
		upper := strings.ToUpper(st.RawStopID)
		for _, rule := range sncfPlatformTokens {
			if strings.Contains(upper, rule.token) {
				if rule.typ == TypeOUIGO {
					return ouigoSubtype(tripID, headsign)
				}
				return rule.typ
			}
		}
	}

	upperTrip := strings.ToUpper(tripID)
	switch {
	case strings.Contains(upperTrip, "OUIGO"):
		return ouigoSubtype(tripID, headsign)
	case strings.Contains(upperTrip, "LYRIA"):
		return TypeLyria
	case strings.Contains(upperTrip, "INOUI"):
		return TypeINOUI
	}

	switch strings.ToUpper(strings.TrimSpace(routeShort)) {
	case "TER":
		return TypeTER
	case "INTERCITES":
		return TypeIC
	}
	return TypeTrain
}

// ouigoSubtype splits OUIGO by train-number range: 7xxx runs on high-speed
// lines, 4xxx on classic lines.
func ouigoSubtype(tripID, headsign string) string {
	num := trainNumber(tripID, headsign)
	switch {
	case strings.HasPrefix(num, "7"):
		return TypeOUIGO
	case strings.HasPrefix(num, "4"):
		return TypeOUIGOClassique
	}
	return TypeOUIGO
}

// trainNumber extracts the commercial train number: the last run of four or
// more digits in the headsign, falling back to the trip identifier.
func trainNumber(tripID, headsign string) string {
	if n := lastDigitRun(headsign); n != "" {
		return n
	}
	return lastDigitRun(tripID)
}

func lastDigitRun(s string) string {
	best := ""
	cur := strings.Builder{}
	for _, r := range s {
		if unicode.IsDigit(r) {
			cur.WriteRune(r)
			continue
		}
		if cur.Len() >= 4 {
			best = cur.String()
		}
		cur.Reset()
	}
	if cur.Len() >= 4 {
		best = cur.String()
	}
	return best
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(substr))
}
