package feed

import "strings"

const routeTypeBus = 3

// sncfExcludedShortNames are road or tram-train services SNCF publishes in
// its rail feed.
var sncfExcludedShortNames = map[string]bool{
	"CAR":       true,
	"NAVETTE":   true,
	"TRAMTRAIN": true,
}

// sncbIncludedShortNames are the SNCB train families this planner models.
var sncbIncludedShortNames = map[string]bool{
	"IC":  true,
	"EC":  true,
	"NJ":  true,
	"OTC": true,
}

// keepRoute decides whether a route belongs in the merged timetable.
// Rules are operator-specific and applied before any cross-referencing.
func keepRoute(operator string, routeType int, shortName string) bool {
	switch operator {
	case "SNCF":
		if routeType == routeTypeBus {
			return false
		}
		return !sncfExcludedShortNames[strings.ToUpper(strings.TrimSpace(shortName))]
	case "SNCB":
		return sncbIncludedShortNames[strings.ToUpper(strings.TrimSpace(shortName))]
	default:
		return routeType != routeTypeBus
	}
}
