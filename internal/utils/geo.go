package utils

import "math"

const earthRadiusMeters = 6371000.0

// Distance returns the haversine distance in meters between two coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// CoordinateBounds is a lat/lon bounding box.
type CoordinateBounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// CalculateBounds returns a bounding box centered on (lat, lon) that
// contains every point within radius meters. The box over-approximates the
// circle; callers re-check exact distances.
func CalculateBounds(lat, lon, radius float64) CoordinateBounds {
	latDelta := radius / 111320.0
	lonDelta := radius / (111320.0 * math.Cos(lat*math.Pi/180))

	return CoordinateBounds{
		MinLat: lat - latDelta,
		MinLon: lon - lonDelta,
		MaxLat: lat + latDelta,
		MaxLon: lon + lonDelta,
	}
}
