package models

// Common constants used across the application
const (
	// UnknownValue is the fallback value when data is unavailable
	UnknownValue = "UNKNOWN"
)

const (
	DefaultMaxCountForJourneys = 10
	DefaultMaxCountForStops    = 10
	MaxAllowedCount            = 50
)
