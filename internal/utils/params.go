package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseIntParam parses an integer query parameter, recording a field error
// on failure and returning the fallback.
func ParseIntParam(params url.Values, name string, fallback int, fieldErrors map[string][]string) int {
	raw := params.Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fieldErrors[name] = append(fieldErrors[name], "must be an integer")
		return fallback
	}
	return v
}

// ParseClockParam parses an "HH:MM" or "HH:MM:SS" query parameter into
// seconds from midnight.
func ParseClockParam(params url.Values, name string, fallback int, fieldErrors map[string][]string) int {
	raw := params.Get(name)
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		fieldErrors[name] = append(fieldErrors[name], "must be HH:MM or HH:MM:SS")
		return fallback
	}
	secs := 0
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			fieldErrors[name] = append(fieldErrors[name], "must be HH:MM or HH:MM:SS")
			return fallback
		}
		switch i {
		case 0:
			secs += v * 3600
		case 1:
			secs += v * 60
		case 2:
			secs += v
		}
	}
	return secs
}

// ParseListParam splits a comma-separated query parameter into its non-empty
// trimmed elements.
func ParseListParam(params url.Values, name string) []string {
	raw := params.Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
