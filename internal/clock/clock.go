package clock

import "time"

// Clock abstracts time.Now so handlers and response envelopes are testable.
type Clock interface {
	Now() time.Time
	NowUnixMilli() int64
}

// SystemClock is the real clock used in production.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) NowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

// FixedClock always reports the same instant. Tests use it to pin
// currentTime fields in responses.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

func (c FixedClock) NowUnixMilli() int64 {
	return c.Time.UnixMilli()
}
