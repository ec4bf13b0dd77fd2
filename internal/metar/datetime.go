package metar

import (
	"encoding/json"
	"fmt"
	"time"
)

const utcDateTimeLayout = "2006-01-02T15:04:05Z"

// TimeKind tags the variants of MetarTime.
type TimeKind string

const (
	TimeDateTime TimeKind = "date_time"
	TimeDayTime  TimeKind = "day_time"
	TimeTime     TimeKind = "time"
)

// MetarTime is an observation or trend time at one of three precisions: a
// full UTC timestamp, a day-of-month with a clock time, or a clock time
// alone. Day-time and time values become full timestamps once resolved
// against an anchor.
type MetarTime struct {
	Kind     TimeKind
	DateTime time.Time // date_time only
	Day      int       // day_time only
	Hour     int       // day_time and time
	Minute   int       // day_time and time
}

func NewDateTime(t time.Time) *MetarTime {
	return &MetarTime{Kind: TimeDateTime, DateTime: t.UTC()}
}

func NewDayTime(day, hour, minute int) (*MetarTime, error) {
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("invalid day of month %d", day)
	}
	if err := validateClock(hour, minute); err != nil {
		return nil, err
	}
	return &MetarTime{Kind: TimeDayTime, Day: day, Hour: hour, Minute: minute}, nil
}

func NewTime(hour, minute int) (*MetarTime, error) {
	if err := validateClock(hour, minute); err != nil {
		return nil, err
	}
	return &MetarTime{Kind: TimeTime, Hour: hour, Minute: minute}, nil
}

func validateClock(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour %d", hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("invalid minute %d", minute)
	}
	return nil
}

// Resolve turns a day-time or time value into a full timestamp by scanning
// candidates around the anchor and keeping the closest one. Candidates are
// visited in chronological order and replaced only when strictly closer, so
// an exact tie keeps the earlier candidate. A date_time value is returned
// unchanged.
func (t *MetarTime) Resolve(anchor time.Time) (*MetarTime, error) {
	anchor = anchor.UTC()
	switch t.Kind {
	case TimeDateTime:
		return t, nil
	case TimeDayTime:
		year, month, _ := anchor.Date()
		var best *time.Time
		var bestDelta time.Duration
		for _, monthOffset := range []int{-1, 0, 1} {
			candidate := time.Date(year, month+time.Month(monthOffset), t.Day, t.Hour, t.Minute, 0, 0, time.UTC)
			// time.Date normalizes out-of-range days (Feb 30 becomes
			// Mar 2), which would silently shift the candidate month.
			if candidate.Day() != t.Day {
				continue
			}
			delta := absDuration(candidate.Sub(anchor))
			if best == nil || delta < bestDelta {
				best, bestDelta = &candidate, delta
			}
		}
		if best == nil {
			return nil, fmt.Errorf("no month near %s has a day %d", anchor.Format(utcDateTimeLayout), t.Day)
		}
		return NewDateTime(*best), nil
	case TimeTime:
		year, month, day := anchor.Date()
		var best *time.Time
		var bestDelta time.Duration
		for _, dayOffset := range []int{-1, 0, 1} {
			candidate := time.Date(year, month, day+dayOffset, t.Hour, t.Minute, 0, 0, time.UTC)
			delta := absDuration(candidate.Sub(anchor))
			if best == nil || delta < bestDelta {
				best, bestDelta = &candidate, delta
			}
		}
		return NewDateTime(*best), nil
	}
	return nil, fmt.Errorf("unknown time kind %q", t.Kind)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// MarshalJSON writes the tagged wire forms:
//
//	{"value_type": "date_time", "value": "2023-05-12T16:00:00Z"}
//	{"value_type": "day_time", "value": [12, "16:00:00Z"]}
//	{"value_type": "time", "value": "16:00:00Z"}
func (t MetarTime) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case TimeDateTime:
		return json.Marshal(struct {
			Type  TimeKind `json:"value_type"`
			Value string   `json:"value"`
		}{t.Kind, t.DateTime.Format(utcDateTimeLayout)})
	case TimeDayTime:
		return json.Marshal(struct {
			Type  TimeKind `json:"value_type"`
			Value [2]any   `json:"value"`
		}{t.Kind, [2]any{t.Day, fmt.Sprintf("%02d:%02d:00Z", t.Hour, t.Minute)}})
	case TimeTime:
		return json.Marshal(struct {
			Type  TimeKind `json:"value_type"`
			Value string   `json:"value"`
		}{t.Kind, fmt.Sprintf("%02d:%02d:00Z", t.Hour, t.Minute)})
	}
	return nil, fmt.Errorf("unknown time kind %q", t.Kind)
}
