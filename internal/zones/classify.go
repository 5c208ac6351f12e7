package zones

import (
	"errors"
	"fmt"

	"github.com/banshee-data/bikefit/internal/pose"
)

// ErrMissingRangeConfig is returned when no ranges exist for a
// (bike type, joint) pair.
var ErrMissingRangeConfig = errors.New("missing range config")

// Zone is the qualitative status of a joint angle.
type Zone string

const (
	ZoneExtreme       Zone = "extreme"
	ZonePedalDown     Zone = "pedal-down"
	ZonePedalUp       Zone = "pedal-up"
	ZoneCyclingRange  Zone = "cycling-range"
	ZonePhysiological Zone = "physiological"
	ZoneUnknown       Zone = "unknown"
)

var zoneLabels = map[Zone]string{
	ZoneExtreme:       "Extreme",
	ZonePedalDown:     "Optimal extension",
	ZonePedalUp:       "Optimal flexion",
	ZoneCyclingRange:  "Cycling range",
	ZonePhysiological: "Physiological range",
	ZoneUnknown:       "Unknown",
}

var zoneColors = map[Zone]string{
	ZoneExtreme:       "#ef4444",
	ZonePedalDown:     "#22c55e",
	ZonePedalUp:       "#10b981",
	ZoneCyclingRange:  "#3b82f6",
	ZonePhysiological: "#f59e0b",
	ZoneUnknown:       "#9ca3af",
}

// Label returns the human-readable name of z.
func (z Zone) Label() string {
	if l, ok := zoneLabels[z]; ok {
		return l
	}
	return zoneLabels[ZoneUnknown]
}

// Color returns the hex display colour of z.
func (z Zone) Color() string {
	if c, ok := zoneColors[z]; ok {
		return c
	}
	return zoneColors[ZoneUnknown]
}

// Classify maps an angle to a zone using r.
func (r JointRanges) Classify(degrees float64) Zone {
	switch {
	case !r.Physiological.Contains(degrees):
		return ZoneExtreme
	case r.PedalDown != nil && r.PedalDown.Contains(degrees):
		return ZonePedalDown
	case r.PedalUp != nil && r.PedalUp.Contains(degrees):
		return ZonePedalUp
	case r.Optimal.Contains(degrees):
		return ZoneCyclingRange
	default:
		return ZonePhysiological
	}
}

// Position places degrees on the physiological range as a fraction in
// [0, 1], for drawing a marker along a bar. Values outside the range pin to
// the nearest end.
func (r JointRanges) Position(degrees float64) float64 {
	span := r.Physiological.Max - r.Physiological.Min
	if span <= 0 {
		if degrees < r.Physiological.Min {
			return 0
		}
		return 1
	}
	p := (degrees - r.Physiological.Min) / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Classify looks up (bike, joint) and classifies degrees. A missing entry
// returns ZoneUnknown and an error wrapping ErrMissingRangeConfig.
func (t Table) Classify(bike BikeType, joint pose.Joint, degrees float64) (Zone, error) {
	r, ok := t.Lookup(bike, joint)
	if !ok {
		return ZoneUnknown, fmt.Errorf("%w: bike=%s joint=%s", ErrMissingRangeConfig, bike, joint)
	}
	return r.Classify(degrees), nil
}

// Position looks up (bike, joint) and returns the marker position of degrees.
func (t Table) Position(bike BikeType, joint pose.Joint, degrees float64) (float64, error) {
	r, ok := t.Lookup(bike, joint)
	if !ok {
		return 0, fmt.Errorf("%w: bike=%s joint=%s", ErrMissingRangeConfig, bike, joint)
	}
	return r.Position(degrees), nil
}

// Classify uses the default table.
func Classify(bike BikeType, joint pose.Joint, degrees float64) (Zone, error) {
	return defaultTable.Classify(bike, joint, degrees)
}
