package zones

import (
	"fmt"
	"sort"

	"github.com/banshee-data/bikefit/internal/pose"
)

// BikeType is a riding discipline with its own target ranges.
type BikeType string

const (
	BikeRoad BikeType = "road"
	BikeMTB  BikeType = "mtb"
	BikeTT   BikeType = "tt"
)

// BikeTypes lists the disciplines in the default table.
var BikeTypes = []BikeType{BikeRoad, BikeMTB, BikeTT}

// ParseBikeType validates s against BikeTypes.
func ParseBikeType(s string) (BikeType, error) {
	for _, b := range BikeTypes {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown bike type %q (valid: road, mtb, tt)", s)
}

// Range is an inclusive interval in degrees.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// JointRanges are the target ranges for one joint on one bike type.
type JointRanges struct {
	Optimal       Range  `json:"optimal"`
	PedalDown     *Range `json:"pedal_down,omitempty"`
	PedalUp       *Range `json:"pedal_up,omitempty"`
	Physiological Range  `json:"physiological"`
}

// Key indexes the range table.
type Key struct {
	Bike  BikeType
	Joint pose.Joint
}

// Table maps (bike type, joint) to target ranges. It is built once and never
// mutated.
type Table map[Key]JointRanges

// Lookup returns the ranges for (bike, joint).
func (t Table) Lookup(bike BikeType, joint pose.Joint) (JointRanges, bool) {
	r, ok := t[Key{Bike: bike, Joint: joint}]
	return r, ok
}

// Keys returns the table keys sorted by bike type then joint.
func (t Table) Keys() []Key {
	keys := make([]Key, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Bike != keys[j].Bike {
			return keys[i].Bike < keys[j].Bike
		}
		return keys[i].Joint < keys[j].Joint
	})
	return keys
}

// Validate checks that every range is well formed and that the cycling bands
// sit inside the physiological envelope.
func (t Table) Validate() error {
	for _, k := range t.Keys() {
		r := t[k]
		ranges := []struct {
			name string
			r    *Range
		}{
			{"optimal", &r.Optimal},
			{"pedal_down", r.PedalDown},
			{"pedal_up", r.PedalUp},
			{"physiological", &r.Physiological},
		}
		for _, nr := range ranges {
			if nr.r == nil {
				continue
			}
			if nr.r.Min > nr.r.Max {
				return fmt.Errorf("%s/%s: %s min %.1f > max %.1f", k.Bike, k.Joint, nr.name, nr.r.Min, nr.r.Max)
			}
			if nr.r.Min < r.Physiological.Min || nr.r.Max > r.Physiological.Max {
				return fmt.Errorf("%s/%s: %s [%.1f, %.1f] outside physiological [%.1f, %.1f]",
					k.Bike, k.Joint, nr.name, nr.r.Min, nr.r.Max, r.Physiological.Min, r.Physiological.Max)
			}
		}
	}
	return nil
}

func rng(min, max float64) *Range { return &Range{Min: min, Max: max} }

// Ranges shared by every discipline.
var (
	physKnee     = Range{Min: 30, Max: 180}
	physHip      = Range{Min: 30, Max: 180}
	physAnkle    = Range{Min: 60, Max: 160}
	physShoulder = Range{Min: 0, Max: 180}
	physElbow    = Range{Min: 30, Max: 180}

	ankleRanges = JointRanges{
		Optimal:       Range{Min: 90, Max: 125},
		PedalDown:     rng(105, 125),
		PedalUp:       rng(90, 104),
		Physiological: physAnkle,
	}
)

var defaultTable = Table{
	{BikeRoad, pose.JointKnee}: {
		Optimal:       Range{Min: 65, Max: 155},
		PedalDown:     rng(140, 150),
		PedalUp:       rng(65, 75),
		Physiological: physKnee,
	},
	{BikeRoad, pose.JointHip}: {
		Optimal:       Range{Min: 40, Max: 100},
		PedalDown:     rng(85, 100),
		PedalUp:       rng(40, 55),
		Physiological: physHip,
	},
	{BikeRoad, pose.JointAnkle}:    ankleRanges,
	{BikeRoad, pose.JointShoulder}: {Optimal: Range{Min: 80, Max: 100}, Physiological: physShoulder},
	{BikeRoad, pose.JointElbow}:    {Optimal: Range{Min: 150, Max: 165}, Physiological: physElbow},

	{BikeMTB, pose.JointKnee}: {
		Optimal:       Range{Min: 65, Max: 155},
		PedalDown:     rng(138, 148),
		PedalUp:       rng(65, 78),
		Physiological: physKnee,
	},
	{BikeMTB, pose.JointHip}: {
		Optimal:       Range{Min: 45, Max: 110},
		PedalDown:     rng(90, 110),
		PedalUp:       rng(45, 60),
		Physiological: physHip,
	},
	{BikeMTB, pose.JointAnkle}:    ankleRanges,
	{BikeMTB, pose.JointShoulder}: {Optimal: Range{Min: 75, Max: 95}, Physiological: physShoulder},
	{BikeMTB, pose.JointElbow}:    {Optimal: Range{Min: 145, Max: 160}, Physiological: physElbow},

	{BikeTT, pose.JointKnee}: {
		Optimal:       Range{Min: 65, Max: 155},
		PedalDown:     rng(140, 150),
		PedalUp:       rng(65, 75),
		Physiological: physKnee,
	},
	{BikeTT, pose.JointHip}: {
		Optimal:       Range{Min: 35, Max: 95},
		PedalDown:     rng(80, 95),
		PedalUp:       rng(35, 50),
		Physiological: physHip,
	},
	{BikeTT, pose.JointAnkle}:    ankleRanges,
	{BikeTT, pose.JointShoulder}: {Optimal: Range{Min: 85, Max: 95}, Physiological: physShoulder},
	{BikeTT, pose.JointElbow}:    {Optimal: Range{Min: 85, Max: 100}, Physiological: physElbow},
}

// DefaultTable returns the built-in range table. Callers must treat it as
// read-only.
func DefaultTable() Table {
	return defaultTable
}
