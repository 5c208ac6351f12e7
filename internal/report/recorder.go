package report

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/bikefit/internal/pipeline"
	"github.com/banshee-data/bikefit/internal/pose"
	"github.com/banshee-data/bikefit/internal/zones"
)

// ErrNoSamples is returned when exporting a recorder with no readings.
var ErrNoSamples = errors.New("no samples recorded")

// Sample is one recorded joint reading.
type Sample struct {
	Tick    int
	Degrees float64
	Zone    zones.Zone
}

// JointSummary describes the distribution of one joint's readings.
type JointSummary struct {
	Joint     pose.Joint
	Count     int
	Mean      float64
	StdDev    float64
	Min       float64
	Max       float64
	ZoneShare map[zones.Zone]float64 // fraction of samples per zone
	Dominant  zones.Zone
}

// Recorder collects readings tick by tick. It is not safe for concurrent use.
type Recorder struct {
	bike    zones.BikeType
	table   zones.Table
	ticks   int
	samples map[pose.Joint][]Sample
}

// NewRecorder returns an empty recorder for a session on bike. table
// supplies the target ranges drawn on charts.
func NewRecorder(bike zones.BikeType, table zones.Table) *Recorder {
	return &Recorder{bike: bike, table: table, samples: make(map[pose.Joint][]Sample)}
}

// Add records every reading in res.
func (r *Recorder) Add(res pipeline.Result) {
	r.ticks++
	for _, j := range pose.Joints {
		rd, ok := res.Readings[j]
		if !ok {
			continue
		}
		r.samples[j] = append(r.samples[j], Sample{Tick: res.Tick, Degrees: rd.Degrees, Zone: rd.Zone})
	}
}

// Ticks returns how many results were added.
func (r *Recorder) Ticks() int { return r.ticks }

// Bike returns the bike type the session was recorded on.
func (r *Recorder) Bike() zones.BikeType { return r.bike }

// Samples returns the readings for j in tick order.
func (r *Recorder) Samples(j pose.Joint) []Sample {
	return append([]Sample(nil), r.samples[j]...)
}

// Empty reports whether no joint has any reading.
func (r *Recorder) Empty() bool {
	for _, s := range r.samples {
		if len(s) > 0 {
			return false
		}
	}
	return true
}

// joints returns the joints with readings in display order.
func (r *Recorder) joints() []pose.Joint {
	var out []pose.Joint
	for _, j := range pose.Joints {
		if len(r.samples[j]) > 0 {
			out = append(out, j)
		}
	}
	return out
}

// Summary returns one entry per joint with readings, in display order.
func (r *Recorder) Summary() []JointSummary {
	var out []JointSummary
	for _, j := range r.joints() {
		samples := r.samples[j]
		degrees := make([]float64, len(samples))
		counts := make(map[zones.Zone]int)
		for i, s := range samples {
			degrees[i] = s.Degrees
			counts[s.Zone]++
		}

		mean, std := stat.MeanStdDev(degrees, nil)
		if len(degrees) < 2 {
			std = 0
		}
		js := JointSummary{
			Joint:     j,
			Count:     len(samples),
			Mean:      mean,
			StdDev:    std,
			Min:       floats.Min(degrees),
			Max:       floats.Max(degrees),
			ZoneShare: make(map[zones.Zone]float64, len(counts)),
		}
		for z, n := range counts {
			js.ZoneShare[z] = float64(n) / float64(len(samples))
		}
		js.Dominant = dominant(counts)
		out = append(out, js)
	}
	return out
}

// dominant returns the most frequent zone, breaking ties by name.
func dominant(counts map[zones.Zone]int) zones.Zone {
	keys := make([]zones.Zone, 0, len(counts))
	for z := range counts {
		keys = append(keys, z)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a] < keys[b] })

	best := zones.ZoneUnknown
	bestN := 0
	for _, z := range keys {
		if counts[z] > bestN {
			best, bestN = z, counts[z]
		}
	}
	return best
}
