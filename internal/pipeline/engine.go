package pipeline

import (
	"fmt"

	"github.com/banshee-data/bikefit/internal/config"
	"github.com/banshee-data/bikefit/internal/monitoring"
	"github.com/banshee-data/bikefit/internal/pose"
	"github.com/banshee-data/bikefit/internal/zones"
)

// EngineConfig holds the tunables of the per-tick pipeline.
type EngineConfig struct {
	SmoothingAlpha      float64
	ConfidenceThreshold float64
	SideMinScore        float64
	SideMargin          float64
	BikeType            zones.BikeType
}

// DefaultEngineConfig returns the built-in pipeline tunables.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SmoothingAlpha:      pose.DefaultSmoothingAlpha,
		ConfidenceThreshold: pose.DefaultConfidenceThreshold,
		SideMinScore:        pose.DefaultSideMinScore,
		SideMargin:          pose.DefaultSideMargin,
		BikeType:            zones.BikeRoad,
	}
}

// EngineConfigFromTuning builds an EngineConfig from a loaded TuningConfig.
func EngineConfigFromTuning(cfg *config.TuningConfig) (EngineConfig, error) {
	bike, err := zones.ParseBikeType(cfg.GetBikeType())
	if err != nil {
		return EngineConfig{}, err
	}
	return EngineConfig{
		SmoothingAlpha:      cfg.GetSmoothingAlpha(),
		ConfidenceThreshold: cfg.GetConfidenceThreshold(),
		SideMinScore:        cfg.GetSideMinScore(),
		SideMargin:          cfg.GetSideMargin(),
		BikeType:            bike,
	}, nil
}

// Reading is a classified joint angle.
type Reading struct {
	Joint    pose.Joint `json:"joint"`
	Degrees  float64    `json:"degrees"`
	Zone     zones.Zone `json:"zone"`
	Position float64    `json:"position"` // marker position in [0, 1] along the physiological range
}

// Result is the output of one tick.
type Result struct {
	Tick      int                     `json:"tick"`
	Side      pose.Side               `json:"-"`
	Readings  map[pose.Joint]Reading  `json:"readings"`
	Samples   []pose.JointAngleSample `json:"-"`
	Keypoints pose.Frame              `json:"-"`
}

// Reading returns the reading for j, if j was valid this tick.
func (r Result) Reading(j pose.Joint) (Reading, bool) {
	rd, ok := r.Readings[j]
	return rd, ok
}

// Engine turns raw pose frames into classified joint readings.
type Engine struct {
	source   *pose.SourceHandle
	cfg      EngineConfig
	table    zones.Table
	smoother *pose.Smoother
	sides    *pose.SideSelector

	ticks  int
	warned map[zones.Key]bool
}

// NewEngine returns an Engine reading frames from source and classifying
// against table.
func NewEngine(source *pose.SourceHandle, cfg EngineConfig, table zones.Table) *Engine {
	return &Engine{
		source:   source,
		cfg:      cfg,
		table:    table,
		smoother: pose.NewSmoother(cfg.SmoothingAlpha),
		sides:    pose.NewSideSelector(cfg.SideMinScore, cfg.SideMargin),
		warned:   make(map[zones.Key]bool),
	}
}

// Config returns the engine tunables.
func (e *Engine) Config() EngineConfig { return e.cfg }

// Side returns the currently asserted body side.
func (e *Engine) Side() pose.Side { return e.sides.Current() }

// SetBikeType switches the range table used for classification.
func (e *Engine) SetBikeType(b zones.BikeType) {
	e.cfg.BikeType = b
}

// Reset forgets smoothing history and the asserted side, e.g. when the
// camera changes.
func (e *Engine) Reset() {
	e.smoother.Reset()
	e.sides.Reset()
	e.ticks = 0
}

// Tick processes one normalised frame captured at width×height pixels.
// Joints whose keypoints are missing or below the confidence threshold are
// absent from the readings. A joint without range config is reported with
// zones.ZoneUnknown.
func (e *Engine) Tick(raw pose.Frame, width, height float64) (Result, error) {
	if err := e.source.CheckReady(); err != nil {
		return Result{}, err
	}

	e.ticks++
	smoothed := e.smoother.Smooth(pose.ToPixels(raw, width, height))
	side := e.sides.Update(smoothed)
	samples := pose.SampleJoints(smoothed, side, e.cfg.ConfidenceThreshold)

	res := Result{
		Tick:      e.ticks,
		Side:      side,
		Readings:  make(map[pose.Joint]Reading, len(samples)),
		Samples:   samples,
		Keypoints: smoothed,
	}
	for _, s := range samples {
		if !s.IsValid {
			continue
		}
		res.Readings[s.Joint] = e.classify(s)
	}

	monitoring.Debugf("pipeline: tick %d side=%s readings=%d", res.Tick, side, len(res.Readings))
	return res, nil
}

func (e *Engine) classify(s pose.JointAngleSample) Reading {
	rd := Reading{Joint: s.Joint, Degrees: s.Degrees}

	ranges, ok := e.table.Lookup(e.cfg.BikeType, s.Joint)
	if !ok {
		e.warnOnce(s.Joint, fmt.Errorf("%w: bike=%s joint=%s", zones.ErrMissingRangeConfig, e.cfg.BikeType, s.Joint))
		rd.Zone = zones.ZoneUnknown
		return rd
	}
	rd.Zone = ranges.Classify(s.Degrees)
	rd.Position = ranges.Position(s.Degrees)
	return rd
}

func (e *Engine) warnOnce(j pose.Joint, err error) {
	key := zones.Key{Bike: e.cfg.BikeType, Joint: j}
	if e.warned[key] {
		return
	}
	e.warned[key] = true
	monitoring.Warnf("pipeline: %v", err)
}
